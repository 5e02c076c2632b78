package handlers

import (
	"net/http"

	"gigconnect/internal/middleware"
	"gigconnect/internal/services"
	"gigconnect/internal/services/dto"
	"gigconnect/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxMultipartMemory caps how much of a profile edit gin buffers in
// memory; the rest spills to temp files.
const maxMultipartMemory = 32 << 20

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profileGroup := router.Group("/profiles")
	{
		// Public read: any visitor can view a profile and its work.
		profileGroup.GET("/:userId", h.GetProfile)
		profileGroup.GET("/:userId/portfolio", h.GetPortfolio)

		// The static /me segment takes precedence over :userId.
		profileGroup.GET("/me", middleware.AuthMiddleware(), h.GetOwnProfile)
		profileGroup.PUT("/me", middleware.AuthMiddleware(), h.UpdateOwnProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("User ID is required"))
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetPortfolio(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("User ID is required"))
		return
	}

	items, err := h.profileService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PortfolioResponse{Items: items, Total: len(items)})
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateOwnProfile accepts a multipart form: text fields plus an
// optional "avatar" file and any number of "portfolio" files. Files
// only reach storage when the save as a whole is valid.
func (h *ProfileHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipartMemory*4)

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		if avatars := form.File["avatar"]; len(avatars) > 0 {
			req.Avatar = avatars[0]
		}
		req.PortfolioFiles = form.File["portfolio"]
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
