package handlers

import (
	"net/http"

	"gigconnect/internal/logger"
	"gigconnect/internal/middleware"
	"gigconnect/internal/models"
	"gigconnect/internal/services"
	"gigconnect/internal/services/dto"
	"gigconnect/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService services.GigService
}

func NewGigHandler(base *BaseHandler, gigService services.GigService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
	}
}

func (h *GigHandler) RegisterRoutes(router *gin.RouterGroup) {
	gigGroup := router.Group("/gigs")
	{
		// Browsing open gigs requires no account.
		gigGroup.GET("", h.Browse)

		providerGroup := gigGroup.Group("")
		providerGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
		{
			providerGroup.GET("/my", h.ListMine)
			providerGroup.POST("", h.Create)
			providerGroup.PUT("/:gigId", h.Update)
			providerGroup.DELETE("/:gigId", h.Delete)
		}
	}
}

// Browse lists open gigs, optionally narrowed by a search term and a
// category. "all" and an empty category behave the same.
func (h *GigHandler) Browse(c *gin.Context) {
	term := c.Query("search")
	category := c.Query("category")
	limit := ParseQueryInt(c, "limit", 0)

	gigs, err := h.gigService.Browse(h.GetDB(c), term, category, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GigListResponse{Gigs: gigs, Total: len(gigs)})
}

func (h *GigHandler) ListMine(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gigs, err := h.gigService.ListMine(h.GetDB(c), providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GigListResponse{Gigs: gigs, Total: len(gigs)})
}

func (h *GigHandler) Create(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var payload dto.GigPayload
	if !h.BindAndValidateJSON(c, &payload) {
		return
	}

	gigs, err := h.gigService.Create(h.GetDB(c), providerID, &payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "gig created", "provider_id", providerID, "title", payload.Title)
	c.JSON(http.StatusCreated, dto.GigListResponse{Gigs: gigs, Total: len(gigs)})
}

func (h *GigHandler) Update(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID := c.Param("gigId")

	var payload dto.GigPayload
	if !h.BindAndValidateJSON(c, &payload) {
		return
	}

	gigs, err := h.gigService.Update(h.GetDB(c), providerID, gigID, &payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "gig updated", "provider_id", providerID, "gig_id", gigID)
	c.JSON(http.StatusOK, dto.GigListResponse{Gigs: gigs, Total: len(gigs)})
}

// Delete removes an owned gig. The caller must pass ?confirm=true; an
// unconfirmed request is rejected before any lookup happens.
func (h *GigHandler) Delete(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	gigID := c.Param("gigId")

	if c.Query("confirm") != "true" {
		apperrors.HandleError(c, apperrors.ErrDeleteNotConfirmed)
		return
	}

	gigs, err := h.gigService.Delete(h.GetDB(c), providerID, gigID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "gig deleted", "provider_id", providerID, "gig_id", gigID)
	c.JSON(http.StatusOK, dto.GigListResponse{Gigs: gigs, Total: len(gigs)})
}
