package dto

import (
	"mime/multipart"

	"gigconnect/internal/models"
)

type ProfileResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Skills    []string `json:"skills"`
}

// NewProfileResponse maps a profile row to its API shape.
func NewProfileResponse(p *models.Profile) *ProfileResponse {
	skills := p.GetSkills()
	if skills == nil {
		skills = []string{}
	}
	return &ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		Skills:    skills,
	}
}

// UpdateProfileRequest carries the multipart profile edit. The avatar
// and portfolio files are staged by the handler and uploaded only on
// save.
type UpdateProfileRequest struct {
	FullName string   `form:"full_name" validate:"omitempty,min=2"`
	Bio      string   `form:"bio"`
	Skills   []string `form:"skills"`

	Avatar         *multipart.FileHeader   `form:"-"`
	PortfolioFiles []*multipart.FileHeader `form:"-"`
}

// PortfolioItem is a stored file discovered under the profile's
// storage prefix. No metadata beyond the filename exists.
type PortfolioItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type PortfolioResponse struct {
	Items []PortfolioItem `json:"items"`
	Total int             `json:"total"`
}
