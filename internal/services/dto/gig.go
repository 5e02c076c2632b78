package dto

import (
	"strconv"
	"strings"
	"time"

	"gigconnect/internal/models"
	"gigconnect/pkg/apperrors"
)

// GigPayload is the normalized form payload for both create and
// update. Budget arrives as text and is parsed explicitly.
type GigPayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Category    string `json:"category" validate:"required,is-gig-category"`
	Status      string `json:"status" validate:"required,is-gig-status"`
}

// BudgetAmount parses the budget text. Empty or blank text means no
// budget; non-numeric or negative text is rejected rather than being
// silently dropped.
func (p *GigPayload) BudgetAmount() (*float64, error) {
	trimmed := strings.TrimSpace(p.Budget)
	if trimmed == "" {
		return nil, nil
	}

	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || amount < 0 {
		return nil, apperrors.ErrInvalidBudget
	}
	return &amount, nil
}

// ToModel builds a gig row for the owning provider. Returns a
// validation error when the budget text is unparsable.
func (p *GigPayload) ToModel(providerID string) (*models.Gig, error) {
	budget, err := p.BudgetAmount()
	if err != nil {
		return nil, err
	}

	gig := &models.Gig{
		ProviderID:  providerID,
		Title:       p.Title,
		Description: p.Description,
		Budget:      budget,
		Category:    models.GigCategory(p.Category),
		Status:      models.GigStatus(p.Status),
	}

	if loc := strings.TrimSpace(p.Location); loc != "" {
		gig.Location = &loc
	}

	return gig, nil
}

type GigResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	Budget      *float64  `json:"budget"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewGigResponse maps a gig row to its API shape.
func NewGigResponse(gig *models.Gig) *GigResponse {
	return &GigResponse{
		ID:          gig.ID,
		ProviderID:  gig.ProviderID,
		Title:       gig.Title,
		Description: gig.Description,
		Location:    gig.Location,
		Budget:      gig.Budget,
		Category:    string(gig.Category),
		Status:      string(gig.Status),
		CreatedAt:   gig.CreatedAt,
	}
}

// NewGigResponseList maps gig rows preserving order.
func NewGigResponseList(gigs []models.Gig) []*GigResponse {
	out := make([]*GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, NewGigResponse(&gigs[i]))
	}
	return out
}

type GigListResponse struct {
	Gigs  []*GigResponse `json:"gigs"`
	Total int            `json:"total"`
}
