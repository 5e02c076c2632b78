package repositories

import (
	"errors"

	"gigconnect/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

type GigRepository interface {
	Create(db *gorm.DB, gig *models.Gig) error
	FindByID(db *gorm.DB, id string) (*models.Gig, error)
	// FindByProvider returns every gig owned by the provider,
	// newest-first, regardless of status.
	FindByProvider(db *gorm.DB, providerID string) ([]models.Gig, error)
	// FindOpen returns open gigs newest-first. limit <= 0 means
	// unbounded.
	FindOpen(db *gorm.DB, limit int) ([]models.Gig, error)
	Update(db *gorm.DB, gig *models.Gig) error
	Delete(db *gorm.DB, id string) error
}

type GigRepositoryImpl struct{}

func NewGigRepository() GigRepository {
	return &GigRepositoryImpl{}
}

func (r *GigRepositoryImpl) Create(db *gorm.DB, gig *models.Gig) error {
	return db.Create(gig).Error
}

func (r *GigRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	err := db.First(&gig, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) FindByProvider(db *gorm.DB, providerID string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := db.Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

func (r *GigRepositoryImpl) FindOpen(db *gorm.DB, limit int) ([]models.Gig, error) {
	var gigs []models.Gig
	query := db.Where("status = ?", models.GigStatusOpen).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&gigs).Error
	return gigs, err
}

// Update replaces all mutable fields of the gig row. Select lists the
// columns explicitly so clearing location or budget persists.
func (r *GigRepositoryImpl) Update(db *gorm.DB, gig *models.Gig) error {
	result := db.Model(&models.Gig{}).
		Where("id = ?", gig.ID).
		Select("title", "description", "location", "budget", "category", "status").
		Updates(map[string]interface{}{
			"title":       gig.Title,
			"description": gig.Description,
			"location":    gig.Location,
			"budget":      gig.Budget,
			"category":    gig.Category,
			"status":      gig.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}

func (r *GigRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Gig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}
