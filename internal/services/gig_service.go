package services

import (
	"gigconnect/internal/models"
	"gigconnect/internal/repositories"
	"gigconnect/internal/services/dto"
	"gigconnect/pkg/apperrors"

	"gorm.io/gorm"
)

type GigService interface {
	// ListMine returns the provider's own gigs, newest-first.
	ListMine(db *gorm.DB, providerID string) ([]*dto.GigResponse, error)

	// Create inserts a gig and returns the provider's refreshed list.
	Create(db *gorm.DB, providerID string, payload *dto.GigPayload) ([]*dto.GigResponse, error)

	// Update replaces all mutable fields of an owned gig and returns
	// the provider's refreshed list.
	Update(db *gorm.DB, providerID, gigID string, payload *dto.GigPayload) ([]*dto.GigResponse, error)

	// Delete removes an owned gig and returns the provider's
	// refreshed list.
	Delete(db *gorm.DB, providerID, gigID string) ([]*dto.GigResponse, error)

	// Browse returns open gigs newest-first, filtered by term and
	// category. limit <= 0 means unbounded.
	Browse(db *gorm.DB, term, category string, limit int) ([]*dto.GigResponse, error)
}

type GigServiceImpl struct {
	gigRepo repositories.GigRepository
}

func NewGigService(gigRepo repositories.GigRepository) GigService {
	return &GigServiceImpl{gigRepo: gigRepo}
}

func (s *GigServiceImpl) ListMine(db *gorm.DB, providerID string) ([]*dto.GigResponse, error) {
	gigs, err := s.gigRepo.FindByProvider(db, providerID)
	if err != nil {
		return nil, apperrors.DataError(err)
	}
	return dto.NewGigResponseList(gigs), nil
}

func (s *GigServiceImpl) Create(db *gorm.DB, providerID string, payload *dto.GigPayload) ([]*dto.GigResponse, error) {
	gig, err := payload.ToModel(providerID)
	if err != nil {
		return nil, err
	}

	if err := s.gigRepo.Create(db, gig); err != nil {
		return nil, apperrors.DataError(err)
	}

	// Re-query after every mutation so the returned view always
	// matches the stored state.
	return s.ListMine(db, providerID)
}

func (s *GigServiceImpl) Update(db *gorm.DB, providerID, gigID string, payload *dto.GigPayload) ([]*dto.GigResponse, error) {
	existing, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.NewNotFoundError("Gig not found")
		}
		return nil, apperrors.DataError(err)
	}

	if existing.ProviderID != providerID {
		return nil, apperrors.ErrNotGigOwner
	}

	updated, err := payload.ToModel(providerID)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID

	if err := s.gigRepo.Update(db, updated); err != nil {
		return nil, apperrors.DataError(err)
	}

	return s.ListMine(db, providerID)
}

func (s *GigServiceImpl) Delete(db *gorm.DB, providerID, gigID string) ([]*dto.GigResponse, error) {
	existing, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.NewNotFoundError("Gig not found")
		}
		return nil, apperrors.DataError(err)
	}

	if existing.ProviderID != providerID {
		return nil, apperrors.ErrNotGigOwner
	}

	if err := s.gigRepo.Delete(db, gigID); err != nil {
		return nil, apperrors.DataError(err)
	}

	return s.ListMine(db, providerID)
}

func (s *GigServiceImpl) Browse(db *gorm.DB, term, category string, limit int) ([]*dto.GigResponse, error) {
	gigs, err := s.gigRepo.FindOpen(db, limit)
	if err != nil {
		return nil, apperrors.DataError(err)
	}

	filtered := FilterGigs(gigs, term, models.GigCategory(category))
	return dto.NewGigResponseList(filtered), nil
}
