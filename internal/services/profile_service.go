package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"sort"
	"time"

	"gigconnect/internal/logger"
	"gigconnect/internal/repositories"
	"gigconnect/internal/services/dto"
	"gigconnect/internal/storage"
	"gigconnect/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	avatarPrefix    = "avatars"
	portfolioPrefix = "portfolios"
)

// UploadLimits bound what the profile editor accepts.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

type ProfileService interface {
	// GetProfile fetches a profile by the owning user's ID. Absence
	// is a distinct not-found condition, never a generic failure.
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)

	// GetPortfolio scans the user's storage prefix and derives a
	// public URL for each stored file.
	GetPortfolio(ctx context.Context, userID string) ([]dto.PortfolioItem, error)

	// UpdateProfile uploads staged files and writes the mutable
	// profile fields in one save. Only the owner's identity reaches
	// this method.
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	storage     storage.Storage
	limits      UploadLimits
}

func NewProfileService(profileRepo repositories.ProfileRepository, storageInstance storage.Storage, limits UploadLimits) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		storage:     storageInstance,
		limits:      limits,
	}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("Profile not found")
		}
		return nil, apperrors.DataError(err)
	}
	return dto.NewProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) GetPortfolio(ctx context.Context, userID string) ([]dto.PortfolioItem, error) {
	prefix := fmt.Sprintf("%s/%s", portfolioPrefix, userID)

	names, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	sort.Strings(names)

	items := make([]dto.PortfolioItem, 0, len(names))
	for _, name := range names {
		url, err := s.storage.GetURL(ctx, fmt.Sprintf("%s/%s", prefix, name))
		if err != nil {
			return nil, apperrors.StorageError(err)
		}
		items = append(items, dto.PortfolioItem{Name: name, URL: url})
	}
	return items, nil
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("Profile not found")
		}
		return nil, apperrors.DataError(err)
	}

	avatarURL := profile.AvatarURL
	if req.Avatar != nil {
		avatarURL, err = s.uploadAvatar(ctx, userID, req.Avatar)
		if err != nil {
			return nil, err
		}
	}

	if len(req.PortfolioFiles) > 0 {
		if err := s.uploadPortfolio(ctx, userID, req.PortfolioFiles); err != nil {
			return nil, err
		}
	}

	profile.FullName = req.FullName
	profile.Bio = req.Bio
	profile.SetSkills(dedupeSkills(req.Skills))
	profile.AvatarURL = avatarURL

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, apperrors.DataError(err)
	}

	logger.CtxInfo(ctx, "profile updated", "user_id", userID,
		"portfolio_files", len(req.PortfolioFiles), "avatar_replaced", req.Avatar != nil)

	return dto.NewProfileResponse(profile), nil
}

// uploadAvatar stores the avatar at a fixed per-user path, replacing
// the previous one.
func (s *ProfileServiceImpl) uploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	if err := s.validateFile(file); err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s/avatar%s", avatarPrefix, userID, filepath.Ext(file.Filename))

	if err := s.saveFile(ctx, path, file); err != nil {
		return "", apperrors.StorageError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.StorageError(err)
	}
	return url, nil
}

// uploadPortfolio fans the staged files out concurrently and waits for
// all of them. One failed upload fails the whole save.
func (s *ProfileServiceImpl) uploadPortfolio(ctx context.Context, userID string, files []*multipart.FileHeader) error {
	for _, file := range files {
		if err := s.validateFile(file); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			name, err := generatePortfolioName(file.Filename)
			if err != nil {
				return err
			}
			path := fmt.Sprintf("%s/%s/%s", portfolioPrefix, userID, name)
			return s.saveFile(gctx, path, file)
		})
	}

	if err := g.Wait(); err != nil {
		return apperrors.StorageError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) saveFile(ctx context.Context, path string, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	return s.storage.Save(ctx, path, src, contentTypeOf(file))
}

func (s *ProfileServiceImpl) validateFile(file *multipart.FileHeader) error {
	if s.limits.MaxSize > 0 && file.Size > s.limits.MaxSize {
		return apperrors.New(apperrors.CodeValidationFailed, "storage",
			fmt.Sprintf("File %s exceeds the %d byte limit", file.Filename, s.limits.MaxSize), 413)
	}

	if len(s.limits.AllowedTypes) == 0 {
		return nil
	}
	contentType := contentTypeOf(file)
	for _, allowed := range s.limits.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return apperrors.New(apperrors.CodeValidationFailed, "storage",
		fmt.Sprintf("File type %s is not allowed", contentType), 400)
}

func contentTypeOf(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(filepath.Ext(file.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// generatePortfolioName builds a collision-resistant file name keeping
// the original extension.
func generatePortfolioName(original string) (string, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(raw), filepath.Ext(original)), nil
}

// dedupeSkills drops repeated skill tags, keeping first-seen order.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}
