package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gigconnect/internal/auth"
	"gigconnect/internal/models"
	"gigconnect/internal/repositories"
	"gigconnect/internal/services/dto"
	"gigconnect/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string, everywhere bool) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Register creates the user and its profile, then establishes a
// session immediately.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.UserRoleSeeker
	}
	if !models.ValidUserRole(role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	var profile *models.Profile

	// User and profile are created atomically. One profile per
	// identity, created with the account.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile = &models.Profile{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: req.FullName,
		}
		return s.profileRepo.Create(tx, profile)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DataError(err)
	}
	user.Profile = profile

	return s.buildSession(db, user)
}

// Login authenticates by email and password.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DataError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildSession(db, user)
}

// Refresh trades a valid refresh token for a fresh session. Used to
// restore a session on application start.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old token is single-use.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.DataError(err)
	}

	return s.buildSession(db, user)
}

// Logout revokes the refresh token, clearing the stored session state.
// With everywhere set, every session of the token's owner is revoked.
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string, everywhere bool) error {
	if everywhere {
		stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
		if err != nil {
			return apperrors.ErrInvalidToken
		}
		if err := s.userRepo.DeleteUserRefreshTokens(db, stored.UserID); err != nil {
			return apperrors.DataError(err)
		}
		return nil
	}

	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.DataError(err)
	}
	return nil
}

func (s *AuthServiceImpl) buildSession(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userResp := &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
	if user.Profile != nil {
		userResp.FullName = user.Profile.FullName
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResp,
	}, nil
}

func (s *AuthServiceImpl) createRefreshToken(db *gorm.DB, userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	rt := &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, rt); err != nil {
		return "", err
	}
	return token, nil
}
