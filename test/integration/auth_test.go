package integration_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"gigconnect/internal/models"
	"gigconnect/internal/repositories"
	"gigconnect/internal/services"
	"gigconnect/internal/services/dto"
	"gigconnect/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestRegister_EstablishesSession verifies registration returns a
// usable session right away, with the profile created alongside.
func TestRegister_EstablishesSession(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"full_name": "New Provider",
		"email":     "new_provider@test.com",
		"password":  "super_password123",
		"role":      "gig_provider",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "response: %s", bodyStr)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new_provider@test.com", resp.User.Email)
	assert.Equal(t, "gig_provider", resp.User.Role)
	assert.Equal(t, "New Provider", resp.User.FullName)

	// The access token works immediately.
	profRes, profBody := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", resp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, profRes.StatusCode, "response: %s", profBody)
	assert.Contains(t, profBody, "new_provider@test.com")
}

// TestRegister_DefaultRoleIsSeeker checks that registration without a
// role lands on gig_seeker.
func TestRegister_DefaultRoleIsSeeker(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"full_name": "No Role User",
		"email":     "norole@test.com",
		"password":  "super_password123",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "response: %s", bodyStr)
	assert.Contains(t, bodyStr, `"role":"gig_seeker"`)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	user := &models.User{
		Email:        "duplicate@test.com",
		PasswordHash: "pass123456",
		Role:         models.UserRoleSeeker,
	}
	helpers.CreateUser(t, tx, user, "User One")

	duplicateBody := map[string]interface{}{
		"full_name": "User Two",
		"email":     "duplicate@test.com",
		"password":  "another_password123",
		"role":      "gig_provider",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "already registered")
}

func TestRegister_WeakPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"full_name": "Short Password",
		"email":     "shortpw@test.com",
		"password":  "abc",
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLogin_BadPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	user := &models.User{
		Email:        "user@test.com",
		PasswordHash: "correct-password",
		Role:         models.UserRoleSeeker,
	}
	helpers.CreateUser(t, tx, user, "Test User")

	loginBody := map[string]interface{}{
		"email":    "user@test.com",
		"password": "wrong-password",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	loginBody := map[string]interface{}{
		"email":    "nobody@test.com",
		"password": "whatever123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)

	// Same answer as a bad password, no account enumeration.
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

// TestRefresh_RotatesToken verifies the refresh flow issues a new
// session and burns the old refresh token.
func TestRefresh_RotatesToken(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"full_name": "Refresh User",
		"email":     "refresh@test.com",
		"password":  "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var session struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &session))

	refreshBody := map[string]interface{}{"refresh_token": session.RefreshToken}
	res2, bodyStr2 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	require.Equal(t, http.StatusOK, res2.StatusCode, "response: %s", bodyStr2)

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr2), &rotated))
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token is single-use.
	res3, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusUnauthorized, res3.StatusCode)
}

// failingProfileRepo forces the profile insert to fail so the
// registration transaction has to roll the user row back.
type failingProfileRepo struct {
	repositories.ProfileRepository
}

func (failingProfileRepo) Create(db *gorm.DB, profile *models.Profile) error {
	return errors.New("profile insert failed")
}

// TestRegister_ProfileFailureLeavesNoUser verifies user and profile
// creation is atomic: when the profile insert fails, no orphan user
// row survives.
func TestRegister_ProfileFailureLeavesNoUser(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	svc := services.NewAuthService(
		repositories.NewUserRepository(),
		failingProfileRepo{repositories.NewProfileRepository()},
	)

	_, err := svc.Register(tx, &dto.RegisterRequest{
		FullName: "Orphan Check",
		Email:    "orphan@test.com",
		Password: "super_password123",
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, tx.Model(&models.User{}).Where("email = ?", "orphan@test.com").Count(&count).Error)
	assert.Zero(t, count, "failed registration must not leave a user row")
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"full_name": "Logout User",
		"email":     "logout@test.com",
		"password":  "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var session struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &session))

	logoutBody := map[string]interface{}{"refresh_token": session.RefreshToken}
	res2, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", logoutBody)
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	res3, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", logoutBody)
	assert.Equal(t, http.StatusUnauthorized, res3.StatusCode)
}

// TestLogout_Everywhere revokes every session of the account, not just
// the one presenting the token.
func TestLogout_Everywhere(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"full_name": "Multi Session",
		"email":     "multisession@test.com",
		"password":  "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var first struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &first))

	// Second session via login.
	loginBody := map[string]interface{}{
		"email":    "multisession@test.com",
		"password": "super_password123",
	}
	res2, bodyStr2 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res2.StatusCode)

	var second struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr2), &second))

	logoutBody := map[string]interface{}{
		"refresh_token": second.RefreshToken,
		"all":           true,
	}
	res3, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", logoutBody)
	require.Equal(t, http.StatusOK, res3.StatusCode)

	// Both sessions are gone.
	res4, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{"refresh_token": first.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, res4.StatusCode)
	res5, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{"refresh_token": second.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, res5.StatusCode)
}

// TestCleanExpiredRefreshTokens covers the startup sweep: expired rows
// go, live ones stay.
func TestCleanExpiredRefreshTokens(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginSeeker(t, ts, tx)

	repo := repositories.NewUserRepository()
	require.NoError(t, repo.CreateRefreshToken(tx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.CreateRefreshToken(tx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "live-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.CleanExpiredRefreshTokens(tx))

	_, err := repo.FindRefreshToken(tx, "expired-token")
	assert.Error(t, err)
	_, err = repo.FindRefreshToken(tx, "live-token")
	assert.NoError(t, err)
}
