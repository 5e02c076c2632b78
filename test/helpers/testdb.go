package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"gigconnect/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user and its profile directly in the test
// transaction, hashing the password when a raw one is given.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, fullName string) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "failed to hash test password")
		user.PasswordHash = string(hashed)
	}

	require.NoError(t, db.Create(user).Error, "failed to create test user %s", user.Email)

	profile := &models.Profile{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: fullName,
	}
	require.NoError(t, db.Create(profile).Error, "failed to create test profile for %s", user.Email)
	user.Profile = profile
}

// CreateAndLoginUser creates a user in the transaction and logs it in
// through the API, returning the access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, fullName, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, tx, user, fullName)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: %s", bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginProvider creates a gig provider with a unique email.
func CreateAndLoginProvider(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("provider_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Provider", email, "password123", models.UserRoleProvider)
}

// CreateAndLoginSeeker creates a gig seeker with a unique email.
func CreateAndLoginSeeker(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("seeker_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Seeker", email, "password123", models.UserRoleSeeker)
}

// CreateTestGig inserts a gig directly in the transaction.
func CreateTestGig(t *testing.T, tx *gorm.DB, providerID, title string, category models.GigCategory, status models.GigStatus) models.Gig {
	gig := models.Gig{
		ProviderID:  providerID,
		Title:       title,
		Description: "Test description for " + title,
		Category:    category,
		Status:      status,
	}
	require.NoError(t, tx.Create(&gig).Error, "failed to create test gig")
	return gig
}
