package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"gigconnect/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiny valid PNG header, enough for an upload body
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

type profileResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	AvatarURL string   `json:"avatar_url"`
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
}

func TestGetProfile_Public(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginProvider(t, ts, tx)

	// No token: profiles are publicly readable.
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/"+user.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "response: %s", bodyStr)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &profile))
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, user.Email, profile.Email)
	assert.NotNil(t, profile.Skills, "skills is always an array, never null")
}

func TestGetProfile_UnknownUser(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetOwnProfile_RequiresAuth(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestUpdateProfile_TextFields updates name, bio and skills without
// any files and checks skills are deduplicated.
func TestUpdateProfile_TextFields(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginSeeker(t, ts, tx)

	fields := map[string][]string{
		"full_name": {"Renamed Seeker"},
		"bio":       {"I find gigs"},
		"skills":    {"go", "sql", "go"},
	}
	res, bodyStr := ts.SendMultipartRequest(t, http.MethodPut, "/api/v1/profiles/me", token, fields, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "response: %s", bodyStr)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &profile))
	assert.Equal(t, "Renamed Seeker", profile.FullName)
	assert.Equal(t, "I find gigs", profile.Bio)
	assert.Equal(t, []string{"go", "sql"}, profile.Skills)
}

// TestUpdateProfile_AvatarUpload uploads an avatar and verifies the
// stored URL serves the file back.
func TestUpdateProfile_AvatarUpload(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginProvider(t, ts, tx)

	fields := map[string][]string{
		"full_name": {"Avatar Owner"},
	}
	files := []helpers.MultipartFile{
		{FieldName: "avatar", FileName: "me.png", ContentType: "image/png", Content: pngBytes},
	}
	res, bodyStr := ts.SendMultipartRequest(t, http.MethodPut, "/api/v1/profiles/me", token, fields, files)
	require.Equal(t, http.StatusOK, res.StatusCode, "response: %s", bodyStr)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &profile))
	require.NotEmpty(t, profile.AvatarURL)

	fileRes, _ := ts.SendRequest(t, http.MethodGet, profile.AvatarURL, "", nil)
	assert.Equal(t, http.StatusOK, fileRes.StatusCode)
	assert.Equal(t, "image/png", fileRes.Header.Get("Content-Type"))
}

// TestUpdateProfile_PortfolioUpload uploads portfolio files and lists
// them through the public portfolio endpoint.
func TestUpdateProfile_PortfolioUpload(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginProvider(t, ts, tx)

	fields := map[string][]string{
		"full_name": {"Portfolio Owner"},
	}
	files := []helpers.MultipartFile{
		{FieldName: "portfolio", FileName: "work1.png", ContentType: "image/png", Content: pngBytes},
		{FieldName: "portfolio", FileName: "work2.png", ContentType: "image/png", Content: pngBytes},
	}
	res, bodyStr := ts.SendMultipartRequest(t, http.MethodPut, "/api/v1/profiles/me", token, fields, files)
	require.Equal(t, http.StatusOK, res.StatusCode, "response: %s", bodyStr)

	listRes, listBody := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/"+user.ID+"/portfolio", "", nil)
	require.Equal(t, http.StatusOK, listRes.StatusCode, "response: %s", listBody)

	var portfolio struct {
		Items []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(listBody), &portfolio))
	assert.Equal(t, 2, portfolio.Total)

	for _, item := range portfolio.Items {
		fileRes, _ := ts.SendRequest(t, http.MethodGet, item.URL, "", nil)
		assert.Equal(t, http.StatusOK, fileRes.StatusCode, "portfolio file %s should be served", item.Name)
	}
}

func TestUpdateProfile_RejectsDisallowedFileType(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginProvider(t, ts, tx)

	fields := map[string][]string{
		"full_name": {"Evil Uploader"},
	}
	files := []helpers.MultipartFile{
		{FieldName: "avatar", FileName: "script.sh", ContentType: "application/x-sh", Content: []byte("#!/bin/sh\n")},
	}
	res, _ := ts.SendMultipartRequest(t, http.MethodPut, "/api/v1/profiles/me", token, fields, files)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetPortfolio_EmptyForNewUser(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginSeeker(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/"+user.ID+"/portfolio", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":0`)
}

func TestServeFile_PathTraversalRejected(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, http.MethodGet, "/files/..%2F..%2Fetc%2Fpasswd", "", nil)
	assert.NotEqual(t, http.StatusOK, res.StatusCode)
}
