package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"gigconnect/internal/app"
	"gigconnect/internal/auth"
	"gigconnect/internal/config"
	"gigconnect/internal/logger"
	"gigconnect/pkg/contextkeys"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer runs the full HTTP stack against a real database. Each
// test wraps its work in a transaction that is rolled back afterwards,
// so tests never see each other's rows.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB

	uploadDir string

	mu sync.RWMutex
	tx *gorm.DB
}

// NewTestServer connects to the database named by DATABASE_URL,
// migrates it and starts an httptest server around the real router.
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init("test")
	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	// Keep test uploads out of the working tree. The directory
	// outlives the first test because the server is shared.
	uploadDir, err := os.MkdirTemp("", "gigconnect-test-uploads-")
	if err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = uploadDir

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := app.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router, err := app.SetupRouter(db, cfg)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	ts := &TestServer{DB: db, uploadDir: uploadDir}

	// An active test transaction is injected into the request context,
	// where DBMiddleware picks it up instead of the pool.
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.RLock()
		tx := ts.tx
		ts.mu.RUnlock()

		if tx != nil {
			r = r.WithContext(context.WithValue(r.Context(), contextkeys.DBContextKey, tx))
		}
		router.ServeHTTP(w, r)
	}))

	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
	if ts.uploadDir != "" {
		os.RemoveAll(ts.uploadDir)
	}
}

// BeginTransaction opens the transaction all subsequent requests run
// in. Tests sharing the server must not run in parallel.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}

	ts.mu.Lock()
	ts.tx = tx
	ts.mu.Unlock()

	return tx
}

// RollbackTransaction discards everything the test wrote.
func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	ts.mu.Lock()
	ts.tx = nil
	ts.mu.Unlock()

	if err := tx.Rollback().Error; err != nil {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest performs a JSON request against the test server.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// MultipartFile is a file attached to a multipart request.
type MultipartFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// SendMultipartRequest performs a multipart/form-data request, used by
// the profile upload tests.
func (ts *TestServer) SendMultipartRequest(t *testing.T, method, path, token string, fields map[string][]string, files []MultipartFile) (*http.Response, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(name, value); err != nil {
				t.Fatalf("failed to write form field %s: %v", name, err)
			}
		}
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
		if file.ContentType != "" {
			header.Set("Content-Type", file.ContentType)
		}

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", file.FileName, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			t.Fatalf("failed to write form file %s: %v", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to finalize multipart body: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// SkipWithoutDatabase skips integration tests when no test database is
// configured.
func SkipWithoutDatabase(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
}
