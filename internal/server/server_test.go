package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"husq/internal/config"
	"husq/internal/models"
	"husq/internal/repository"
	"husq/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testWorkspace = "husq-workspace"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Husq{},
		&models.Like{},
		&models.Follow{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// newTestServer wires a Server against an in-memory database with the full
// route table, skipping the Prometheus middleware so tests can build as many
// servers as they need.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	cfg := &config.Config{
		JWTSecret: "test-secret-that-is-long-enough-32",
		Workspace: testWorkspace,
		Port:      "0",
	}

	userRepo := repository.NewUserRepository(db)
	husqRepo := repository.NewHusqRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		husqRepo:    husqRepo,
		userService: service.NewUserService(userRepo),
		husqService: service.NewHusqService(husqRepo, userRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

// createTestAccount inserts a user with a working credential and returns the
// user plus a valid bearer token.
func createTestAccount(t *testing.T, s *Server, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{Username: username, Name: username}
	require.NoError(t, db.Create(user).Error)

	digest, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Credential{UserID: user.ID, Password: string(digest)}).Error)

	token, err := s.generateToken(user)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
