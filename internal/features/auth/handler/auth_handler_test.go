package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cargoconnect/internal/features/auth/domain"
	"cargoconnect/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	admin, err := domain.NewAdmin("admin@cargoconnect.com", "Admin@123")
	require.NoError(t, err)

	app := fiber.New()
	handler := NewAuthHandler(service.NewAuthService(admin, "test-secret"))
	app.Post("/auth/login", handler.Login)
	return app
}

func login(t *testing.T, app *fiber.App, body LoginRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := setupApp(t)

		resp := login(t, app, LoginRequest{Email: "admin@cargoconnect.com", Password: "Admin@123"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out LoginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, "bearer", out.TokenType)
	})

	t.Run("WrongCredentials", func(t *testing.T) {
		app := setupApp(t)

		resp := login(t, app, LoginRequest{Email: "admin@cargoconnect.com", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("FailurePayloadShapeIdentical", func(t *testing.T) {
		app := setupApp(t)

		wrongPass := login(t, app, LoginRequest{Email: "admin@cargoconnect.com", Password: "wrong"})
		wrongEmail := login(t, app, LoginRequest{Email: "other@cargoconnect.com", Password: "Admin@123"})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, wrongEmail.StatusCode)

		bodyA, err := io.ReadAll(wrongPass.Body)
		require.NoError(t, err)
		bodyB, err := io.ReadAll(wrongEmail.Body)
		require.NoError(t, err)
		assert.JSONEq(t, string(bodyA), string(bodyB))
	})

	t.Run("BadBody", func(t *testing.T) {
		app := setupApp(t)

		req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
