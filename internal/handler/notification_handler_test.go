package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/serverutils"
	internalWS "ai-mediagen-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "ws-secret"

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(logger.NewNopLogger())})
	NewNotificationHandler(hub, testSecret, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return app, token
}

func TestServeWsRejectsMissingAndInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/notification/v1/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/notification/v1/ws?token=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app, token := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/notification/v1/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestStatusCountsConnections(t *testing.T) {
	app, token := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notification/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
