package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/pkg/serverutils"
	"chat-messaging-be/internal/repository/memory"
	"chat-messaging-be/internal/repository/unitofwork"
	"chat-messaging-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app     *fiber.App
	factory unitofwork.RepositoryFactory
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := service.NewPublisherService("test_delivery", pubSub)

	unread := service.NewUnreadQueryService(factory)
	messages := service.NewMessageService(factory, service.NewEditHistoryRecorder(), publisher, nil, unread, log)
	threads := service.NewThreadService(factory)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewMessageController(messages, threads, unread).RegisterRoutes(api)

	return &testApp{app: app, factory: factory}
}

func (ta *testApp) createUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{Id: uuid.New(), Username: username, Email: username + "@example.com"}
	uow := ta.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), u))
	return u
}

func bearerToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func TestSendMessageEndpoint(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.createUser(t, "alice")
	bob := ta.createUser(t, "bob")

	res := doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1", bearerToken(t, alice.Id), dto.SendMessageRequest{
		ReceiverId: bob.Id,
		Content:    "hello over http",
	})
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Id uuid.UUID `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.NotEqual(t, uuid.Nil, envelope.Data.Id)
}

func TestSendMessageRequiresAuth(t *testing.T) {
	ta := newTestApp(t)
	bob := ta.createUser(t, "bob")

	res := doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1", "", dto.SendMessageRequest{
		ReceiverId: bob.Id,
		Content:    "anonymous",
	})
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSendMessageValidation(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.createUser(t, "alice")
	bob := ta.createUser(t, "bob")

	// Missing content.
	res := doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1", bearerToken(t, alice.Id), fiber.Map{
		"receiver_id": bob.Id,
	})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// Unknown receiver maps to 404 through the error handler.
	res = doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1", bearerToken(t, alice.Id), dto.SendMessageRequest{
		ReceiverId: uuid.New(),
		Content:    "to nobody",
	})
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestUnreadEndpoints(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.createUser(t, "alice")
	bob := ta.createUser(t, "bob")

	res := doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1", bearerToken(t, alice.Id), dto.SendMessageRequest{
		ReceiverId: bob.Id,
		Content:    "unread one",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res = doJSON(t, ta.app, fiber.MethodGet, "/api/message/v1/unread/count", bearerToken(t, bob.Id), nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var envelope struct {
		Data dto.UnreadCountResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.EqualValues(t, 1, envelope.Data.Count)

	res = doJSON(t, ta.app, fiber.MethodPost, "/api/message/v1/read", bearerToken(t, bob.Id), dto.MarkReadRequest{})
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res = doJSON(t, ta.app, fiber.MethodGet, "/api/message/v1/unread/count", bearerToken(t, bob.Id), nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.Zero(t, envelope.Data.Count)
}
