package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	pgrepo "github.com/mostafakamar/hafla-store/internal/adapter/repository"
	"github.com/mostafakamar/hafla-store/internal/adapter/repository/memory"
	"github.com/mostafakamar/hafla-store/internal/cache"
	"github.com/mostafakamar/hafla-store/pkg/assistant"
	"github.com/mostafakamar/hafla-store/pkg/logger"
)

// fakeAuth stands in for the JWT middleware and trusts two test headers.
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Set("user_name", "Test User")
		c.Set("user_role", c.GetHeader("X-Test-Role"))
		c.Next()
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewSeeded()
	log := logger.NewLogger()
	mutator := pgrepo.NewMutator(store, store)
	hub := assistant.NewHub(log, mutator, assistant.LoggerNotifier{Logger: log})
	ctrl := NewAssistantController(assistant.NewResolver(), hub, store, cache.NoopCatalogCache{}, log)

	router := gin.New()
	api := router.Group("/api/v1/assistant", fakeAuth())
	api.POST("/messages", ctrl.SendMessage)
	api.GET("/messages", ctrl.History)
	api.DELETE("/messages", ctrl.ClearHistory)
	api.POST("/messages/:id/confirm", ctrl.ConfirmAction)
	api.POST("/messages/:id/cancel", ctrl.CancelAction)

	return router, store
}

func sendChat(t *testing.T, router *gin.Engine, user, role, message string) dto.ChatTurnResponse {
	t.Helper()

	body, err := json.Marshal(dto.ChatRequest{Message: message})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	req.Header.Set("X-Test-Role", role)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var turn dto.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	return turn
}

func postAction(router *gin.Engine, user, role, messageID, verb string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages/"+messageID+"/"+verb, nil)
	req.Header.Set("X-Test-User", user)
	req.Header.Set("X-Test-Role", role)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendMessageProposesPriceChange(t *testing.T) {
	router, _ := newTestRouter(t)

	turn := sendChat(t, router, "admin-1", "admin", "Change the price of Cub 2025 (Blue Party Cups) to 150")

	assert.Equal(t, "assistant", turn.AssistantMessage.Role)
	assert.Equal(t, string(assistant.StatusPendingAction), turn.AssistantMessage.Status)
	require.NotNil(t, turn.AssistantMessage.Payload)
	assert.Equal(t, assistant.ActionChangePrice, turn.AssistantMessage.Payload.Type)
	assert.NotEmpty(t, turn.AssistantMessage.ContentAR)
}

func TestConfirmAppliesPriceChange(t *testing.T) {
	router, store := newTestRouter(t)

	turn := sendChat(t, router, "admin-1", "admin", "Change the price of Cub 2025 (Blue Party Cups) to 150")
	w := postAction(router, "admin-1", "admin", turn.AssistantMessage.ID, "confirm")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p, err := store.FindByID(context.Background(), "prd-1001")
	require.NoError(t, err)
	assert.Equal(t, 150.0, p.Price)
}

func TestConfirmTwiceReturnsConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	turn := sendChat(t, router, "admin-1", "admin", "Change the price of Cub 2025 (Blue Party Cups) to 150")
	require.Equal(t, http.StatusOK, postAction(router, "admin-1", "admin", turn.AssistantMessage.ID, "confirm").Code)

	w := postAction(router, "admin-1", "admin", turn.AssistantMessage.ID, "confirm")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStaffConfirmIsForbidden(t *testing.T) {
	router, store := newTestRouter(t)

	// A restock proposal is one a staff session can legitimately receive.
	turn := sendChat(t, router, "staff-1", "staff", "Order a restock of Pharaoh Costume Kids")
	require.NotNil(t, turn.AssistantMessage.Payload)

	w := postAction(router, "staff-1", "staff", turn.AssistantMessage.ID, "confirm")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.PurchaseOrders())
}

func TestCancelPendingProposal(t *testing.T) {
	router, store := newTestRouter(t)

	turn := sendChat(t, router, "admin-1", "admin", "Change the price of Cub 2025 (Blue Party Cups) to 150")
	w := postAction(router, "admin-1", "admin", turn.AssistantMessage.ID, "cancel")
	require.Equal(t, http.StatusOK, w.Code)

	p, err := store.FindByID(context.Background(), "prd-1001")
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.Price, "a cancelled proposal must not mutate the store")
}

func TestConfirmUnknownMessageReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postAction(router, "admin-1", "admin", "no-such-id", "confirm")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryIsPerSession(t *testing.T) {
	router, _ := newTestRouter(t)

	sendChat(t, router, "admin-1", "admin", "hello there")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assistant/messages", nil)
	req.Header.Set("X-Test-User", "admin-2")
	req.Header.Set("X-Test-Role", "admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var messages []dto.ChatMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	assert.Empty(t, messages)
}

func TestAnaphoraAcrossTurns(t *testing.T) {
	router, _ := newTestRouter(t)

	sendChat(t, router, "admin-1", "admin", "What is the price of Helium Balloon Jumbo?")
	turn := sendChat(t, router, "admin-1", "admin", "how many do we have left of it?")

	assert.Contains(t, turn.AssistantMessage.Content, "12")
	assert.Nil(t, turn.AssistantMessage.Payload)
}

func TestClearHistory(t *testing.T) {
	router, _ := newTestRouter(t)

	sendChat(t, router, "admin-1", "admin", "hello there")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assistant/messages", nil)
	req.Header.Set("X-Test-User", "admin-1")
	req.Header.Set("X-Test-Role", "admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	turn := sendChat(t, router, "admin-1", "admin", "how many do we have left of it?")
	assert.NotContains(t, turn.AssistantMessage.Content, "12", "cleared history must not leak context")
}
