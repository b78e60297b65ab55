package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	"github.com/mostafakamar/hafla-store/internal/cache"
	"github.com/mostafakamar/hafla-store/pkg/assistant"
	"github.com/mostafakamar/hafla-store/pkg/auth"
	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/logger"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

const catalogCacheTTL = 30 * time.Second

// AssistantController handles the back-office chat assistant requests
type AssistantController struct {
	resolver *assistant.Resolver
	hub      *assistant.Hub
	products repository.ProductRepository
	catalog  cache.CatalogCache
	logger   logger.Logger
}

// NewAssistantController creates a new AssistantController instance
func NewAssistantController(resolver *assistant.Resolver, hub *assistant.Hub, products repository.ProductRepository, catalog cache.CatalogCache, log logger.Logger) *AssistantController {
	return &AssistantController{
		resolver: resolver,
		hub:      hub,
		products: products,
		catalog:  catalog,
		logger:   log,
	}
}

// SendMessage resolves a chat message against the catalog
// @Summary Send a message to the assistant
// @Description Resolves the message into a bilingual reply and, when applicable, a proposed action awaiting confirmation
// @Tags assistant
// @Accept json
// @Produce json
// @Param message body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatTurnResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assistant/messages [post]
func (c *AssistantController) SendMessage(ctx *gin.Context) {
	var request dto.ChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	userID, _, role := auth.CurrentUser(ctx)

	catalog, err := c.loadCatalog(ctx)
	if err != nil {
		c.logger.Error("failed to load catalog", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to load the catalog", err.Error()))
		return
	}

	conv := c.hub.Session(userID)
	aiCtx := assistant.DeriveContext(conv.Messages(), assistant.Role(role))
	resp := c.resolver.Resolve(request.Message, catalog, aiCtx)

	userMsg := conv.AppendUser(request.Message)
	assistantMsg := conv.AppendResponse(resp)

	assistantOut := dto.FromChatMessage(assistantMsg)
	assistantOut.Confidence = resp.Confidence
	assistantOut.Explanation = resp.Explanation

	ctx.JSON(http.StatusOK, dto.ChatTurnResponse{
		UserMessage:      dto.FromChatMessage(userMsg),
		AssistantMessage: assistantOut,
	})
}

// ConfirmAction executes the proposed action attached to a message
// @Summary Confirm a proposed action
// @Description Applies the pending action on a message; staff confirmations are rejected and the proposal is cancelled
// @Tags assistant
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assistant/messages/{id}/confirm [post]
func (c *AssistantController) ConfirmAction(ctx *gin.Context) {
	userID, _, role := auth.CurrentUser(ctx)
	messageID := ctx.Param("id")

	conv := c.hub.Session(userID)
	err := conv.Confirm(ctx.Request.Context(), messageID, assistant.Role(role))
	switch {
	case err == nil:
		if err := c.catalog.Invalidate(ctx.Request.Context()); err != nil {
			c.logger.Warn("failed to invalidate catalog cache", "error", err)
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Action executed", nil))
	case errors.Is(err, assistant.ErrMessageNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Message not found", ""))
	case errors.Is(err, assistant.ErrNotPending):
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "No pending action", "The message has no action awaiting confirmation"))
	case errors.Is(err, assistant.ErrStaffNotAllowed):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Confirmation not allowed", "Staff accounts cannot confirm actions; the proposal was cancelled"))
	default:
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to execute the action", err.Error()))
	}
}

// CancelAction cancels the proposed action attached to a message
// @Summary Cancel a proposed action
// @Description Moves a pending action to cancelled; cancelling an already terminal message is a no-op
// @Tags assistant
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assistant/messages/{id}/cancel [post]
func (c *AssistantController) CancelAction(ctx *gin.Context) {
	userID, _, _ := auth.CurrentUser(ctx)
	messageID := ctx.Param("id")

	conv := c.hub.Session(userID)
	if !conv.Cancel(messageID) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Message not found", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Action cancelled", nil))
}

// History returns the conversation history for the caller's session
// @Summary List the conversation history
// @Tags assistant
// @Produce json
// @Success 200 {array} dto.ChatMessageResponse
// @Security BearerAuth
// @Router /assistant/messages [get]
func (c *AssistantController) History(ctx *gin.Context) {
	userID, _, _ := auth.CurrentUser(ctx)

	conv := c.hub.Session(userID)
	messages := conv.Messages()

	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.FromChatMessage(m))
	}

	ctx.JSON(http.StatusOK, out)
}

// ClearHistory drops the conversation history for the caller's session
// @Summary Clear the conversation history
// @Tags assistant
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /assistant/messages [delete]
func (c *AssistantController) ClearHistory(ctx *gin.Context) {
	userID, _, _ := auth.CurrentUser(ctx)

	c.hub.Session(userID).Clear()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("History cleared", nil))
}

// loadCatalog reads the catalog through the cache, falling back to the
// database on a miss
func (c *AssistantController) loadCatalog(ctx *gin.Context) ([]domain.Product, error) {
	reqCtx := ctx.Request.Context()

	if cached, ok, err := c.catalog.Get(reqCtx); err == nil && ok {
		return cached, nil
	} else if err != nil {
		c.logger.Warn("catalog cache read failed", "error", err)
	}

	products, err := c.products.FindAll(reqCtx)
	if err != nil {
		return nil, err
	}

	if err := c.catalog.Set(reqCtx, products, catalogCacheTTL); err != nil {
		c.logger.Warn("catalog cache write failed", "error", err)
	}

	return products, nil
}
