package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/logger"
)

var (
	// ErrMessageNotFound is returned when the message id is unknown.
	ErrMessageNotFound = errors.New("chat message not found")
	// ErrNotPending is returned when confirming a message that is not
	// awaiting an action (already executed, cancelled, or payload-less).
	ErrNotPending = errors.New("message has no pending action")
	// ErrStaffNotAllowed is returned when a staff account tries to confirm
	// a proposed action; the message is forced to cancelled.
	ErrStaffNotAllowed = errors.New("staff accounts cannot confirm actions")
)

// StoreMutator is the external mutation interface the lifecycle drives on
// confirm. Every operation may fail; failures are reported, never retried
// automatically.
type StoreMutator interface {
	UpdateProductPrice(ctx context.Context, productID string, newPrice float64) error
	LogNotification(ctx context.Context, n domain.Notification) error
	LogPurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error
	LogPromotion(ctx context.Context, p domain.Promotion) error
}

// Severity classifies a toast notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier is the fire-and-forget toast sink surfaced to the user.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LoggerNotifier routes toasts to the application logger.
type LoggerNotifier struct {
	Logger logger.Logger
}

// Notify implements Notifier.
func (n LoggerNotifier) Notify(message string, severity Severity) {
	if severity == SeverityError {
		n.Logger.Error("assistant toast", "message", message)
		return
	}
	n.Logger.Info("assistant toast", "message", message)
}

// Conversation holds a session's chat messages and runs the action
// proposal state machine: pending_action -> executed | cancelled. State is
// transient session memory; it is not persisted across restarts.
type Conversation struct {
	mu       sync.Mutex
	logger   logger.Logger
	mutator  StoreMutator
	notifier Notifier
	messages []ChatMessage
}

// NewConversation creates an empty conversation bound to a store-mutation
// interface and a toast sink.
func NewConversation(log logger.Logger, mutator StoreMutator, notifier Notifier) *Conversation {
	return &Conversation{
		logger:   log,
		mutator:  mutator,
		notifier: notifier,
	}
}

// AppendUser records an incoming user message and returns it.
func (c *Conversation) AppendUser(content string) ChatMessage {
	msg := ChatMessage{
		ID:        uuid.New().String(),
		Role:      "user",
		Content:   content,
		Timestamp: time.Now(),
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg
}

// AppendResponse wraps a resolver response into an assistant message. The
// message starts in pending_action iff the response proposes an action.
func (c *Conversation) AppendResponse(resp ChatResponse) ChatMessage {
	msg := ChatMessage{
		ID:             uuid.New().String(),
		Role:           "assistant",
		Content:        resp.HumanEN,
		ContentAR:      resp.HumanAR,
		Timestamp:      time.Now(),
		Payload:        resp.Payload,
		RelatedProduct: resp.RelatedProduct,
	}
	if resp.Payload != nil {
		msg.Status = StatusPendingAction
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg
}

// Messages returns a snapshot of the conversation.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear drops the conversation history.
func (c *Conversation) Clear() {
	c.mu.Lock()
	c.messages = nil
	c.mu.Unlock()
}

// Confirm executes the proposed action attached to a message. Staff are
// rejected and the proposal is cancelled. On mutator failure the message
// stays pending so the user can retry manually; nothing is retried here.
func (c *Conversation) Confirm(ctx context.Context, messageID string, role Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.find(messageID)
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.Status != StatusPendingAction || msg.Payload == nil {
		return ErrNotPending
	}

	if role == RoleStaff {
		msg.Status = StatusCancelled
		c.notifier.Notify("Staff accounts cannot confirm actions; the proposal was cancelled.", SeverityError)
		return ErrStaffNotAllowed
	}

	if err := c.execute(ctx, msg.Payload); err != nil {
		c.logger.Error("action execution failed", "message_id", messageID, "action", msg.Payload.Type, "error", err)
		c.notifier.Notify(fmt.Sprintf("Could not apply the action: %v", err), SeverityError)
		return err
	}

	msg.Status = StatusExecuted
	c.notifier.Notify("Action applied.", SeverityInfo)
	return nil
}

// Cancel transitions a pending message to cancelled. It is idempotent:
// cancelling a terminal message is a no-op. It reports whether the message
// exists.
func (c *Conversation) Cancel(messageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.find(messageID)
	if msg == nil {
		return false
	}
	if msg.Status == StatusPendingAction {
		msg.Status = StatusCancelled
		c.notifier.Notify("Action cancelled.", SeverityInfo)
	}
	return true
}

// execute dispatches a payload to the store-mutation interface. The switch
// is exhaustive over ActionType.
func (c *Conversation) execute(ctx context.Context, p *ActionPayload) error {
	now := time.Now()
	switch p.Type {
	case ActionChangePrice:
		return c.mutator.UpdateProductPrice(ctx, p.ChangePrice.ProductID, p.ChangePrice.NewPrice)
	case ActionNotifyAdmin:
		return c.mutator.LogNotification(ctx, domain.Notification{
			ID:          uuid.New().String(),
			TargetAdmin: p.NotifyAdmin.TargetAdmin,
			Channel:     p.NotifyAdmin.Channel,
			TemplateID:  p.NotifyAdmin.TemplateID,
			Preview:     p.NotifyAdmin.MessagePreview,
			CreatedAt:   now,
		})
	case ActionCreatePO:
		return c.mutator.LogPurchaseOrder(ctx, domain.PurchaseOrder{
			ID:            uuid.New().String(),
			ProductID:     p.CreatePO.ProductID,
			ProductName:   p.CreatePO.ProductName,
			SupplierID:    p.CreatePO.SupplierID,
			Quantity:      p.CreatePO.Quantity,
			EstimatedCost: p.CreatePO.EstimatedCost,
			Status:        "pending",
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	case ActionCreatePromotion:
		return c.mutator.LogPromotion(ctx, domain.Promotion{
			ID:              uuid.New().String(),
			Code:            p.CreatePromotion.Code,
			Category:        p.CreatePromotion.Category,
			DiscountPercent: p.CreatePromotion.DiscountPercent,
			DurationHours:   p.CreatePromotion.DurationHours,
			ExpectedUplift:  p.CreatePromotion.ExpectedUpliftPercent,
			StartsAt:        now,
			CreatedAt:       now,
		})
	default:
		return fmt.Errorf("unknown action type %q", p.Type)
	}
}

func (c *Conversation) find(messageID string) *ChatMessage {
	for i := range c.messages {
		if c.messages[i].ID == messageID {
			return &c.messages[i]
		}
	}
	return nil
}
