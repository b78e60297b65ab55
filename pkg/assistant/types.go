package assistant

import (
	"time"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// Role identifies who is talking to the assistant
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// ActionType is the closed set of mutations the assistant may propose
type ActionType string

const (
	ActionChangePrice     ActionType = "change_price"
	ActionNotifyAdmin     ActionType = "notify_admin"
	ActionCreatePO        ActionType = "create_po"
	ActionCreatePromotion ActionType = "create_promotion"
)

// ChangePriceParams carries a proposed price update. OldPrice is the catalog
// price snapshot taken at resolve time; Confirm applies NewPrice from the
// payload, it does not recompute.
type ChangePriceParams struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	Reason      string  `json:"reason"`
}

// NotifyAdminParams carries a proposed admin notification
type NotifyAdminParams struct {
	TargetAdmin    string `json:"target_admin"`
	Channel        string `json:"channel,omitempty"`
	TemplateID     string `json:"template_id,omitempty"`
	MessagePreview string `json:"message_preview,omitempty"`
}

// CreatePOParams carries a proposed purchase order
type CreatePOParams struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	SupplierID    string  `json:"supplier_id"`
	Quantity      int     `json:"quantity"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// CreatePromotionParams carries a proposed promotion campaign
type CreatePromotionParams struct {
	Code                  string          `json:"code"`
	Category              domain.Category `json:"category"`
	DiscountPercent       int             `json:"discount_percent"`
	DurationHours         int             `json:"duration_hours"`
	ExpectedUpliftPercent int             `json:"expected_uplift_percent"`
}

// ActionPayload is a tagged union: exactly one variant field is non-nil and
// it matches Type. Both the resolver (construction) and the lifecycle
// (interpretation) switch exhaustively on Type, so adding an action type is
// a compile-visible change in both places.
type ActionPayload struct {
	Type            ActionType             `json:"action_type"`
	ChangePrice     *ChangePriceParams     `json:"change_price,omitempty"`
	NotifyAdmin     *NotifyAdminParams     `json:"notify_admin,omitempty"`
	CreatePO        *CreatePOParams        `json:"create_po,omitempty"`
	CreatePromotion *CreatePromotionParams `json:"create_promotion,omitempty"`
}

// AIContext is the per-turn conversation context the caller passes into
// Resolve. It is derived outside the resolver (see DeriveContext), keeping
// Resolve a pure function.
type AIContext struct {
	LastProductID string `json:"last_product_id,omitempty"`
	UserRole      Role   `json:"user_role"`
}

// ChatResponse is the resolver output: a bilingual reply, an optional
// proposed action and a confidence score.
type ChatResponse struct {
	HumanEN        string          `json:"human_en"`
	HumanAR        string          `json:"human_ar"`
	Payload        *ActionPayload  `json:"action_payload"`
	Confidence     float64         `json:"confidence"`
	Explanation    string          `json:"explanation"`
	RelatedProduct *domain.Product `json:"related_product,omitempty"`
}

// MessageStatus tracks the action-proposal state machine on a message.
// pending_action is set iff the message carries a payload; executed and
// cancelled are terminal.
type MessageStatus string

const (
	StatusPendingAction MessageStatus = "pending_action"
	StatusExecuted      MessageStatus = "executed"
	StatusCancelled     MessageStatus = "cancelled"
)

// ChatMessage is a conversation entry. Assistant messages wrapping a
// payload start in pending_action and are mutated exactly once, by Confirm
// or Cancel.
type ChatMessage struct {
	ID             string          `json:"id"`
	Role           string          `json:"role"` // user | assistant
	Content        string          `json:"content"`
	ContentAR      string          `json:"content_ar,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Payload        *ActionPayload  `json:"payload,omitempty"`
	Status         MessageStatus   `json:"status,omitempty"`
	RelatedProduct *domain.Product `json:"related_product,omitempty"`
}
