package dto

import (
	"github.com/mostafakamar/hafla-store/pkg/assistant"
)

// ChatRequest is the body for sending a message to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatMessageResponse mirrors a conversation entry
type ChatMessageResponse struct {
	ID             string                   `json:"id"`
	Role           string                   `json:"role"`
	Content        string                   `json:"content"`
	ContentAR      string                   `json:"content_ar,omitempty"`
	Timestamp      string                   `json:"timestamp"`
	Status         string                   `json:"status,omitempty"`
	Payload        *assistant.ActionPayload `json:"payload,omitempty"`
	RelatedProduct interface{}              `json:"related_product,omitempty"`
	Confidence     float64                  `json:"confidence,omitempty"`
	Explanation    string                   `json:"explanation,omitempty"`
}

// ChatTurnResponse is returned from the message endpoint: the stored user
// message and the assistant's reply
type ChatTurnResponse struct {
	UserMessage      ChatMessageResponse `json:"user_message"`
	AssistantMessage ChatMessageResponse `json:"assistant_message"`
}

// FromChatMessage converts a conversation entry to its response shape
func FromChatMessage(m assistant.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.Content,
		ContentAR: m.ContentAR,
		Timestamp: m.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Status:    string(m.Status),
		Payload:   m.Payload,
	}
	if m.RelatedProduct != nil {
		resp.RelatedProduct = m.RelatedProduct
	}
	return resp
}
