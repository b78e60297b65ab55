package assistant

import (
	"sync"

	"github.com/mostafakamar/hafla-store/pkg/logger"
)

// Hub maps session ids (one per authenticated user) to conversations.
// Conversations are created lazily and live in memory only.
type Hub struct {
	mu       sync.Mutex
	logger   logger.Logger
	mutator  StoreMutator
	notifier Notifier
	sessions map[string]*Conversation
}

// NewHub creates a conversation hub sharing one mutator and notifier.
func NewHub(log logger.Logger, mutator StoreMutator, notifier Notifier) *Hub {
	return &Hub{
		logger:   log,
		mutator:  mutator,
		notifier: notifier,
		sessions: make(map[string]*Conversation),
	}
}

// Session returns the conversation for a session id, creating it if needed.
func (h *Hub) Session(sessionID string) *Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()
	conv, ok := h.sessions[sessionID]
	if !ok {
		conv = NewConversation(h.logger, h.mutator, h.notifier)
		h.sessions[sessionID] = conv
	}
	return conv
}

// Drop removes a session's conversation.
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()
}
