package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mostafakamar/hafla-store/pkg/logger"
)

func TestHubReturnsSameConversationPerSession(t *testing.T) {
	hub := NewHub(logger.NewLogger(), &fakeMutator{}, &fakeNotifier{})

	a := hub.Session("user-a")
	b := hub.Session("user-b")
	assert.NotSame(t, a, b)

	a.AppendUser("hello")
	assert.Same(t, a, hub.Session("user-a"))
	assert.Len(t, hub.Session("user-a").Messages(), 1)
	assert.Empty(t, hub.Session("user-b").Messages())
}

func TestHubDropResetsSession(t *testing.T) {
	hub := NewHub(logger.NewLogger(), &fakeMutator{}, &fakeNotifier{})

	hub.Session("user-a").AppendUser("hello")
	hub.Drop("user-a")

	assert.Empty(t, hub.Session("user-a").Messages())
}
