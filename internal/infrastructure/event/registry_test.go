package event

import (
	"context"
	"testing"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func noopHandler(types ...string) *HandlerFunc {
	return NewHandlerFunc(func(context.Context, shared.DomainEvent) error { return nil }, types...)
}

func TestHandlerRegistry_Register(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := noopHandler()

	registry.Register(handler, "audio_request.created", "audio_request.paid")

	assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("audio_request.created"))
	assert.Equal(t, []shared.EventHandler{handler}, registry.GetHandlers("audio_request.paid"))
	assert.Empty(t, registry.GetHandlers("payment.failed"))
	assert.ElementsMatch(t, []string{"audio_request.created", "audio_request.paid"}, registry.EventTypes())
}

func TestHandlerRegistry_WildcardComesLast(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := noopHandler()
	typed := noopHandler()

	registry.Register(wildcard)
	registry.Register(typed, "message.sent")

	handlers := registry.GetHandlers("message.sent")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])

	assert.Equal(t, []shared.EventHandler{wildcard}, registry.GetHandlers("recording.shared"))
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	first := noopHandler()
	second := noopHandler()

	registry.Register(first, "payment.completed", "payment.refunded")
	registry.Register(second, "payment.completed")
	registry.Register(first)

	registry.Unregister(first)

	assert.Equal(t, []shared.EventHandler{second}, registry.GetHandlers("payment.completed"))
	assert.Empty(t, registry.GetHandlers("payment.refunded"))
	assert.Equal(t, []string{"payment.completed"}, registry.EventTypes())
}
