package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, eventType string) *SessionEvent {
	t.Helper()
	event, err := NewSessionEvent(eventType, uuid.New(), "CS", nil)
	require.NoError(t, err)
	return event
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		assert.NoError(t, emitter.EmitEvent(ctx, mustEvent(t, TypeSessionStarted)))
	})

	t.Run("every handler receives the event", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		first, second := &MockEventHandler{}, &MockEventHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event := mustEvent(t, TypeReviewRecorded)
		require.NoError(t, emitter.EmitEvent(ctx, event))

		assert.Equal(t, 1, first.HandledCount)
		assert.Equal(t, 1, second.HandledCount)
		assert.Same(t, event, first.LastEvent)
		assert.Same(t, event, second.LastEvent)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		failing := &MockEventHandler{HandlerError: errors.New("handler error")}
		ok := &MockEventHandler{}
		alsoFailing := &MockEventHandler{HandlerError: errors.New("second error")}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(ok)
		emitter.RegisterHandler(alsoFailing)

		err := emitter.EmitEvent(ctx, mustEvent(t, TypeSessionCompleted))

		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, failing.HandledCount)
		assert.Equal(t, 1, ok.HandledCount)
		assert.Equal(t, 1, alsoFailing.HandledCount)
	})

	t.Run("handlers only see subscribed types", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		all := &MockEventHandler{}
		endings := &MockEventHandler{}
		emitter.RegisterHandler(all)
		emitter.RegisterHandler(endings, TypeSessionCompleted, TypeSessionEnded)

		for _, eventType := range []string{
			TypeSessionStarted,
			TypeReviewRecorded,
			TypeSessionCompleted,
			TypeSessionEnded,
			TypeSessionReset,
		} {
			require.NoError(t, emitter.EmitEvent(ctx, mustEvent(t, eventType)))
		}

		assert.Equal(t, 5, all.HandledCount)
		assert.Equal(t, 2, endings.HandledCount)
		assert.Equal(t, TypeSessionEnded, endings.LastEvent.Type)
	})

	t.Run("unsubscribed failing handler is skipped", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		failing := &MockEventHandler{HandlerError: errors.New("boom")}
		emitter.RegisterHandler(failing, TypeSessionReset)

		assert.NoError(t, emitter.EmitEvent(ctx, mustEvent(t, TypeSessionStarted)))
		assert.Zero(t, failing.HandledCount)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		assert.NotNil(t, emitter.logger)
	})
}

func TestEmitterLogsWithContextLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctxLogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logger.WithLogger(context.Background(), ctxLogger)

	emitter := NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	emitter.RegisterHandler(&MockEventHandler{HandlerError: errors.New("disk full")})

	event := mustEvent(t, TypeReviewRecorded)
	require.Error(t, emitter.EmitEvent(ctx, event))

	out := buf.String()
	assert.Contains(t, out, `"msg":"event handler failed"`)
	assert.Contains(t, out, `"error":"disk full"`)
	assert.Contains(t, out, event.ID.String())
	assert.Contains(t, out, `"delivered":1`)
}

func TestLogHandler(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))

	event, err := NewSessionEvent(TypeSessionStarted, uuid.New(), "Spanish", map[string]int{"cards": 3})
	require.NoError(t, err)

	require.NoError(t, LogHandler(l).HandleEvent(context.Background(), event))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"session.started"`)
	assert.Contains(t, out, `"deck":"Spanish"`)
	assert.Contains(t, out, event.SessionID.String())
}
