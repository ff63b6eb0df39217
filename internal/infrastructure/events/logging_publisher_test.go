package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	logginginfra "github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer, level string) ports.Logger {
	t.Helper()
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     level,
		Layer:     "test",
		Component: "publisher",
	})
	require.NoError(t, err)
	return logger
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "debug"))

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, sampleEvent{
		eventType: ports.EventAddinLocated,
		payload:   map[string]interface{}{"path": "/addins/plantilla.xlam"},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["message"])
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, ports.EventAddinLocated, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "/addins/plantilla.xlam", entry["path"])
}

func TestLoggingPublisherLogsFailuresAsWarnings(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "warn"))

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventAddinActivated}))
	require.Empty(t, strings.TrimSpace(buf.String()))

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{
		eventType: ports.EventActivationFailed,
		payload:   "verification",
	}))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "verification", entry["payload"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	var handled int
	sub, err := publisher.Subscribe(ports.EventAddinRegistered, func(ctx context.Context, event ports.DomainEvent) error {
		handled++
		return nil
	})
	require.NoError(t, err)

	event := sampleEvent{eventType: ports.EventAddinRegistered, payload: map[string]interface{}{"addin": "plantilla.xlam"}}
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Equal(t, 1, handled)

	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Equal(t, 1, handled, "unsubscribed handler must not run")
}

func TestLoggingPublisherReportsHandlerErrors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "warn"))

	var second bool
	_, err := publisher.Subscribe(ports.EventAddinActivated, func(context.Context, ports.DomainEvent) error {
		return errors.New("handler broke")
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventAddinActivated, func(context.Context, ports.DomainEvent) error {
		second = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventAddinActivated}))
	require.True(t, second, "later handlers still run")
	require.Contains(t, buf.String(), "event handler failed")
	require.Contains(t, buf.String(), "handler broke")
}

func TestNilPublisherIsSafe(t *testing.T) {
	t.Parallel()

	var publisher *LoggingPublisher
	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventAddinLocated}))
	sub, err := publisher.Subscribe(ports.EventAddinLocated, func(context.Context, ports.DomainEvent) error { return nil })
	require.NoError(t, err)
	sub.Unsubscribe()
}

type sampleEvent struct {
	eventType string
	payload   interface{}
}

func (e sampleEvent) EventType() string    { return e.eventType }
func (e sampleEvent) Payload() interface{} { return e.payload }
