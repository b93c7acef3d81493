package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_PublishSubscribe(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventReportCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventReportCreated, ReportID: "r1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "r1", received[0].ReportID)

	// Unsubscribed types are ignored.
	err = dispatcher.Publish(context.Background(), Event{Type: EventReportDeleted, ReportID: "r2"})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestInMemoryDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls int
	dispatcher.Subscribe(EventReportStatusChanged, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventReportStatusChanged, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventReportStatusChanged})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
