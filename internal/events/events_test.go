package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishJSONReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []BookingEventPayload
	bus.Subscribe(EventBookingCompleted, func(e *Event) error {
		var p BookingEventPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return err
		}
		received = append(received, p)
		return nil
	})

	payload := BookingEventPayload{BookingID: 7, CompanyName: "Acme Ltd", Status: "SUCCESS", MessengerName: "Somsak"}
	require.NoError(t, bus.PublishJSON(EventBookingCompleted, payload))

	require.Len(t, received, 1)
	assert.Equal(t, payload, received[0])
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	bus.Subscribe(EventBookingCancelled, func(e *Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventBookingSubmitted, BookingEventPayload{BookingID: 1}))
	assert.Zero(t, calls)
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventScheduleRefresh, struct{}{}))
}
