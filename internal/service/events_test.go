package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventBrokerFansOutPerSession(t *testing.T) {
	broker := NewEventBroker(nil, testLogger())

	first, cancelFirst := broker.Subscribe("s1")
	defer cancelFirst()
	other, cancelOther := broker.Subscribe("s2")
	defer cancelOther()

	broker.Publish(Event{SessionID: "s1", Type: EventTurnAppended})

	received := <-first
	require.Equal(t, EventTurnAppended, received.Type)
	require.Equal(t, "s1", received.SessionID)
	require.False(t, received.SentAt.IsZero())

	select {
	case unexpected := <-other:
		t.Fatalf("subscriber of another session received %v", unexpected)
	default:
	}
}

func TestEventBrokerUnsubscribeClosesChannel(t *testing.T) {
	broker := NewEventBroker(nil, testLogger())

	events, cancel := broker.Subscribe("s1")
	cancel()
	cancel() // second cancel must be harmless

	_, open := <-events
	require.False(t, open)

	// Publishing after the last unsubscribe must not panic.
	broker.Publish(Event{SessionID: "s1", Type: EventFeedbackReady})
}

func TestEventBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	broker := NewEventBroker(nil, testLogger())

	events, cancel := broker.Subscribe("s1")
	defer cancel()

	for i := 0; i < eventSendBufferSize+5; i++ {
		broker.Publish(Event{SessionID: "s1", Type: EventTurnAppended})
	}

	// The buffer holds what it can; the overflow was dropped, not blocked on.
	require.Len(t, events, eventSendBufferSize)
}

func TestNilBrokerPublishIsSafe(t *testing.T) {
	var broker *EventBroker
	broker.Publish(Event{SessionID: "s1", Type: EventTurnAppended})
}
