package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
)

func TestBroadcastReachesSubscribedChannelOnly(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserSensorChannel(userID))

	hub.Broadcast(SSEMessage{
		Channel: UserSensorChannel(userID),
		Event:   SSEEventSensorUpdate,
		Data:    map[string]any{"ph": 6.5},
	})
	hub.Broadcast(SSEMessage{
		Channel: SensorPublicChannel,
		Event:   SSEEventSensorPublic,
	})

	select {
	case msg := <-client.Outbound:
		if msg.Channel != UserSensorChannel(userID) || msg.Event != SSEEventSensorUpdate {
			t.Fatalf("msg=%+v", msg)
		}
	default:
		t.Fatal("subscribed message not delivered")
	}
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message for unsubscribed channel: %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, SensorPublicChannel)

	// The outbound buffer holds 10 messages; extra broadcasts must not block.
	for i := 0; i < 25; i++ {
		hub.Broadcast(SSEMessage{Channel: SensorPublicChannel, Event: SSEEventSensorPublic, Data: i})
	}

	received := 0
	for {
		select {
		case <-client.Outbound:
			received++
			continue
		default:
		}
		break
	}
	if received != 10 {
		t.Fatalf("received=%d, want the 10 buffered messages", received)
	}
}

func TestBroadcastIgnoresEmptyChannel(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "")

	if len(client.Channels) != 0 {
		t.Fatalf("blank channel should not register: %v", client.Channels)
	}
	hub.Broadcast(SSEMessage{Channel: "", Event: SSEEventSensorPublic})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message: %+v", msg)
	default:
	}
}

func TestRemoveChannelStopsDelivery(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, SensorPublicChannel)
	hub.RemoveChannel(client, SensorPublicChannel)

	hub.Broadcast(SSEMessage{Channel: SensorPublicChannel, Event: SSEEventSensorPublic})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message after unsubscribe: %+v", msg)
	default:
	}
}

func TestCloseClientRemovesAllSubscriptions(t *testing.T) {
	hub := NewSSEHub(logger.NewNop())
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, SensorPublicChannel)
	hub.AddChannel(client, UserSensorChannel(userID))

	hub.CloseClient(client)
	if len(client.Channels) != 0 {
		t.Fatalf("channels not cleared: %v", client.Channels)
	}
	// Broadcasting after close must not panic on the closed outbound channel.
	hub.Broadcast(SSEMessage{Channel: SensorPublicChannel, Event: SSEEventSensorPublic})
}
