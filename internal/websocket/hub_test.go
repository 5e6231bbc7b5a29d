package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSendReachesEveryDeviceOfUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	userID := uuid.New()
	phone := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	laptop := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- phone
	hub.register <- laptop
	hub.register <- other

	require.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 2 }, time.Second, 10*time.Millisecond)

	err := hub.Send(ctx, userID, &entity.Notification{Type: "IMAGE_GENERATED", Title: "Image ready"})
	require.NoError(t, err)

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var frame struct {
				Type string              `json:"type"`
				Data entity.Notification `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &frame))
			assert.Equal(t, "notification", frame.Type)
			assert.Equal(t, "IMAGE_GENERATED", frame.Data.Type)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
	assert.Empty(t, other.Send)

	hub.unregister <- phone
	require.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 1 }, time.Second, 10*time.Millisecond)
	_, open := <-phone.Send
	assert.False(t, open)
}

func TestHubSendWhileUnregistering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	userID := uuid.New()
	notification := &entity.Notification{Type: "SPEECH_GENERATED", Title: "Speech ready"}

	for i := 0; i < 500; i++ {
		client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
		hub.register <- client
		require.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 1 }, time.Second, time.Millisecond)

		gone := make(chan struct{})
		go func() {
			hub.unregisterClient(client)
			close(gone)
		}()
		require.NotPanics(t, func() {
			_ = hub.Send(ctx, userID, notification)
		})
		<-gone
		require.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 0 }, time.Second, time.Millisecond)
	}
}

func TestUnregisterAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	cancel()
	<-stopped

	returned := make(chan struct{})
	go func() {
		hub.unregisterClient(client)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after the hub stopped")
	}
}
