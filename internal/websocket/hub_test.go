package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"seo-assistant-be/internal/model"
	"seo-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()
	return hub
}

func registerClient(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{
		Hub:    hub,
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) > 0
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestSendDeliversNotificationFrame(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := registerClient(t, hub, userID, 1)

	hub.Send(userID, model.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   "Ranking Change",
		Message: `"running shoes" moved from position 12 to 8`,
	})

	select {
	case data := <-client.Send:
		var frame struct {
			Type string             `json:"type"`
			Data model.Notification `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &frame))
		assert.Equal(t, "notification", frame.Type)
		assert.Equal(t, "Ranking Change", frame.Data.Title)
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestSendSkipsOtherUsers(t *testing.T) {
	hub := newTestHub(t)
	owner := uuid.New()
	other := uuid.New()
	ownerClient := registerClient(t, hub, owner, 1)
	otherClient := registerClient(t, hub, other, 1)

	hub.Send(owner, model.Notification{UserID: owner, Title: "Keyword Data Ready"})

	select {
	case <-ownerClient.Send:
	case <-time.After(time.Second):
		t.Fatal("owner did not receive the frame")
	}
	assert.Empty(t, otherClient.Send)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := newTestHub(t)
	a := registerClient(t, hub, uuid.New(), 1)
	b := registerClient(t, hub, uuid.New(), 1)

	hub.Broadcast(model.Notification{Title: "Maintenance"})

	for _, client := range []*Client{a, b} {
		select {
		case <-client.Send:
		case <-time.After(time.Second):
			t.Fatal("broadcast frame missing")
		}
	}
}

func TestSlowClientIsDisconnected(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := registerClient(t, hub, userID, 1)

	// Fill the buffer so the next delivery cannot go through.
	client.Send <- []byte("{}")

	hub.Send(userID, model.Notification{UserID: userID, Title: "dropped"})

	assert.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) == 0
	}, time.Second, 5*time.Millisecond)
}
