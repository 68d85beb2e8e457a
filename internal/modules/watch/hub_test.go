package watch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestConn(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestHub_PublishCaseEvent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialTestConn(t, hub)
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.PublishCaseEvent("quotation_approved", 42, int64(100))

	var got Event
	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, client.ReadJSON(&got))

	assert.Equal(t, "quotation_approved", got.Event)
	assert.Equal(t, int64(42), got.CaseID)
	assert.False(t, got.At.IsZero())
}

// Two transitions committing at the same time publish concurrently; every
// event must still reach the subscriber over the single connection.
func TestHub_ConcurrentPublishes(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialTestConn(t, hub)
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	const publishers, perPublisher = 4, 5
	var wg sync.WaitGroup
	for p := 0; p < publishers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				hub.PublishCaseEvent("expense_recorded", int64(p), float64(i))
			}
		}(p)
	}
	wg.Wait()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	for i := 0; i < publishers*perPublisher; i++ {
		var got Event
		require.NoError(t, client.ReadJSON(&got))
		assert.Equal(t, "expense_recorded", got.Event)
	}
	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	// must not panic or block
	hub.PublishCaseEvent("case_created", 1, nil)
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_UnregisterDropsConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dialTestConn(t, hub)
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(1)
	assert.Equal(t, 0, hub.SubscriberCount())
}
