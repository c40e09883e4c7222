package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint, buf int) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, buf)}
}

func TestSendToUserReachesAllConnections(t *testing.T) {
	h := NewHub()
	a := newTestClient(1, 4)
	b := newTestClient(1, 4)
	other := newTestClient(2, 4)
	h.Register(a)
	h.Register(b)
	h.Register(other)

	h.SendToUser(1, map[string]string{"title": "hello"})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Send:
			var msg map[string]string
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, "hello", msg["title"])
		default:
			t.Fatal("expected a message on the connection")
		}
	}
	assert.Empty(t, other.Send)
}

func TestSendToUserSkipsSlowConnection(t *testing.T) {
	h := NewHub()
	slow := newTestClient(1, 0) // unbuffered with no reader
	h.Register(slow)

	done := make(chan struct{})
	go func() {
		h.SendToUser(1, "ping")
		close(done)
	}()
	<-done // must not block
}

func TestSendToUserRacingCloseIsSafe(t *testing.T) {
	// a disconnect concurrent with a delivery must never hit the closed channel
	for i := 0; i < 200; i++ {
		h := NewHub()
		c := newTestClient(1, 1)
		h.Register(c)

		done := make(chan struct{})
		go func() {
			h.SendToUser(1, "ping")
			close(done)
		}()
		c.Close()
		<-done

		// delivery after close is a no-op
		h.SendToUser(1, "late")
	}
}

func TestUnregisterOnClose(t *testing.T) {
	h := NewHub()
	a := newTestClient(1, 1)
	b := newTestClient(2, 1)
	h.Register(a)
	h.Register(b)
	assert.Equal(t, 2, h.ConnectedUsers())

	a.Close()
	assert.Equal(t, 1, h.ConnectedUsers())

	// closing twice is safe
	a.Close()
	assert.Equal(t, 1, h.ConnectedUsers())

	// sending to a departed user is a no-op
	h.SendToUser(1, "gone")
}
