package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastReachesSubscribers(t *testing.T) {
	h := New[string]()
	a := h.Subscribe("consent", 1)
	b := h.Subscribe("consent", 1)
	other := h.Subscribe("page_views", 1)

	assert.Equal(t, 2, h.Broadcast("consent", "accepted"))
	assert.Equal(t, "accepted", <-a)
	assert.Equal(t, "accepted", <-b)
	assert.Len(t, other, 0)
}

func TestBroadcastSkipsFullClient(t *testing.T) {
	h := New[int]()
	c := h.Subscribe("t", 1)

	assert.Equal(t, 1, h.Broadcast("t", 1))
	assert.Equal(t, 0, h.Broadcast("t", 2))
	assert.Equal(t, 1, <-c)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := New[int]()
	c := h.Subscribe("t", 0)
	assert.Equal(t, 1, h.Subscribers("t"))

	h.Unsubscribe("t", c)
	_, open := <-c
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers("t"))

	// Second unsubscribe is a no-op.
	h.Unsubscribe("t", c)
	assert.Equal(t, 0, h.Broadcast("t", 1))
}

func TestCloseClosesAll(t *testing.T) {
	h := New[int]()
	a := h.Subscribe("a", 0)
	b := h.Subscribe("b", 0)

	h.Close()

	_, openA := <-a
	_, openB := <-b
	assert.False(t, openA)
	assert.False(t, openB)
}
