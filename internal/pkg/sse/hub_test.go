package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToTopic(t *testing.T) {
	h := NewHub()

	monitor, unsubMonitor := h.Subscribe("monitor")
	defer unsubMonitor()
	other, unsubOther := h.Subscribe("other")
	defer unsubOther()

	h.Publish("monitor", Event{Event: "attendance.entry", Data: "e1"})

	select {
	case ev := <-monitor:
		assert.Equal(t, "monitor", ev.Topic)
		assert.Equal(t, "attendance.entry", ev.Event)
		assert.Equal(t, "e1", ev.Data)
	default:
		t.Fatal("expected event on monitor topic")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %v", ev)
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub()

	ch, unsubscribe := h.Subscribe("monitor")
	assert.Equal(t, 1, h.SubscriberCount("monitor"))

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("monitor"))
	assert.Equal(t, 0, h.TotalSubscribers())
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, unsubscribe := h.Subscribe("monitor")
	defer unsubscribe()

	for i := 0; i < h.bufferSize*2; i++ {
		h.Publish("monitor", Event{Event: "tick", Data: i})
	}

	require.Len(t, ch, h.bufferSize)
	first := <-ch
	assert.Equal(t, 0, first.Data)
}
