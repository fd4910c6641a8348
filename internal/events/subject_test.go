package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestSubject_SubscribeReceivesCurrentValue(t *testing.T) {
	s := NewSubject([]int{1, 2})

	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Equal(t, []int{1, 2}, receive(t, ch))
}

func TestSubject_PublishBroadcastsToEverySubscriber(t *testing.T) {
	s := NewSubject(0)

	a, cancelA := s.Subscribe()
	defer cancelA()
	b, cancelB := s.Subscribe()
	defer cancelB()

	receive(t, a)
	receive(t, b)

	s.Publish(7)

	assert.Equal(t, 7, receive(t, a))
	assert.Equal(t, 7, receive(t, b))
	assert.Equal(t, 7, s.Value())
}

func TestSubject_SlowSubscriberSeesLatestValue(t *testing.T) {
	s := NewSubject(0)
	ch, cancel := s.Subscribe()
	defer cancel()

	for i := 1; i <= 10; i++ {
		s.Publish(i)
	}

	assert.Equal(t, 10, receive(t, ch))
	select {
	case v := <-ch:
		t.Fatalf("expected no buffered value, got %d", v)
	default:
	}
}

func TestSubject_CancelClosesChannel(t *testing.T) {
	s := NewSubject("a")
	ch, cancel := s.Subscribe()
	receive(t, ch)

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, s.Subscribers())

	s.Publish("b")
	assert.Equal(t, "b", s.Value())
}

func TestSubject_Close(t *testing.T) {
	s := NewSubject(1)
	ch, _ := s.Subscribe()
	receive(t, ch)

	s.Close()
	_, ok := <-ch
	assert.False(t, ok)

	s.Publish(2)
	assert.Equal(t, 1, s.Value())

	late, _ := s.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestSubject_SubscribeAny(t *testing.T) {
	s := NewSubject([]string{"x"})
	ch, cancel := s.SubscribeAny()

	assert.Equal(t, []string{"x"}, receive(t, ch))

	s.Publish([]string{"y"})
	assert.Equal(t, []string{"y"}, receive(t, ch))

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, s.Subscribers())
}
