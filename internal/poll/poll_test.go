package poll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_DefaultInterval(t *testing.T) {
	assert.Equal(t, 10*time.Second, NewScheduler(0).Interval())
	assert.Equal(t, time.Second, NewScheduler(time.Second).Interval())
}

func TestAcquire_ReplacesPreviousHandle(t *testing.T) {
	s := NewScheduler(time.Millisecond)

	a := s.Acquire(context.Background(), TargetHost, "A")
	stampA := a.Stamp()
	require.True(t, s.Owns(stampA))

	b := s.Acquire(context.Background(), TargetHost, "B")

	assert.True(t, a.Released())
	assert.ErrorIs(t, a.Context().Err(), context.Canceled, "re-keying aborts the old request")
	assert.False(t, s.Owns(stampA))
	assert.False(t, a.Owns(stampA))

	assert.True(t, b.Owns(b.Stamp()))
	assert.Equal(t, "B", b.Key())
	assert.Same(t, b, s.Current(TargetHost))
	assert.NotEqual(t, stampA, b.Stamp())
}

func TestTargetsAreIndependent(t *testing.T) {
	s := NewScheduler(time.Millisecond)

	fleet := s.Acquire(context.Background(), TargetFleet, "")
	host := s.Acquire(context.Background(), TargetHost, "A")

	assert.True(t, fleet.Owns(fleet.Stamp()))
	assert.True(t, host.Owns(host.Stamp()))
	assert.False(t, host.Owns(fleet.Stamp()))

	host.Release()
	assert.True(t, s.Owns(fleet.Stamp()), "releasing the host poll leaves the fleet poll alone")
	assert.Nil(t, s.Current(TargetHost))
}

func TestRelease_Idempotent(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	h := s.Acquire(context.Background(), TargetFleet, "")

	h.Release()
	h.Release()
	s.Release(TargetFleet)

	assert.True(t, h.Released())
	assert.False(t, s.Owns(h.Stamp()))

	var nilHandle *Handle
	assert.NotPanics(t, func() { nilHandle.Release() })
	assert.False(t, nilHandle.Owns(Stamp{}))
}

func TestReleaseOfOldHandleKeepsNewOne(t *testing.T) {
	s := NewScheduler(time.Millisecond)

	a := s.Acquire(context.Background(), TargetHost, "A")
	b := s.Acquire(context.Background(), TargetHost, "B")
	a.Release()

	assert.Same(t, b, s.Current(TargetHost))
	assert.True(t, s.Owns(b.Stamp()))
}

func TestReleaseAll(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	fleet := s.Acquire(context.Background(), TargetFleet, "")
	host := s.Acquire(context.Background(), TargetHost, "x")

	s.ReleaseAll()

	assert.True(t, fleet.Released())
	assert.True(t, host.Released())
	assert.Nil(t, s.Current(TargetFleet))
	assert.Nil(t, s.Current(TargetHost))
}

func TestParentCancellationPropagates(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	parent, cancel := context.WithCancel(context.Background())

	h := s.Acquire(parent, TargetFleet, "")
	cancel()

	assert.ErrorIs(t, h.Context().Err(), context.Canceled)
}

func TestTick_CarriesStamp(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	h := s.Acquire(context.Background(), TargetHost, "A")

	msg := h.Tick()()

	tick, ok := msg.(TickMsg)
	require.True(t, ok)
	assert.Equal(t, h.Stamp(), tick.Stamp)
	assert.False(t, tick.At.IsZero())
}

func TestTick_AfterReleaseIsStale(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	h := s.Acquire(context.Background(), TargetHost, "A")
	cmd := h.Tick()

	s.Acquire(context.Background(), TargetHost, "B")

	tick := cmd().(TickMsg)
	assert.False(t, s.Owns(tick.Stamp))
}
