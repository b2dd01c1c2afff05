// Package poll provides owned, cancellable polling handles for Bubble Tea
// models.
//
// A Handle is acquired when a view starts polling a target and released when
// the view goes away or its key changes. Every tick and every fetch result is
// stamped with the generation of the handle that produced it; once a handle is
// released, anything carrying its stamp is stale and must be dropped.
package poll

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Interval is the fixed refresh period for every poll target.
const Interval = 10 * time.Second

// Target names an independent poll loop.
type Target string

const (
	TargetFleet Target = "fleet"
	TargetHost  Target = "host"
)

// Stamp identifies the handle generation a message belongs to.
type Stamp struct {
	Target Target
	Gen    uint64
}

// TickMsg asks the owner of Stamp to poll again.
type TickMsg struct {
	Stamp Stamp
	At    time.Time
}

// Scheduler hands out handles, at most one live handle per target.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	gen      uint64
	live     map[Target]*Handle
}

// NewScheduler creates a scheduler ticking every interval. Zero means Interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = Interval
	}
	return &Scheduler{
		interval: interval,
		live:     make(map[Target]*Handle),
	}
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Acquire releases any live handle for target and returns a fresh one keyed
// by key. The handle's context derives from parent.
func (s *Scheduler) Acquire(parent context.Context, target Target, key string) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old := s.live[target]; old != nil {
		old.release()
	}

	s.gen++
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{
		sched:  s,
		stamp:  Stamp{Target: target, Gen: s.gen},
		key:    key,
		ctx:    ctx,
		cancel: cancel,
	}
	s.live[target] = h
	return h
}

// Current returns the live handle for target, or nil.
func (s *Scheduler) Current(target Target) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live[target]
}

// Owns reports whether stamp belongs to a live handle.
func (s *Scheduler) Owns(stamp Stamp) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.live[stamp.Target]
	return h != nil && h.stamp == stamp
}

// Release releases the live handle for target, if any.
func (s *Scheduler) Release(target Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h := s.live[target]; h != nil {
		h.release()
		delete(s.live, target)
	}
}

// ReleaseAll releases every live handle. Called on teardown.
func (s *Scheduler) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, h := range s.live {
		h.release()
		delete(s.live, t)
	}
}

// Handle is one acquisition of a poll target.
type Handle struct {
	sched    *Scheduler
	stamp    Stamp
	key      string
	ctx      context.Context
	cancel   context.CancelFunc
	released bool
}

// Stamp returns the generation stamp to attach to messages.
func (h *Handle) Stamp() Stamp { return h.stamp }

// Key is what the handle polls, e.g. a host ID. Empty for the fleet.
func (h *Handle) Key() string { return h.key }

// Context is cancelled when the handle is released, aborting in-flight
// requests made with it.
func (h *Handle) Context() context.Context { return h.ctx }

// Owns reports whether stamp was issued by this handle and the handle is
// still live.
func (h *Handle) Owns(stamp Stamp) bool {
	if h == nil {
		return false
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return !h.released && h.stamp == stamp
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return h.released
}

// Tick schedules the next TickMsg for this handle.
func (h *Handle) Tick() tea.Cmd {
	stamp := h.stamp
	return tea.Tick(h.sched.interval, func(t time.Time) tea.Msg {
		return TickMsg{Stamp: stamp, At: t}
	})
}

// Release cancels the handle's context and invalidates its stamp. Safe to
// call more than once.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	h.release()
	if h.sched.live[h.stamp.Target] == h {
		delete(h.sched.live, h.stamp.Target)
	}
}

// release must be called with sched.mu held.
func (h *Handle) release() {
	if h.released {
		return
	}
	h.released = true
	h.cancel()
}
