package booking

import (
	"context"
	"sync"
	"time"

	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
)

// sessionLocker serializes seat reservations per session. Each session gets a
// one-slot semaphore; the slot is reference counted so idle sessions do not
// accumulate in the map.
type sessionLocker struct {
	mu    sync.Mutex
	slots map[int64]*lockSlot
}

type lockSlot struct {
	sem  chan struct{}
	refs int
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{
		slots: make(map[int64]*lockSlot),
	}
}

// acquire blocks until the session's lock is free, the wait budget runs out,
// or ctx is done. The wait budget is bounded so a contended session surfaces
// domain.ErrBusy instead of queueing callers indefinitely.
func (l *sessionLocker) acquire(ctx context.Context, sessionID int64, wait time.Duration) (release func(), err error) {
	l.mu.Lock()
	slot, ok := l.slots[sessionID]
	if !ok {
		slot = &lockSlot{sem: make(chan struct{}, 1)}
		l.slots[sessionID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case slot.sem <- struct{}{}:
		return func() {
			<-slot.sem
			l.unref(sessionID)
		}, nil
	case <-timer.C:
		l.unref(sessionID)
		return nil, domain.ErrBusy
	case <-ctx.Done():
		l.unref(sessionID)
		return nil, ctx.Err()
	}
}

func (l *sessionLocker) unref(sessionID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[sessionID]
	if !ok {
		return
	}

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, sessionID)
	}
}
