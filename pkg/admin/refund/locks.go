package refund

import (
	"sync"

	"github.com/google/uuid"
)

// BookingLocks tracks bookings with a refund currently in flight. A second
// refund on the same booking is rejected immediately instead of queued, so
// the operator sees the conflict rather than a silent double execution.
type BookingLocks struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

func NewBookingLocks() *BookingLocks {
	return &BookingLocks{held: make(map[uuid.UUID]struct{})}
}

// TryAcquire reserves the booking for a refund run. Returns false when a
// refund on the same booking is already in flight.
func (l *BookingLocks) TryAcquire(bookingId uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[bookingId]; busy {
		return false
	}
	l.held[bookingId] = struct{}{}
	return true
}

// Release frees the booking after the refund run finishes, on every outcome.
func (l *BookingLocks) Release(bookingId uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, bookingId)
}
