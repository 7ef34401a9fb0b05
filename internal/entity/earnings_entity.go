package entity

import (
	"time"

	"github.com/google/uuid"
)

type EarningsKind string

const (
	EarningsKindPayout         EarningsKind = "payout"
	EarningsKindRefundReversal EarningsKind = "refund_reversal"
)

// EarningsEntry is one append-only ledger row of money owed to a host for a
// booking. Refunds append compensating negative entries instead of editing
// the original row.
type EarningsEntry struct {
	Id          uuid.UUID
	BookingId   uuid.UUID
	HostId      uuid.UUID
	Amount      float64 // negative for compensating entries
	Kind        EarningsKind
	Description string
	CreatedAt   time.Time
}
