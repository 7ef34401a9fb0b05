package entity

import "github.com/google/uuid"

// RefundType selects how a refund is split between guest and host.
type RefundType string

const (
	RefundTypeFull    RefundType = "full"
	RefundTypePartial RefundType = "partial"
	RefundTypeSplit   RefundType = "split_50_50"
)

// RefundRequest is the ephemeral operator intent handed to the refund engine.
// It is never persisted as its own entity; its effects land on the booking
// and the earnings ledger.
type RefundRequest struct {
	BookingId       uuid.UUID
	Type            RefundType
	RequestedAmount float64 // operator override; 0 means "derive from booking"
	Reason          string
	Notes           string
	Actor           string
}

// Valid reports whether the request is structurally usable. Amount semantics
// are checked by the engine against the booking itself.
func (r *RefundRequest) Valid() bool {
	switch r.Type {
	case RefundTypeFull, RefundTypePartial, RefundTypeSplit:
	default:
		return false
	}
	if r.Type == RefundTypePartial && r.RequestedAmount <= 0 {
		return false
	}
	return r.RequestedAmount >= 0
}
