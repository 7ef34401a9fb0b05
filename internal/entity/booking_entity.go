package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string
type BookingStatus string
type RefundKind string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	// RefundKind records which refund path was taken once PaymentStatus is
	// refunded. Empty means the booking was never refunded.
	RefundKindNone    RefundKind = ""
	RefundKindFull    RefundKind = "full"
	RefundKindPartial RefundKind = "partial"
	RefundKindSplit   RefundKind = "split_50_50"
)

// Booking is the source of truth for what happened to a reservation's money.
// Fee fields are pointers because legacy rows may carry nulls; the fee
// calculator backfills them for display without overwriting captured values.
type Booking struct {
	Id        uuid.UUID
	Reference string
	SpaceId   uuid.UUID
	HostId    uuid.UUID
	GuestId   uuid.UUID
	Currency  string

	BaseAmount       float64
	Price            *float64 // captured price at transaction time
	ServiceFee       *float64
	ProcessingFee    *float64
	CommissionAmount *float64 // host-side platform cut
	TotalPaid        *float64 // captured total, authoritative when present

	PaymentStatus PaymentStatus
	BookingStatus BookingStatus

	RefundKind             RefundKind
	RefundAmount           *float64 // guest-side refund
	TransferReversalAmount *float64 // host-side refund
	RefundReason           string

	ProcessorPaymentRef          *string
	ProcessorTransferRef         *string
	ProcessorRefundRef           *string
	ProcessorTransferReversalRef *string

	NetApplicationFee *float64
	PlatformEarnings  *float64
	InternationalCard bool

	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations (populated by detail queries)
	Host  User
	Space Space
}

// FullyRefunded reports whether the whole payment was returned to the guest.
func (b *Booking) FullyRefunded() bool {
	return b.PaymentStatus == PaymentStatusRefunded && b.RefundKind == RefundKindFull
}

// PartiallyRefunded covers both partial and 50/50 split refunds, which keep
// the platform's application fee intact.
func (b *Booking) PartiallyRefunded() bool {
	return b.PaymentStatus == PaymentStatusRefunded &&
		(b.RefundKind == RefundKindPartial || b.RefundKind == RefundKindSplit)
}

// BookingModification is one audit row describing an operator-visible change.
type BookingModification struct {
	Id        uuid.UUID
	BookingId uuid.UUID
	Type      string // "status_change" | "refund"
	OldValue  map[string]interface{}
	NewValue  map[string]interface{}
	Reason    string
	Actor     string
	CreatedAt time.Time
}
