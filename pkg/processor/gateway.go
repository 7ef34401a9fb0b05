// Package processor defines the contract the reconciliation core needs from
// the payment processor, and a Stripe-backed implementation. Everything the
// engine knows about the processor goes through the Gateway interface so the
// refund and reporting paths stay testable without network access.
package processor

import (
	"context"
	"time"
)

type RefundStatus string

const (
	RefundStatusSucceeded RefundStatus = "succeeded"
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusFailed    RefundStatus = "failed"
)

// RefundResult is the processor-side outcome of a charge refund.
type RefundResult struct {
	RefundRef string
	Status    RefundStatus
}

// ReversalResult is the processor-side outcome of a transfer reversal.
type ReversalResult struct {
	ReversalRef string
	Status      RefundStatus
}

// LedgerDetail is the authoritative gross/fee/net picture of the platform's
// cut of one charge, as reported by the processor's own ledger.
type LedgerDetail struct {
	GrossFee     float64 // platform's application fee before the processor's cut
	ProcessorFee float64 // the processor's transaction fee
	NetFee       float64 // what the platform actually keeps
}

type PayoutStatus string

const (
	PayoutStatusPaid      PayoutStatus = "paid"
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusInTransit PayoutStatus = "in_transit"
	PayoutStatusFailed    PayoutStatus = "failed"
)

// Payout is one transfer from the processor to a host's bank account.
type Payout struct {
	Amount    float64
	Status    PayoutStatus
	CreatedAt time.Time
}

// Gateway is the black-box processor contract. amountCents == nil on
// RefundCharge means "refund the full charge".
type Gateway interface {
	RefundCharge(ctx context.Context, chargeRef string, amountCents *int64, refundAppFee bool, reason string, metadata map[string]string) (*RefundResult, error)
	ReverseTransfer(ctx context.Context, transferRef string, amountCents int64) (*ReversalResult, error)
	GetChargeLedgerDetail(ctx context.Context, chargeRef string) (*LedgerDetail, error)
	ListAccountPayouts(ctx context.Context, accountRef string, from, to time.Time) ([]Payout, error)
}
