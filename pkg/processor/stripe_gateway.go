package processor

import (
	"context"
	"time"

	"space-admin-be/pkg/money"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// callTimeout bounds every processor round-trip; a timed-out call is treated
// by callers exactly like a processor outage.
const callTimeout = 15 * time.Second

type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) RefundCharge(ctx context.Context, chargeRef string, amountCents *int64, refundAppFee bool, reason string, metadata map[string]string) (*RefundResult, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.RefundParams{
		Charge: stripe.String(chargeRef),
		Reason: stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	if amountCents != nil {
		params.Amount = stripe.Int64(*amountCents)
	}
	if refundAppFee {
		params.RefundApplicationFee = stripe.Bool(true)
	}
	if reason != "" {
		params.AddMetadata("operator_reason", reason)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	ref, err := g.sc.Refunds.New(params)
	if err != nil {
		return nil, err
	}
	return &RefundResult{
		RefundRef: ref.ID,
		Status:    mapRefundStatus(ref.Status),
	}, nil
}

func (g *StripeGateway) ReverseTransfer(ctx context.Context, transferRef string, amountCents int64) (*ReversalResult, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.TransferReversalParams{
		ID:     stripe.String(transferRef),
		Amount: stripe.Int64(amountCents),
	}
	params.Context = ctx

	rev, err := g.sc.TransferReversals.New(params)
	if err != nil {
		return nil, err
	}
	// Transfer reversals settle synchronously on the processor side.
	return &ReversalResult{
		ReversalRef: rev.ID,
		Status:      RefundStatusSucceeded,
	}, nil
}

func (g *StripeGateway) GetChargeLedgerDetail(ctx context.Context, chargeRef string) (*LedgerDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.ChargeParams{}
	params.Context = ctx
	params.AddExpand("balance_transaction")

	ch, err := g.sc.Charges.Get(chargeRef, params)
	if err != nil {
		return nil, err
	}

	gross := money.FromCents(ch.ApplicationFeeAmount)
	var fee float64
	if ch.BalanceTransaction != nil {
		fee = money.FromCents(ch.BalanceTransaction.Fee)
	}
	return &LedgerDetail{
		GrossFee:     gross,
		ProcessorFee: fee,
		NetFee:       money.Sub(gross, fee),
	}, nil
}

func (g *StripeGateway) ListAccountPayouts(ctx context.Context, accountRef string, from, to time.Time) ([]Payout, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PayoutListParams{
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: from.Unix(),
			LesserThanOrEqual:  to.Unix(),
		},
	}
	params.Context = ctx
	params.SetStripeAccount(accountRef)

	var payouts []Payout
	iter := g.sc.Payouts.List(params)
	for iter.Next() {
		po := iter.Payout()
		payouts = append(payouts, Payout{
			Amount:    money.FromCents(po.Amount),
			Status:    PayoutStatus(po.Status),
			CreatedAt: time.Unix(po.Created, 0),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}

func mapRefundStatus(s stripe.RefundStatus) RefundStatus {
	switch s {
	case stripe.RefundStatusSucceeded:
		return RefundStatusSucceeded
	case stripe.RefundStatusPending:
		return RefundStatusPending
	default:
		return RefundStatusFailed
	}
}
