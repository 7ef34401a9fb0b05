package fees

import (
	"space-admin-be/internal/entity"
	"space-admin-be/pkg/money"
)

// Breakdown is the full fee decomposition of a booking amount.
type Breakdown struct {
	ServiceFee        float64
	ProcessingFee     float64
	PartnerCommission float64
	TotalPaid         float64
	PartnerPayout     float64
}

// Compute decomposes a base booking amount under the given rate config.
// Processing is charged on the post-service-fee subtotal and carries no fixed
// per-transaction addend; every intermediate result is rounded to 2 decimals.
// A non-positive base short-circuits to an all-zero breakdown.
func Compute(baseAmount float64, rates *entity.FeeConfig) Breakdown {
	if baseAmount <= 0 {
		return Breakdown{}
	}

	serviceFee := money.Mul(baseAmount, rates.ServiceRate)
	processingFee := money.Mul(money.Add(baseAmount, serviceFee), rates.ProcessingRate)
	partnerCommission := money.Mul(baseAmount, rates.PartnerCommissionRate)

	return Breakdown{
		ServiceFee:        serviceFee,
		ProcessingFee:     processingFee,
		PartnerCommission: partnerCommission,
		TotalPaid:         money.Add(money.Add(baseAmount, serviceFee), processingFee),
		PartnerPayout:     money.Sub(baseAmount, partnerCommission),
	}
}

// TrueTotal resolves what the guest actually paid. A captured total always
// wins; a captured price wins over the recomputation only when the two
// disagree by more than a cent (the price was then set deliberately).
func TrueTotal(b *entity.Booking, rates *entity.FeeConfig) float64 {
	if b.TotalPaid != nil {
		return *b.TotalPaid
	}
	recomputed := Compute(b.BaseAmount, rates).TotalPaid
	if b.Price != nil && !money.WithinTolerance(*b.Price, recomputed) {
		return *b.Price
	}
	return recomputed
}

// Backfill fills a booking's missing fee fields from the rate config for
// display. Values captured at transaction time are never overwritten.
func Backfill(b *entity.Booking, rates *entity.FeeConfig) {
	bd := Compute(b.BaseAmount, rates)
	if b.ServiceFee == nil {
		b.ServiceFee = &bd.ServiceFee
	}
	if b.ProcessingFee == nil {
		b.ProcessingFee = &bd.ProcessingFee
	}
	if b.CommissionAmount == nil {
		b.CommissionAmount = &bd.PartnerCommission
	}
	if b.TotalPaid == nil {
		total := TrueTotal(b, rates)
		b.TotalPaid = &total
	}
}
