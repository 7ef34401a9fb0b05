package fees

import (
	"space-admin-be/internal/entity"
	"space-admin-be/pkg/money"
	"space-admin-be/pkg/processor"
)

// NetFeeSource tags where a net-fee figure came from, so reporting can
// distinguish processor-confirmed numbers from heuristic estimates.
type NetFeeSource string

const (
	NetFeeAuthoritative NetFeeSource = "authoritative"
	NetFeeEstimated     NetFeeSource = "estimated"
)

// NetFee is the platform's take-home for one booking, tagged with its
// confidence level. Both sources are treated identically downstream today;
// the tag keeps the distinction representable.
type NetFee struct {
	Amount float64
	Source NetFeeSource
}

// GrossApplicationFee is the platform's cut before the processor's own fee:
// service fee + processing fee + partner commission. Missing stored fields
// are reconstructed from the rate config.
func GrossApplicationFee(b *entity.Booking, rates *entity.FeeConfig) float64 {
	bd := Compute(b.BaseAmount, rates)

	serviceFee := bd.ServiceFee
	if b.ServiceFee != nil {
		serviceFee = *b.ServiceFee
	}
	processingFee := bd.ProcessingFee
	if b.ProcessingFee != nil {
		processingFee = *b.ProcessingFee
	}
	commission := bd.PartnerCommission
	if b.CommissionAmount != nil {
		commission = *b.CommissionAmount
	}
	return money.Add(money.Add(serviceFee, processingFee), commission)
}

// NetApplicationFee reconciles the platform's true take-home for a booking.
//
// With processor ledger data the processor's own net is authoritative. Without
// it, the net falls back to gross minus the estimated processor fee on the
// whole transaction, floored at zero.
//
// The refund override is a business rule, not an approximation: a full refund
// forfeits the entire take (net = 0), while partial and 50/50 refunds keep the
// original figure computed as though no refund occurred.
func NetApplicationFee(b *entity.Booking, rates *entity.FeeConfig, ledger *processor.LedgerDetail) NetFee {
	if b.FullyRefunded() {
		source := NetFeeEstimated
		if ledger != nil {
			source = NetFeeAuthoritative
		}
		return NetFee{Amount: 0, Source: source}
	}

	if ledger != nil {
		return NetFee{Amount: ledger.NetFee, Source: NetFeeAuthoritative}
	}

	gross := GrossApplicationFee(b, rates)
	total := TrueTotal(b, rates)
	net := money.Sub(gross, EstimateProcessorFee(total, b.InternationalCard))
	if net < 0 {
		net = 0
	}
	return NetFee{Amount: net, Source: NetFeeEstimated}
}

// HostNetShare is the commission's proportional slice of the net fee:
// net * (commission / gross). The processor charges its cut on the whole
// transaction, so the commission is never reduced by a flat fee subtraction.
// An undefined ratio (gross == 0) yields 0.
func HostNetShare(net NetFee, commission, grossApplicationFee float64) float64 {
	return money.Share(net.Amount, commission, grossApplicationFee)
}
