package fees

import "space-admin-be/pkg/money"

// Card-processing estimates used only when the processor's own ledger is
// unreachable. The fixed addend exists here and nowhere else: the
// guest-facing processing fee is strictly percentage-based.
const (
	domesticCardRate          = 0.029
	domesticCardFixedFee      = 0.30
	internationalCardRate     = 0.039
	internationalCardFixedFee = 0.30
)

// EstimateProcessorFee approximates the processor's cut of a transaction.
// Callers must prefer authoritative ledger data whenever it is available.
func EstimateProcessorFee(amount float64, internationalCard bool) float64 {
	if amount <= 0 {
		return 0
	}
	rate, fixed := domesticCardRate, domesticCardFixedFee
	if internationalCard {
		rate, fixed = internationalCardRate, internationalCardFixedFee
	}
	return money.Add(money.Mul(amount, rate), fixed)
}
