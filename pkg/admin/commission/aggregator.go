// Package commission produces read-only revenue and earnings views across a
// date range. It never mutates booking or ledger state.
package commission

import (
	"context"
	"time"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"
	"space-admin-be/pkg/admin/fees"
	"space-admin-be/pkg/money"
	"space-admin-be/pkg/processor"

	"github.com/google/uuid"
)

// Payout reporting statuses for a single row. A numeric payout figure is
// only shown for confirmed processor payouts.
const (
	PayoutReportPaid        = "paid"
	PayoutReportPending     = "pending"
	PayoutReportUnavailable = "unavailable"
	PayoutReportReversed    = "reversed"
)

// RateSource supplies the active fee configuration.
type RateSource interface {
	ActiveRates(ctx context.Context, forceRefresh bool) (*entity.FeeConfig, error)
}

// Summary is the aggregate view over a booking set. Fully refunded bookings
// are excluded from every total; partially and 50/50 refunded bookings are
// included at their original pre-refund figures. Always recomputed on read.
type Summary struct {
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalCommission       float64 `json:"totalCommission"`
	TotalNetEarnings      float64 `json:"totalNetEarnings"`
	TotalHostPayouts      float64 `json:"totalHostPayouts"`
	AverageCommissionRate float64 `json:"averageCommissionRate"`
	TotalTransactions     int     `json:"totalTransactions"`
}

// ReportRow is one booking line in the commission report.
type ReportRow struct {
	Reference        string    `json:"reference"`
	HostName         string    `json:"hostName"`
	SpaceName        string    `json:"spaceName"`
	BookingAmount    float64   `json:"bookingAmount"`
	PlatformEarnings float64   `json:"platformEarnings"`
	HostPayout       float64   `json:"hostPayout"`
	PayoutStatus     string    `json:"payoutStatus"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
}

// hostPayoutInfo caches one processor payout lookup per host per run.
type hostPayoutInfo struct {
	paidTotal   float64
	unavailable bool
}

// Aggregator reads booking, ledger, and processor data and projects it into
// report rows and summary totals.
type Aggregator struct {
	logger  logger.ILogger
	gateway processor.Gateway
	rates   RateSource
}

func NewAggregator(log logger.ILogger, gateway processor.Gateway, rates RateSource) *Aggregator {
	return &Aggregator{
		logger:  log,
		gateway: gateway,
		rates:   rates,
	}
}

// Summarize returns only the aggregate totals for the range.
func (a *Aggregator) Summarize(ctx context.Context, uow unitofwork.UnitOfWork, from, to time.Time) (*Summary, error) {
	_, summary, err := a.Report(ctx, uow, from, to)
	return summary, err
}

// Report returns one row per settled booking in the range plus the summary.
// Bookings that never reached a paid state are not part of the report.
func (a *Aggregator) Report(ctx context.Context, uow unitofwork.UnitOfWork, from, to time.Time) ([]ReportRow, *Summary, error) {
	rates, err := a.rates.ActiveRates(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	bookings, err := uow.BookingRepository().FindAllWithDetails(ctx,
		specification.CreatedBetween{From: from, To: to},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, nil, err
	}

	payoutCache := make(map[uuid.UUID]hostPayoutInfo)
	summary := &Summary{}
	var rows []ReportRow
	var commissionBase float64

	for _, b := range bookings {
		if b.PaymentStatus != entity.PaymentStatusPaid && b.PaymentStatus != entity.PaymentStatusRefunded {
			continue
		}

		net := a.rowNetFee(ctx, b, rates)
		row := ReportRow{
			Reference:        b.Reference,
			HostName:         b.Host.FullName,
			SpaceName:        b.Space.Name,
			BookingAmount:    fees.TrueTotal(b, rates),
			PlatformEarnings: net.Amount,
			Status:           rowStatus(b),
			Date:             b.CreatedAt,
		}
		a.resolvePayout(ctx, uow, b, payoutCache, from, to, &row)
		rows = append(rows, row)

		// Fully refunded bookings appear as rows but contribute nothing to
		// the totals.
		if b.FullyRefunded() {
			continue
		}

		commission := commissionOf(b, rates)
		summary.TotalRevenue = money.Add(summary.TotalRevenue, row.BookingAmount)
		summary.TotalCommission = money.Add(summary.TotalCommission, commission)
		summary.TotalNetEarnings = money.Add(summary.TotalNetEarnings, net.Amount)
		if row.PayoutStatus == PayoutReportPaid {
			summary.TotalHostPayouts = money.Add(summary.TotalHostPayouts, row.HostPayout)
		}
		summary.TotalTransactions++
		commissionBase += b.BaseAmount
	}

	if commissionBase > 0 {
		summary.AverageCommissionRate = summary.TotalCommission / commissionBase
	}
	return rows, summary, nil
}

// rowNetFee resolves the net platform take for one row, preferring the
// processor's own ledger and falling back to the rate-card estimate.
func (a *Aggregator) rowNetFee(ctx context.Context, b *entity.Booking, rates *entity.FeeConfig) fees.NetFee {
	var detail *processor.LedgerDetail
	if b.ProcessorPaymentRef != nil && *b.ProcessorPaymentRef != "" {
		d, err := a.gateway.GetChargeLedgerDetail(ctx, *b.ProcessorPaymentRef)
		if err != nil {
			a.logger.Debug("COMMISSION", "Ledger detail unavailable, estimating net fee", map[string]interface{}{
				"bookingId": b.Id.String(),
				"error":     err.Error(),
			})
		} else {
			detail = d
		}
	}
	return fees.NetApplicationFee(b, rates, detail)
}

// resolvePayout fills the row's payout figure and status. A numeric payout
// is reported only when the host's processor account shows confirmed paid
// payouts in the range; otherwise the status alone is reported.
func (a *Aggregator) resolvePayout(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking, cache map[uuid.UUID]hostPayoutInfo, from, to time.Time, row *ReportRow) {
	if b.FullyRefunded() {
		row.PayoutStatus = PayoutReportReversed
		return
	}
	if b.Host.PayoutAccountRef == nil || *b.Host.PayoutAccountRef == "" {
		row.PayoutStatus = PayoutReportUnavailable
		return
	}

	info, seen := cache[b.HostId]
	if !seen {
		payouts, err := a.gateway.ListAccountPayouts(ctx, *b.Host.PayoutAccountRef, from, to)
		if err != nil {
			info = hostPayoutInfo{unavailable: true}
			a.logger.Warn("COMMISSION", "Payout lookup failed for host", map[string]interface{}{
				"hostId": b.HostId.String(),
				"error":  err.Error(),
			})
		} else {
			for _, p := range payouts {
				if p.Status == processor.PayoutStatusPaid {
					info.paidTotal = money.Add(info.paidTotal, p.Amount)
				}
			}
		}
		cache[b.HostId] = info
	}

	switch {
	case info.unavailable:
		row.PayoutStatus = PayoutReportUnavailable
	case info.paidTotal > 0:
		row.PayoutStatus = PayoutReportPaid
		row.HostPayout = hostOwed(ctx, uow, b)
	default:
		row.PayoutStatus = PayoutReportPending
	}
}

// hostOwed is the ledger's current net owed figure for the booking, which
// already includes any compensating reversal entries.
func hostOwed(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking) float64 {
	sum, err := uow.EarningsRepository().SumByBooking(ctx, b.Id)
	if err != nil {
		return 0
	}
	return money.Round2(sum)
}

func commissionOf(b *entity.Booking, rates *entity.FeeConfig) float64 {
	if b.CommissionAmount != nil {
		return *b.CommissionAmount
	}
	return fees.Compute(b.BaseAmount, rates).PartnerCommission
}

func rowStatus(b *entity.Booking) string {
	if b.PaymentStatus == entity.PaymentStatusRefunded {
		switch b.RefundKind {
		case entity.RefundKindFull:
			return "fully_refunded"
		case entity.RefundKindPartial:
			return "partially_refunded"
		case entity.RefundKindSplit:
			return "split_refunded"
		}
	}
	return string(b.PaymentStatus)
}
