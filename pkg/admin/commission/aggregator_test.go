package commission

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/repository/contract"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/pkg/processor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeGateway struct {
	ledgerByCharge map[string]*processor.LedgerDetail
	payoutsByAcct  map[string][]processor.Payout
	payoutErr      error
	payoutCalls    int
}

func (g *fakeGateway) RefundCharge(ctx context.Context, chargeRef string, amountCents *int64, refundAppFee bool, reason string, metadata map[string]string) (*processor.RefundResult, error) {
	return nil, errors.New("not used")
}

func (g *fakeGateway) ReverseTransfer(ctx context.Context, transferRef string, amountCents int64) (*processor.ReversalResult, error) {
	return nil, errors.New("not used")
}

func (g *fakeGateway) GetChargeLedgerDetail(ctx context.Context, chargeRef string) (*processor.LedgerDetail, error) {
	if d, ok := g.ledgerByCharge[chargeRef]; ok {
		return d, nil
	}
	return nil, errors.New("charge not found")
}

func (g *fakeGateway) ListAccountPayouts(ctx context.Context, accountRef string, from, to time.Time) ([]processor.Payout, error) {
	g.payoutCalls++
	if g.payoutErr != nil {
		return nil, g.payoutErr
	}
	return g.payoutsByAcct[accountRef], nil
}

type fakeRates struct{}

func (fakeRates) ActiveRates(ctx context.Context, forceRefresh bool) (*entity.FeeConfig, error) {
	return &entity.FeeConfig{
		ServiceRate:           0.12,
		PartnerCommissionRate: 0.15,
		ProcessingRate:        0.0175,
	}, nil
}

type fakeBookingRepo struct {
	bookings []*entity.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return r.bookings, nil
}
func (r *fakeBookingRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return r.bookings, nil
}
func (r *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.bookings)), nil
}
func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error { return nil }
func (r *fakeBookingRepo) AppendModification(ctx context.Context, mod *entity.BookingModification) error {
	return nil
}
func (r *fakeBookingRepo) ListModifications(ctx context.Context, bookingId uuid.UUID) ([]*entity.BookingModification, error) {
	return nil, nil
}

type fakeEarningsRepo struct {
	sums map[uuid.UUID]float64
}

func (r *fakeEarningsRepo) Append(ctx context.Context, e *entity.EarningsEntry) error { return nil }
func (r *fakeEarningsRepo) ListByBooking(ctx context.Context, bookingId uuid.UUID) ([]*entity.EarningsEntry, error) {
	return nil, nil
}
func (r *fakeEarningsRepo) SumByBooking(ctx context.Context, bookingId uuid.UUID) (float64, error) {
	return r.sums[bookingId], nil
}

type fakeUow struct {
	bookings *fakeBookingRepo
	earnings *fakeEarningsRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) BookingRepository() contract.BookingRepository           { return u.bookings }
func (u *fakeUow) FeeConfigRepository() contract.FeeConfigRepository       { return nil }
func (u *fakeUow) EarningsRepository() contract.EarningsRepository         { return u.earnings }
func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) SpaceRepository() contract.SpaceRepository               { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return nil }

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

// paidBooking builds a settled booking at base 100 under the test rates:
// fees 12.00 + 1.96 + 15.00, total paid 113.96.
func paidBooking(ref, chargeRef string, host *entity.User) *entity.Booking {
	return &entity.Booking{
		Id:                  uuid.New(),
		Reference:           ref,
		HostId:              host.Id,
		BaseAmount:          100,
		ServiceFee:          f(12.00),
		ProcessingFee:       f(1.96),
		CommissionAmount:    f(15.00),
		TotalPaid:           f(113.96),
		PaymentStatus:       entity.PaymentStatusPaid,
		BookingStatus:       entity.BookingStatusConfirmed,
		ProcessorPaymentRef: s(chargeRef),
		CreatedAt:           time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Host:                *host,
		Space:               entity.Space{Name: "Loft 21"},
	}
}

func testHost() *entity.User {
	return &entity.User{
		Id:               uuid.New(),
		FullName:         "Dana Reyes",
		PayoutAccountRef: s("acct_test_1"),
	}
}

func reportRange() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
}

func TestReport_ExcludesFullyRefundedFromTotals(t *testing.T) {
	host := testHost()
	b1 := paidBooking("BK-1", "ch_1", host)
	b2 := paidBooking("BK-2", "ch_2", host)
	b3 := paidBooking("BK-3", "ch_3", host)
	b3.PaymentStatus = entity.PaymentStatusRefunded
	b3.RefundKind = entity.RefundKindFull
	b3.BookingStatus = entity.BookingStatusCancelled

	gw := &fakeGateway{payoutsByAcct: map[string][]processor.Payout{}}
	agg := NewAggregator(noopLogger{}, gw, fakeRates{})
	uow := &fakeUow{
		bookings: &fakeBookingRepo{bookings: []*entity.Booking{b1, b2, b3}},
		earnings: &fakeEarningsRepo{sums: map[uuid.UUID]float64{}},
	}

	from, to := reportRange()
	rows, summary, err := agg.Report(context.Background(), uow, from, to)
	assert.NoError(t, err)

	assert.Len(t, rows, 3, "refunded bookings still appear as rows")
	assert.Equal(t, 2, summary.TotalTransactions)
	// 2 x 113.96 revenue, 2 x 15.00 commission; the refunded booking adds 0.
	assert.Equal(t, 227.92, summary.TotalRevenue)
	assert.Equal(t, 30.00, summary.TotalCommission)
	// Net per booking falls back to the estimate: 28.96 - 3.60 = 25.36.
	assert.Equal(t, 50.72, summary.TotalNetEarnings)
	assert.InDelta(t, 0.15, summary.AverageCommissionRate, 1e-9)

	// The refunded row reports a reversed payout and zero earnings.
	var refundedRow *ReportRow
	for i := range rows {
		if rows[i].Reference == "BK-3" {
			refundedRow = &rows[i]
		}
	}
	assert.NotNil(t, refundedRow)
	assert.Equal(t, "fully_refunded", refundedRow.Status)
	assert.Equal(t, PayoutReportReversed, refundedRow.PayoutStatus)
	assert.Equal(t, 0.0, refundedRow.PlatformEarnings)
}

func TestReport_PartialRefundKeptAtOriginalFigures(t *testing.T) {
	host := testHost()
	b := paidBooking("BK-1", "ch_1", host)
	b.PaymentStatus = entity.PaymentStatusRefunded
	b.RefundKind = entity.RefundKindPartial
	b.RefundAmount = f(30)

	gw := &fakeGateway{payoutsByAcct: map[string][]processor.Payout{}}
	agg := NewAggregator(noopLogger{}, gw, fakeRates{})
	uow := &fakeUow{
		bookings: &fakeBookingRepo{bookings: []*entity.Booking{b}},
		earnings: &fakeEarningsRepo{sums: map[uuid.UUID]float64{}},
	}

	from, to := reportRange()
	_, summary, err := agg.Report(context.Background(), uow, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.TotalTransactions)
	assert.Equal(t, 113.96, summary.TotalRevenue, "original pre-refund revenue")
	assert.Equal(t, 25.36, summary.TotalNetEarnings, "pre-refund net retained")
}

func TestReport_AuthoritativeLedgerPreferred(t *testing.T) {
	host := testHost()
	b := paidBooking("BK-1", "ch_1", host)

	gw := &fakeGateway{
		ledgerByCharge: map[string]*processor.LedgerDetail{
			"ch_1": {GrossFee: 28.96, ProcessorFee: 3.89, NetFee: 25.07},
		},
		payoutsByAcct: map[string][]processor.Payout{},
	}
	agg := NewAggregator(noopLogger{}, gw, fakeRates{})
	uow := &fakeUow{
		bookings: &fakeBookingRepo{bookings: []*entity.Booking{b}},
		earnings: &fakeEarningsRepo{sums: map[uuid.UUID]float64{}},
	}

	from, to := reportRange()
	rows, summary, err := agg.Report(context.Background(), uow, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 25.07, rows[0].PlatformEarnings)
	assert.Equal(t, 25.07, summary.TotalNetEarnings)
}

func TestReport_PayoutStatuses(t *testing.T) {
	confirmed := testHost()
	waiting := testHost()
	waiting.PayoutAccountRef = s("acct_test_2")

	b1 := paidBooking("BK-1", "ch_1", confirmed)
	b2 := paidBooking("BK-2", "ch_2", waiting)

	gw := &fakeGateway{
		payoutsByAcct: map[string][]processor.Payout{
			"acct_test_1": {
				{Amount: 85.00, Status: processor.PayoutStatusPaid},
				{Amount: 40.00, Status: processor.PayoutStatusInTransit},
			},
			// acct_test_2 has no payouts yet.
		},
	}
	agg := NewAggregator(noopLogger{}, gw, fakeRates{})
	uow := &fakeUow{
		bookings: &fakeBookingRepo{bookings: []*entity.Booking{b1, b2}},
		earnings: &fakeEarningsRepo{sums: map[uuid.UUID]float64{b1.Id: 85.00}},
	}

	from, to := reportRange()
	rows, summary, err := agg.Report(context.Background(), uow, from, to)
	assert.NoError(t, err)

	assert.Equal(t, PayoutReportPaid, rows[0].PayoutStatus)
	assert.Equal(t, 85.00, rows[0].HostPayout)
	assert.Equal(t, PayoutReportPending, rows[1].PayoutStatus)
	assert.Equal(t, 0.0, rows[1].HostPayout, "pending payouts never report a number")

	// Only the confirmed payout reaches the total.
	assert.Equal(t, 85.00, summary.TotalHostPayouts)
}

func TestReport_PayoutLookupFailureReportsUnavailable(t *testing.T) {
	host := testHost()
	b1 := paidBooking("BK-1", "ch_1", host)
	b2 := paidBooking("BK-2", "ch_2", host)

	gw := &fakeGateway{payoutErr: errors.New("account suspended")}
	agg := NewAggregator(noopLogger{}, gw, fakeRates{})
	uow := &fakeUow{
		bookings: &fakeBookingRepo{bookings: []*entity.Booking{b1, b2}},
		earnings: &fakeEarningsRepo{sums: map[uuid.UUID]float64{}},
	}

	from, to := reportRange()
	rows, summary, err := agg.Report(context.Background(), uow, from, to)
	assert.NoError(t, err, "payout lookup failure degrades, it does not fail the report")
	assert.Equal(t, PayoutReportUnavailable, rows[0].PayoutStatus)
	assert.Equal(t, PayoutReportUnavailable, rows[1].PayoutStatus)
	assert.Equal(t, 0.0, summary.TotalHostPayouts)
	assert.Equal(t, 1, gw.payoutCalls, "one lookup per host, cached across rows")
}

func TestWriteCSV(t *testing.T) {
	rows := []ReportRow{
		{
			Reference:        "BK-1",
			HostName:         "Dana Reyes",
			SpaceName:        "Loft 21",
			BookingAmount:    113.96,
			PlatformEarnings: 25.36,
			HostPayout:       85.00,
			PayoutStatus:     PayoutReportPaid,
			Status:           "paid",
			Date:             time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			Reference:        "BK-2",
			HostName:         "Dana Reyes",
			SpaceName:        "Loft 21",
			BookingAmount:    113.96,
			PlatformEarnings: 25.36,
			PayoutStatus:     PayoutReportPending,
			Status:           "paid",
			Date:             time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
		},
	}
	summary := &Summary{
		TotalRevenue:          227.92,
		TotalCommission:       30.00,
		TotalNetEarnings:      50.72,
		TotalHostPayouts:      85.00,
		AverageCommissionRate: 0.15,
		TotalTransactions:     2,
	}

	var buf bytes.Buffer
	err := WriteCSV(&buf, rows, summary)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Reference,Host,Space,Booking Amount,Platform Earnings,Host Payout,Status,Date", lines[0])
	assert.Equal(t, "BK-1,Dana Reyes,Loft 21,113.96,25.36,85.00,paid,2026-03-10", lines[1])
	assert.Equal(t, "BK-2,Dana Reyes,Loft 21,113.96,25.36,pending,paid,2026-03-12", lines[2])
	assert.Contains(t, lines[3], "SUMMARY")
	assert.Contains(t, lines[3], "2 transactions")
	assert.Contains(t, lines[3], "227.92")
	assert.Contains(t, lines[3], "avg commission 15.00%")
}
