package refund

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/repository/contract"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"
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
	refundErr     error
	reversalErr   error
	refundCalls   int
	reversalCalls int

	lastRefundCents   *int64
	lastRefundAppFee  bool
	lastReversalCents int64

	ledgerDetail *processor.LedgerDetail
}

func (g *fakeGateway) RefundCharge(ctx context.Context, chargeRef string, amountCents *int64, refundAppFee bool, reason string, metadata map[string]string) (*processor.RefundResult, error) {
	g.refundCalls++
	g.lastRefundCents = amountCents
	g.lastRefundAppFee = refundAppFee
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	return &processor.RefundResult{RefundRef: "re_test_1", Status: processor.RefundStatusSucceeded}, nil
}

func (g *fakeGateway) ReverseTransfer(ctx context.Context, transferRef string, amountCents int64) (*processor.ReversalResult, error) {
	g.reversalCalls++
	g.lastReversalCents = amountCents
	if g.reversalErr != nil {
		return nil, g.reversalErr
	}
	return &processor.ReversalResult{ReversalRef: "trr_test_1", Status: processor.RefundStatusSucceeded}, nil
}

func (g *fakeGateway) GetChargeLedgerDetail(ctx context.Context, chargeRef string) (*processor.LedgerDetail, error) {
	if g.ledgerDetail == nil {
		return nil, errors.New("charge not found")
	}
	return g.ledgerDetail, nil
}

func (g *fakeGateway) ListAccountPayouts(ctx context.Context, accountRef string, from, to time.Time) ([]processor.Payout, error) {
	return nil, nil
}

type fakeRates struct{}

func (fakeRates) ActiveRates(ctx context.Context, forceRefresh bool) (*entity.FeeConfig, error) {
	return &entity.FeeConfig{
		ServiceRate:           0.12,
		PartnerCommissionRate: 0.15,
		ProcessingRate:        0.0175,
	}, nil
}

type fakeApplier struct {
	applied *Outcome
	err     error
}

func (a *fakeApplier) Apply(ctx context.Context, uow unitofwork.UnitOfWork, out *Outcome) error {
	if a.err != nil {
		return a.err
	}
	a.applied = out
	return nil
}

type publishedEvent struct {
	kind      string
	bookingId uuid.UUID
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) PublishRefundExecuted(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount, reversalAmount float64, refundRef string) {
	p.events = append(p.events, publishedEvent{kind: "REFUND_EXECUTED", bookingId: bookingId})
}

func (p *fakePublisher) PublishRefundPendingManual(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount float64, syntheticRef string) {
	p.events = append(p.events, publishedEvent{kind: "REFUND_PENDING_MANUAL", bookingId: bookingId})
}

func (p *fakePublisher) PublishBookingStatusChanged(ctx context.Context, bookingId uuid.UUID, oldStatus, newStatus, actor string) {
}

func (p *fakePublisher) PublishFeeConfigUpdated(ctx context.Context, configId uuid.UUID, serviceRate, commissionRate, processingRate float64, actor string) {
}

type fakeBookingRepo struct {
	booking *entity.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return r.booking, nil
}
func (r *fakeBookingRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return r.booking, nil
}
func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error { return nil }
func (r *fakeBookingRepo) AppendModification(ctx context.Context, mod *entity.BookingModification) error {
	return nil
}
func (r *fakeBookingRepo) ListModifications(ctx context.Context, bookingId uuid.UUID) ([]*entity.BookingModification, error) {
	return nil, nil
}

type fakeUow struct {
	bookings *fakeBookingRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) BookingRepository() contract.BookingRepository           { return u.bookings }
func (u *fakeUow) FeeConfigRepository() contract.FeeConfigRepository       { return nil }
func (u *fakeUow) EarningsRepository() contract.EarningsRepository         { return nil }
func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) SpaceRepository() contract.SpaceRepository               { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return nil }

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func testBooking() *entity.Booking {
	return &entity.Booking{
		Id:                   uuid.New(),
		Reference:            "BK-1001",
		HostId:               uuid.New(),
		BaseAmount:           100,
		ServiceFee:           f(12.00),
		ProcessingFee:        f(1.96),
		CommissionAmount:     f(15.00),
		TotalPaid:            f(113.96),
		PaymentStatus:        entity.PaymentStatusPaid,
		BookingStatus:        entity.BookingStatusConfirmed,
		ProcessorPaymentRef:  s("ch_test_1"),
		ProcessorTransferRef: s("tr_test_1"),
	}
}

type engineFixture struct {
	engine    *Engine
	gateway   *fakeGateway
	applier   *fakeApplier
	publisher *fakePublisher
	uow       *fakeUow
}

func newFixture(booking *entity.Booking) *engineFixture {
	gw := &fakeGateway{}
	applier := &fakeApplier{}
	pub := &fakePublisher{}
	return &engineFixture{
		engine:    NewEngine(noopLogger{}, gw, fakeRates{}, applier, pub),
		gateway:   gw,
		applier:   applier,
		publisher: pub,
		uow:       &fakeUow{bookings: &fakeBookingRepo{booking: booking}},
	}
}

func TestExecute_FullRefund(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: booking.Id,
		Type:      entity.RefundTypeFull,
		Reason:    "host cancelled",
		Actor:     "ops@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, 113.96, res.RefundAmount)
	assert.Nil(t, res.TransferReversalAmount)
	assert.Equal(t, "re_test_1", res.RefundRef)
	assert.Empty(t, res.Warning)

	// Whole-charge refund, application fee included.
	assert.Nil(t, fx.gateway.lastRefundCents)
	assert.True(t, fx.gateway.lastRefundAppFee)
	assert.Equal(t, 0, fx.gateway.reversalCalls)

	out := fx.applier.applied
	assert.NotNil(t, out)
	assert.True(t, out.CancelBooking)
	assert.Equal(t, 0.0, out.NetApplicationFee)
	assert.Equal(t, 0.0, out.PlatformEarnings)

	assert.Len(t, fx.publisher.events, 1)
	assert.Equal(t, "REFUND_EXECUTED", fx.publisher.events[0].kind)
}

func TestExecute_PartialRefund(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId:       booking.Id,
		Type:            entity.RefundTypePartial,
		RequestedAmount: 30,
		Reason:          "late check-in",
		Actor:           "ops@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, 30.0, res.RefundAmount)
	assert.Nil(t, res.TransferReversalAmount)

	assert.NotNil(t, fx.gateway.lastRefundCents)
	assert.Equal(t, int64(3000), *fx.gateway.lastRefundCents)
	assert.False(t, fx.gateway.lastRefundAppFee, "partial refunds keep the platform cut")
	assert.Equal(t, 0, fx.gateway.reversalCalls)

	out := fx.applier.applied
	assert.False(t, out.CancelBooking)
	// Pre-refund net is retained: gross 28.96 minus estimated fee 3.60.
	assert.Equal(t, 25.36, out.NetApplicationFee)
}

func TestExecute_SplitRefund(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: booking.Id,
		Type:      entity.RefundTypeSplit,
		Reason:    "mutual agreement",
		Actor:     "ops@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, StateDone, res.State)

	// remainder = 113.96 - 28.96 = 85.00, halved to 42.50 each.
	assert.Equal(t, 42.50, res.RefundAmount)
	assert.NotNil(t, res.TransferReversalAmount)
	assert.Equal(t, 42.50, *res.TransferReversalAmount)
	assert.Equal(t, "trr_test_1", *res.ReversalRef)

	assert.Equal(t, 1, fx.gateway.reversalCalls)
	assert.Equal(t, int64(4250), fx.gateway.lastReversalCents)

	out := fx.applier.applied
	assert.False(t, out.CancelBooking)
	assert.Equal(t, 25.36, out.NetApplicationFee, "split refunds keep the pre-refund net")
}

func TestExecute_AuthoritativeNetUsedWhenLedgerAvailable(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)
	fx.gateway.ledgerDetail = &processor.LedgerDetail{GrossFee: 28.96, ProcessorFee: 3.89, NetFee: 25.07}

	_, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId:       booking.Id,
		Type:            entity.RefundTypePartial,
		RequestedAmount: 10,
		Actor:           "ops@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, 25.07, fx.applier.applied.NetApplicationFee)
}

func TestExecute_ProcessorFailureDegradesToPendingManual(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)
	fx.gateway.refundErr = errors.New("connection timed out")

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId:       booking.Id,
		Type:            entity.RefundTypePartial,
		RequestedAmount: 30,
		Reason:          "late check-in",
		Actor:           "ops@example.com",
	})
	assert.NoError(t, err, "processor failure is a warning, not an error")
	assert.Equal(t, StateDone, res.State)
	assert.NotEmpty(t, res.Warning)
	assert.True(t, strings.HasPrefix(res.RefundRef, "pending_manual_"))

	// The monetary intent still reaches the ledger.
	out := fx.applier.applied
	assert.NotNil(t, out)
	assert.Equal(t, 30.0, out.RefundAmount)
	assert.True(t, out.PendingManual)

	assert.Len(t, fx.publisher.events, 1)
	assert.Equal(t, "REFUND_PENDING_MANUAL", fx.publisher.events[0].kind)
}

func TestExecute_SplitReversalFailureStillPersistsBothAmounts(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)
	fx.gateway.reversalErr = errors.New("transfer not found")

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: booking.Id,
		Type:      entity.RefundTypeSplit,
		Actor:     "ops@example.com",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, "re_test_1", res.RefundRef, "charge refund side succeeded")
	assert.True(t, strings.HasPrefix(*res.ReversalRef, "pending_manual_"))
	assert.Equal(t, 42.50, *res.TransferReversalAmount)
}

func TestExecute_NoPaymentReferenceAbortsHard(t *testing.T) {
	booking := testBooking()
	booking.ProcessorPaymentRef = nil
	fx := newFixture(booking)

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: booking.Id,
		Type:      entity.RefundTypeFull,
		Actor:     "ops@example.com",
	})
	assert.ErrorIs(t, err, ErrNoPaymentReference)
	assert.Equal(t, StateFailedAborted, res.State)

	// No processor call, no mutation, no events.
	assert.Equal(t, 0, fx.gateway.refundCalls)
	assert.Nil(t, fx.applier.applied)
	assert.Empty(t, fx.publisher.events)
}

func TestExecute_BookingNotFoundAbortsHard(t *testing.T) {
	fx := newFixture(nil)

	res, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: uuid.New(),
		Type:      entity.RefundTypeFull,
		Actor:     "ops@example.com",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, StateFailedAborted, res.State)
	assert.Equal(t, 0, fx.gateway.refundCalls)
}

func TestExecute_PersistenceFailureIsHardError(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)
	fx.applier.err = errors.New("deadlock detected")

	_, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId:       booking.Id,
		Type:            entity.RefundTypePartial,
		RequestedAmount: 30,
		Actor:           "ops@example.com",
	})
	assert.Error(t, err)
	assert.Empty(t, fx.publisher.events, "no notification after a failed mutation")
}

func TestExecute_InvalidRequests(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)

	cases := []entity.RefundRequest{
		{BookingId: booking.Id, Type: "chargeback"},
		{BookingId: booking.Id, Type: entity.RefundTypePartial, RequestedAmount: 0},
		{BookingId: booking.Id, Type: entity.RefundTypeFull, RequestedAmount: -5},
	}
	for _, req := range cases {
		_, err := fx.engine.Execute(context.Background(), fx.uow, req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
	assert.Equal(t, 0, fx.gateway.refundCalls)
}

func TestExecute_RejectsConcurrentRefundOnSameBooking(t *testing.T) {
	booking := testBooking()
	fx := newFixture(booking)

	// Simulate an in-flight refund by holding the lock.
	assert.True(t, fx.engine.locks.TryAcquire(booking.Id))
	defer fx.engine.locks.Release(booking.Id)

	_, err := fx.engine.Execute(context.Background(), fx.uow, entity.RefundRequest{
		BookingId: booking.Id,
		Type:      entity.RefundTypeFull,
		Actor:     "ops@example.com",
	})
	assert.ErrorIs(t, err, ErrRefundInFlight)
	assert.Equal(t, 0, fx.gateway.refundCalls)
}
