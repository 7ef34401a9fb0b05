package ledger

import (
	"context"
	"errors"
	"testing"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/repository/contract"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/pkg/admin/refund"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeBookingRepo struct {
	updated *entity.Booking
	mods    []*entity.BookingModification
	modErr  error
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
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
func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	r.updated = b
	return nil
}
func (r *fakeBookingRepo) AppendModification(ctx context.Context, mod *entity.BookingModification) error {
	if r.modErr != nil {
		return r.modErr
	}
	r.mods = append(r.mods, mod)
	return nil
}
func (r *fakeBookingRepo) ListModifications(ctx context.Context, bookingId uuid.UUID) ([]*entity.BookingModification, error) {
	return r.mods, nil
}

type fakeEarningsRepo struct {
	prior   float64
	entries []*entity.EarningsEntry
}

func (r *fakeEarningsRepo) Append(ctx context.Context, e *entity.EarningsEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeEarningsRepo) ListByBooking(ctx context.Context, bookingId uuid.UUID) ([]*entity.EarningsEntry, error) {
	return r.entries, nil
}
func (r *fakeEarningsRepo) SumByBooking(ctx context.Context, bookingId uuid.UUID) (float64, error) {
	return r.prior, nil
}

type fakeUow struct {
	bookings   *fakeBookingRepo
	earnings   *fakeEarningsRepo
	committed  bool
	rolledBack bool
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.committed = true; return nil }
func (u *fakeUow) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUow) BookingRepository() contract.BookingRepository           { return u.bookings }
func (u *fakeUow) FeeConfigRepository() contract.FeeConfigRepository       { return nil }
func (u *fakeUow) EarningsRepository() contract.EarningsRepository         { return u.earnings }
func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) SpaceRepository() contract.SpaceRepository               { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return nil }

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func testBooking() *entity.Booking {
	return &entity.Booking{
		Id:                  uuid.New(),
		Reference:           "BK-1001",
		HostId:              uuid.New(),
		BaseAmount:          100,
		ServiceFee:          f(12.00),
		ProcessingFee:       f(1.96),
		CommissionAmount:    f(15.00),
		TotalPaid:           f(113.96),
		PaymentStatus:       entity.PaymentStatusPaid,
		BookingStatus:       entity.BookingStatusConfirmed,
		ProcessorPaymentRef: s("ch_test_1"),
	}
}

func newUow(prior float64) *fakeUow {
	return &fakeUow{
		bookings: &fakeBookingRepo{},
		earnings: &fakeEarningsRepo{prior: prior},
	}
}

func TestApply_FullRefund(t *testing.T) {
	b := testBooking()
	uow := newUow(85.00)
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking: b,
		Request: entity.RefundRequest{
			BookingId: b.Id,
			Type:      entity.RefundTypeFull,
			Reason:    "host cancelled",
			Actor:     "ops@example.com",
		},
		RefundAmount:  113.96,
		RefundRef:     "re_1",
		CancelBooking: true,
	}
	err := u.Apply(context.Background(), uow, out)
	assert.NoError(t, err)
	assert.True(t, uow.committed)

	assert.Equal(t, entity.PaymentStatusRefunded, b.PaymentStatus)
	assert.Equal(t, entity.BookingStatusCancelled, b.BookingStatus)
	assert.Equal(t, entity.RefundKindFull, b.RefundKind)
	assert.Equal(t, 113.96, *b.RefundAmount)
	assert.Nil(t, b.TransferReversalAmount)
	assert.Equal(t, "re_1", *b.ProcessorRefundRef)
	assert.Equal(t, 0.0, *b.NetApplicationFee)

	// Full reversal of everything the host was owed.
	entries := uow.earnings.entries
	assert.Len(t, entries, 1)
	assert.Equal(t, -85.00, entries[0].Amount)
	assert.Equal(t, entity.EarningsKindRefundReversal, entries[0].Kind)

	mods := uow.bookings.mods
	assert.Len(t, mods, 1)
	assert.Equal(t, "refund", mods[0].Type)
	assert.Equal(t, "paid", mods[0].OldValue["paymentStatus"])
	assert.Equal(t, "refunded", mods[0].NewValue["paymentStatus"])
	assert.Equal(t, "ops@example.com", mods[0].Actor)
}

func TestApply_PartialRefundProportionalReversal(t *testing.T) {
	b := testBooking()
	uow := newUow(85.00)
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking: b,
		Request: entity.RefundRequest{
			BookingId:       b.Id,
			Type:            entity.RefundTypePartial,
			RequestedAmount: 30,
			Reason:          "late check-in",
			Actor:           "ops@example.com",
		},
		RefundAmount:      30,
		RefundRef:         "re_2",
		NetApplicationFee: 25.36,
		PlatformEarnings:  25.36,
	}
	err := u.Apply(context.Background(), uow, out)
	assert.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, b.BookingStatus, "partial refunds do not cancel")
	assert.Equal(t, 25.36, *b.NetApplicationFee)

	// 85.00 * 30 / 113.96 = 22.38, reversed proportionally.
	entries := uow.earnings.entries
	assert.Len(t, entries, 1)
	assert.Equal(t, -22.38, entries[0].Amount)
}

func TestApply_SplitRefundReversesHostShare(t *testing.T) {
	b := testBooking()
	uow := newUow(85.00)
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking: b,
		Request: entity.RefundRequest{
			BookingId: b.Id,
			Type:      entity.RefundTypeSplit,
			Actor:     "ops@example.com",
		},
		RefundAmount:      42.50,
		ReversalAmount:    f(42.50),
		RefundRef:         "re_3",
		ReversalRef:       s("trr_3"),
		NetApplicationFee: 25.36,
		PlatformEarnings:  25.36,
	}
	err := u.Apply(context.Background(), uow, out)
	assert.NoError(t, err)

	// Both sides persisted explicitly.
	assert.Equal(t, 42.50, *b.RefundAmount)
	assert.Equal(t, 42.50, *b.TransferReversalAmount)
	assert.Equal(t, "trr_3", *b.ProcessorTransferReversalRef)
	assert.Equal(t, entity.BookingStatusConfirmed, b.BookingStatus)

	entries := uow.earnings.entries
	assert.Len(t, entries, 1)
	assert.Equal(t, -42.50, entries[0].Amount)
}

func TestApply_SplitWithZeroShareStillPersistsBoth(t *testing.T) {
	b := testBooking()
	uow := newUow(0)
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking: b,
		Request: entity.RefundRequest{
			BookingId: b.Id,
			Type:      entity.RefundTypeSplit,
			Actor:     "ops@example.com",
		},
		RefundAmount:   0,
		ReversalAmount: f(0),
		RefundRef:      "re_4",
		ReversalRef:    s("trr_4"),
	}
	err := u.Apply(context.Background(), uow, out)
	assert.NoError(t, err)

	assert.NotNil(t, b.RefundAmount)
	assert.NotNil(t, b.TransferReversalAmount)
	assert.Equal(t, 0.0, *b.RefundAmount)
	assert.Equal(t, 0.0, *b.TransferReversalAmount)
	assert.Empty(t, uow.earnings.entries)
}

func TestApply_NoPriorEarningsSkipsCompensatingEntry(t *testing.T) {
	b := testBooking()
	uow := newUow(0)
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking:      b,
		Request:      entity.RefundRequest{BookingId: b.Id, Type: entity.RefundTypeFull, Actor: "ops@example.com"},
		RefundAmount: 113.96,
		RefundRef:    "re_5",
	}
	err := u.Apply(context.Background(), uow, out)
	assert.NoError(t, err)
	assert.Empty(t, uow.earnings.entries)
}

func TestApply_AuditFailureRollsBack(t *testing.T) {
	b := testBooking()
	uow := newUow(85.00)
	uow.bookings.modErr = errors.New("write conflict")
	u := NewUpdater(noopLogger{})

	out := &refund.Outcome{
		Booking:      b,
		Request:      entity.RefundRequest{BookingId: b.Id, Type: entity.RefundTypeFull, Actor: "ops@example.com"},
		RefundAmount: 113.96,
		RefundRef:    "re_6",
	}
	err := u.Apply(context.Background(), uow, out)
	assert.Error(t, err)
	assert.False(t, uow.committed)
	assert.True(t, uow.rolledBack)
	assert.Empty(t, uow.earnings.entries)
}

func TestApplyStatusChange(t *testing.T) {
	b := testBooking()
	uow := newUow(0)
	u := NewUpdater(noopLogger{})

	err := u.ApplyStatusChange(context.Background(), uow, b, entity.BookingStatusCompleted, "stay finished", "ops@example.com")
	assert.NoError(t, err)
	assert.True(t, uow.committed)
	assert.Equal(t, entity.BookingStatusCompleted, b.BookingStatus)

	mods := uow.bookings.mods
	assert.Len(t, mods, 1)
	assert.Equal(t, "status_change", mods[0].Type)
	assert.Equal(t, "confirmed", mods[0].OldValue["bookingStatus"])
	assert.Equal(t, "completed", mods[0].NewValue["bookingStatus"])
}
