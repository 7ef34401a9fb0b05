// Package ledger applies settled refund outcomes and booking status changes
// to persistent state: the booking row, its modification history, and the
// host earnings ledger, as one transactional unit.
package ledger

import (
	"context"
	"fmt"
	"time"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/unitofwork"
	"space-admin-be/pkg/admin/refund"
	"space-admin-be/pkg/money"

	"github.com/google/uuid"
)

type Updater struct {
	logger logger.ILogger
}

func NewUpdater(log logger.ILogger) *Updater {
	return &Updater{logger: log}
}

// Apply persists a refund outcome. The booking mutation, the audit record,
// and the compensating earnings entry commit together or not at all.
func (u *Updater) Apply(ctx context.Context, uow unitofwork.UnitOfWork, out *refund.Outcome) error {
	b := out.Booking

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	oldSnapshot := bookingSnapshot(b)

	// 1. Booking mutation.
	b.PaymentStatus = entity.PaymentStatusRefunded
	b.RefundKind = refundKind(out.Request.Type)
	b.RefundAmount = &out.RefundAmount
	b.TransferReversalAmount = out.ReversalAmount
	b.RefundReason = out.Request.Reason
	b.ProcessorRefundRef = &out.RefundRef
	b.ProcessorTransferReversalRef = out.ReversalRef
	b.NetApplicationFee = &out.NetApplicationFee
	b.PlatformEarnings = &out.PlatformEarnings
	if out.CancelBooking {
		b.BookingStatus = entity.BookingStatusCancelled
	}

	if err := uow.BookingRepository().Update(ctx, b); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	// 2. Audit record with before/after snapshots.
	mod := &entity.BookingModification{
		Id:        uuid.New(),
		BookingId: b.Id,
		Type:      "refund",
		OldValue:  oldSnapshot,
		NewValue:  bookingSnapshot(b),
		Reason:    out.Request.Reason,
		Actor:     out.Request.Actor,
		CreatedAt: time.Now(),
	}
	if err := uow.BookingRepository().AppendModification(ctx, mod); err != nil {
		return fmt.Errorf("failed to append booking modification: %w", err)
	}

	// 3. Compensating earnings entry, sized to the host's share of the
	// refund. Skipped when the host was never owed anything.
	prior, err := uow.EarningsRepository().SumByBooking(ctx, b.Id)
	if err != nil {
		return fmt.Errorf("failed to read prior earnings: %w", err)
	}
	if prior > 0 {
		reversal := compensatingAmount(out, prior)
		if reversal != 0 {
			entry := &entity.EarningsEntry{
				Id:          uuid.New(),
				BookingId:   b.Id,
				HostId:      b.HostId,
				Amount:      -reversal,
				Kind:        entity.EarningsKindRefundReversal,
				Description: fmt.Sprintf("Reversal for %s refund of booking %s", out.Request.Type, b.Reference),
				CreatedAt:   time.Now(),
			}
			if err := uow.EarningsRepository().Append(ctx, entry); err != nil {
				return fmt.Errorf("failed to append compensating earnings entry: %w", err)
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	u.logger.Info("LEDGER", "Refund applied to booking ledger", map[string]interface{}{
		"bookingId":    b.Id.String(),
		"refundType":   string(out.Request.Type),
		"refundAmount": out.RefundAmount,
		"actor":        out.Request.Actor,
	})
	return nil
}

// ApplyStatusChange persists a manual booking status change with its audit
// record, in one transaction.
func (u *Updater) ApplyStatusChange(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking, newStatus entity.BookingStatus, reason, actor string) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	oldSnapshot := map[string]interface{}{"bookingStatus": string(b.BookingStatus)}
	b.BookingStatus = newStatus

	if err := uow.BookingRepository().Update(ctx, b); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	mod := &entity.BookingModification{
		Id:        uuid.New(),
		BookingId: b.Id,
		Type:      "status_change",
		OldValue:  oldSnapshot,
		NewValue:  map[string]interface{}{"bookingStatus": string(newStatus)},
		Reason:    reason,
		Actor:     actor,
		CreatedAt: time.Now(),
	}
	if err := uow.BookingRepository().AppendModification(ctx, mod); err != nil {
		return fmt.Errorf("failed to append booking modification: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	u.logger.Info("LEDGER", "Booking status changed", map[string]interface{}{
		"bookingId": b.Id.String(),
		"oldStatus": oldSnapshot["bookingStatus"],
		"newStatus": string(newStatus),
		"actor":     actor,
	})
	return nil
}

// compensatingAmount sizes the positive magnitude of the host-side reversal.
// Full refunds reverse everything the host was owed; partial refunds reverse
// the proportional slice; split refunds reverse exactly the host share that
// was clawed back.
func compensatingAmount(out *refund.Outcome, prior float64) float64 {
	switch out.Request.Type {
	case entity.RefundTypeFull:
		return money.Round2(prior)
	case entity.RefundTypePartial:
		total := totalPaid(out.Booking)
		return money.Share(prior, out.RefundAmount, total)
	default: // split_50_50
		if out.ReversalAmount == nil {
			return 0
		}
		return money.Round2(*out.ReversalAmount)
	}
}

func totalPaid(b *entity.Booking) float64 {
	if b.TotalPaid != nil {
		return *b.TotalPaid
	}
	return b.BaseAmount
}

func refundKind(t entity.RefundType) entity.RefundKind {
	switch t {
	case entity.RefundTypeFull:
		return entity.RefundKindFull
	case entity.RefundTypePartial:
		return entity.RefundKindPartial
	default:
		return entity.RefundKindSplit
	}
}

func bookingSnapshot(b *entity.Booking) map[string]interface{} {
	snap := map[string]interface{}{
		"paymentStatus": string(b.PaymentStatus),
		"bookingStatus": string(b.BookingStatus),
		"refundKind":    string(b.RefundKind),
	}
	if b.RefundAmount != nil {
		snap["refundAmount"] = *b.RefundAmount
	}
	if b.TransferReversalAmount != nil {
		snap["transferReversalAmount"] = *b.TransferReversalAmount
	}
	if b.NetApplicationFee != nil {
		snap["netApplicationFee"] = *b.NetApplicationFee
	}
	if b.PlatformEarnings != nil {
		snap["platformEarnings"] = *b.PlatformEarnings
	}
	if b.ProcessorRefundRef != nil {
		snap["processorRefundRef"] = *b.ProcessorRefundRef
	}
	if b.ProcessorTransferReversalRef != nil {
		snap["processorTransferReversalRef"] = *b.ProcessorTransferReversalRef
	}
	return snap
}
