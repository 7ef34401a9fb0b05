package refund

import (
	"context"
	"errors"
	"fmt"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"
	adminEvents "space-admin-be/pkg/admin/events"
	"space-admin-be/pkg/admin/fees"
	"space-admin-be/pkg/money"
	"space-admin-be/pkg/processor"

	"github.com/google/uuid"
)

// State tracks a refund operation through its lifecycle. Every run walks the
// chain in order; the only terminal failure state is FailedAborted, reached
// before any processor call.
type State string

const (
	StateRequested              State = "REQUESTED"
	StateProcessorAttempted     State = "PROCESSOR_REFUND_ATTEMPTED"
	StateProcessorConfirmed     State = "PROCESSOR_REFUND_CONFIRMED"
	StateProcessorPendingManual State = "PROCESSOR_REFUND_PENDING_MANUAL"
	StateLedgerUpdated          State = "LEDGER_UPDATED"
	StateNotified               State = "NOTIFIED"
	StateDone                   State = "DONE"
	StateFailedAborted          State = "FAILED_ABORTED"
)

var (
	ErrRefundInFlight     = errors.New("a refund for this booking is already in flight")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNoPaymentReference = errors.New("booking has no processor payment reference")
	ErrInvalidRequest     = errors.New("invalid refund request")
)

// RateSource supplies the active fee configuration.
type RateSource interface {
	ActiveRates(ctx context.Context, forceRefresh bool) (*entity.FeeConfig, error)
}

// Applier persists a refund outcome: booking fields, audit record, and the
// compensating earnings entry, as one unit.
type Applier interface {
	Apply(ctx context.Context, uow unitofwork.UnitOfWork, out *Outcome) error
}

// Outcome is the fully decided and processor-settled result of one refund,
// handed to the ledger updater for persistence.
type Outcome struct {
	Booking *entity.Booking // pre-mutation snapshot
	Request entity.RefundRequest

	RefundAmount   float64
	ReversalAmount *float64 // explicit for split refunds, including explicit 0
	RefundRef      string
	ReversalRef    *string
	CancelBooking  bool

	NetApplicationFee float64
	PlatformEarnings  float64

	PendingManual bool
}

// Result is what the operator-facing caller receives.
type Result struct {
	State                  State
	RefundAmount           float64
	TransferReversalAmount *float64
	RefundRef              string
	ReversalRef            *string
	Warning                string
}

// decision is the monetary split derived from the refund type before any
// processor call is made.
type decision struct {
	refundAmount    float64
	refundCents     *int64 // nil means refund the whole charge
	refundAppFee    bool
	reversalAmount  *float64
	reverseTransfer bool
	cancelBooking   bool
}

// Engine executes operator-requested refunds: it decides the guest/host
// split, calls the processor, and hands the settled outcome to the ledger
// updater. Processor unavailability degrades to a pending-manual record;
// missing payment references abort hard before any call.
type Engine struct {
	logger    logger.ILogger
	gateway   processor.Gateway
	rates     RateSource
	ledger    Applier
	publisher adminEvents.Publisher
	locks     *BookingLocks
}

func NewEngine(log logger.ILogger, gateway processor.Gateway, rates RateSource, ledger Applier, publisher adminEvents.Publisher) *Engine {
	return &Engine{
		logger:    log,
		gateway:   gateway,
		rates:     rates,
		ledger:    ledger,
		publisher: publisher,
		locks:     NewBookingLocks(),
	}
}

// Execute runs one refund end to end. A second call for the same booking
// while one is in flight returns ErrRefundInFlight immediately.
func (e *Engine) Execute(ctx context.Context, uow unitofwork.UnitOfWork, req entity.RefundRequest) (*Result, error) {
	if !req.Valid() {
		return nil, ErrInvalidRequest
	}

	if !e.locks.TryAcquire(req.BookingId) {
		return nil, ErrRefundInFlight
	}
	defer e.locks.Release(req.BookingId)

	state := StateRequested

	// 1. Locate the booking; refunds are impossible without it.
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: req.BookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		state = StateFailedAborted
		e.logger.Warn("REFUND", "Refund aborted, booking not found", map[string]interface{}{
			"bookingId": req.BookingId.String(),
		})
		return &Result{State: state}, ErrBookingNotFound
	}

	// 2. A refund needs a processor-side charge to act on. Abort before any
	// processor call, with no mutation.
	if booking.ProcessorPaymentRef == nil || *booking.ProcessorPaymentRef == "" {
		state = StateFailedAborted
		e.logger.Warn("REFUND", "Refund aborted, no payment reference", map[string]interface{}{
			"bookingId": booking.Id.String(),
			"reference": booking.Reference,
		})
		return &Result{State: state}, ErrNoPaymentReference
	}

	rates, err := e.rates.ActiveRates(ctx, false)
	if err != nil {
		return nil, err
	}

	// 3. Decide the split.
	dec := decide(booking, rates, req)

	// 4. Processor execution. Failures here never abort the refund: the
	// operator's intent is recorded under a synthetic pending reference for
	// later manual reconciliation.
	state = StateProcessorAttempted
	out := &Outcome{
		Booking:        booking,
		Request:        req,
		RefundAmount:   dec.refundAmount,
		ReversalAmount: dec.reversalAmount,
		CancelBooking:  dec.cancelBooking,
	}

	refundRes, err := e.gateway.RefundCharge(ctx, *booking.ProcessorPaymentRef, dec.refundCents, dec.refundAppFee, req.Reason, map[string]string{
		"booking_id":  booking.Id.String(),
		"refund_type": string(req.Type),
		"actor":       req.Actor,
	})
	if err != nil {
		out.RefundRef = syntheticPendingRef()
		out.PendingManual = true
		e.logger.Error("REFUND", "Processor refund call failed, recording pending-manual reference", map[string]interface{}{
			"bookingId":    booking.Id.String(),
			"syntheticRef": out.RefundRef,
			"error":        err.Error(),
		})
	} else {
		out.RefundRef = refundRes.RefundRef
	}

	if dec.reverseTransfer {
		ref, pendingManual := e.reverseHostTransfer(ctx, booking, *dec.reversalAmount)
		out.ReversalRef = &ref
		out.PendingManual = out.PendingManual || pendingManual
	}

	if out.PendingManual {
		state = StateProcessorPendingManual
	} else {
		state = StateProcessorConfirmed
	}

	// 5. Settle the earnings figures. Full refunds forfeit the platform's
	// entire take; partial and split refunds keep the pre-refund figure.
	net := e.settleNetFee(ctx, booking, rates, req.Type)
	out.NetApplicationFee = net
	out.PlatformEarnings = net

	// 6. Ledger mutation. A failure here is a hard error even though the
	// processor side may have succeeded: a processor refund without a local
	// record is the failure mode we refuse to hide.
	if err := e.ledger.Apply(ctx, uow, out); err != nil {
		return nil, fmt.Errorf("refund executed by processor but ledger update failed: %w", err)
	}
	state = StateLedgerUpdated

	// 7. Notifications. Failures are logged inside the publisher and never
	// unwind the committed mutation.
	if out.PendingManual {
		e.publisher.PublishRefundPendingManual(ctx, booking.Id, string(req.Type), out.RefundAmount, out.RefundRef)
	} else {
		reversal := 0.0
		if out.ReversalAmount != nil {
			reversal = *out.ReversalAmount
		}
		e.publisher.PublishRefundExecuted(ctx, booking.Id, string(req.Type), out.RefundAmount, reversal, out.RefundRef)
	}
	state = StateNotified

	e.logger.Info("REFUND", "Refund completed", map[string]interface{}{
		"bookingId":     booking.Id.String(),
		"refundType":    string(req.Type),
		"refundAmount":  out.RefundAmount,
		"pendingManual": out.PendingManual,
		"actor":         req.Actor,
	})

	state = StateDone
	res := &Result{
		State:                  state,
		RefundAmount:           out.RefundAmount,
		TransferReversalAmount: out.ReversalAmount,
		RefundRef:              out.RefundRef,
		ReversalRef:            out.ReversalRef,
	}
	if out.PendingManual {
		res.Warning = "processor unavailable; refund recorded under a pending-manual reference for reconciliation"
	}
	return res, nil
}

// decide maps {refund type} to the monetary split. The asymmetry between the
// three types is the core business rule and is kept in one place.
func decide(b *entity.Booking, rates *entity.FeeConfig, req entity.RefundRequest) decision {
	total := fees.TrueTotal(b, rates)

	switch req.Type {
	case entity.RefundTypeFull:
		d := decision{
			refundAmount:  total,
			refundAppFee:  true,
			cancelBooking: true,
		}
		if req.RequestedAmount > 0 {
			d.refundAmount = money.Round2(req.RequestedAmount)
			cents := money.ToCents(d.refundAmount)
			d.refundCents = &cents
		}
		return d

	case entity.RefundTypePartial:
		amount := money.Round2(req.RequestedAmount)
		cents := money.ToCents(amount)
		return decision{
			refundAmount: amount,
			refundCents:  &cents,
		}

	default: // split_50_50
		gross := fees.GrossApplicationFee(b, rates)
		remainder := money.Sub(total, gross)
		share := money.Half(remainder)
		cents := money.ToCents(share)
		// Both sides are persisted explicitly, even at exactly 0, to
		// distinguish "split with a zero share" from "never split".
		reversal := share
		return decision{
			refundAmount:    share,
			refundCents:     &cents,
			reversalAmount:  &reversal,
			reverseTransfer: true,
		}
	}
}

// reverseHostTransfer claws back the host share of a split refund. A missing
// transfer reference or a processor error both degrade to a synthetic
// pending-manual reference; the split itself still lands on the booking.
func (e *Engine) reverseHostTransfer(ctx context.Context, b *entity.Booking, amount float64) (ref string, pendingManual bool) {
	if b.ProcessorTransferRef == nil || *b.ProcessorTransferRef == "" {
		ref = syntheticPendingRef()
		e.logger.Warn("REFUND", "No transfer reference on booking, reversal recorded as pending-manual", map[string]interface{}{
			"bookingId":    b.Id.String(),
			"syntheticRef": ref,
		})
		return ref, true
	}

	res, err := e.gateway.ReverseTransfer(ctx, *b.ProcessorTransferRef, money.ToCents(amount))
	if err != nil {
		ref = syntheticPendingRef()
		e.logger.Error("REFUND", "Processor transfer reversal failed, recording pending-manual reference", map[string]interface{}{
			"bookingId":    b.Id.String(),
			"syntheticRef": ref,
			"error":        err.Error(),
		})
		return ref, true
	}
	return res.ReversalRef, false
}

// settleNetFee computes the post-refund net application fee. The booking is
// still in its pre-refund state here, so partial and split refunds naturally
// keep the unchanged figure.
func (e *Engine) settleNetFee(ctx context.Context, b *entity.Booking, rates *entity.FeeConfig, kind entity.RefundType) float64 {
	if kind == entity.RefundTypeFull {
		return 0
	}

	var detail *processor.LedgerDetail
	if b.ProcessorPaymentRef != nil {
		// Best effort: the estimate path covers a processor that just failed.
		if d, err := e.gateway.GetChargeLedgerDetail(ctx, *b.ProcessorPaymentRef); err == nil {
			detail = d
		}
	}
	return fees.NetApplicationFee(b, rates, detail).Amount
}

func syntheticPendingRef() string {
	return "pending_manual_" + uuid.New().String()
}
