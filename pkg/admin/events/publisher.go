package events

import (
	"context"
	"time"

	"space-admin-be/internal/pkg/logger"
	pkgEvents "space-admin-be/pkg/events"
	pkgNats "space-admin-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishRefundExecuted(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount, reversalAmount float64, refundRef string)
	PublishRefundPendingManual(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount float64, syntheticRef string)
	PublishBookingStatusChanged(ctx context.Context, bookingId uuid.UUID, oldStatus, newStatus, actor string)
	PublishFeeConfigUpdated(ctx context.Context, configId uuid.UUID, serviceRate, commissionRate, processingRate float64, actor string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishRefundExecuted emits REFUND_EXECUTED after the processor confirmed the refund
func (p *NatsPublisher) PublishRefundExecuted(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount, reversalAmount float64, refundRef string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "REFUND_EXECUTED",
		Data: map[string]interface{}{
			"booking_id":      bookingId,
			"refund_type":     refundType,
			"refund_amount":   refundAmount,
			"reversal_amount": reversalAmount,
			"refund_ref":      refundRef,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish REFUND_EXECUTED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishRefundPendingManual emits REFUND_PENDING_MANUAL when the processor call
// failed and the refund was recorded under a synthetic reference
func (p *NatsPublisher) PublishRefundPendingManual(ctx context.Context, bookingId uuid.UUID, refundType string, refundAmount float64, syntheticRef string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "REFUND_PENDING_MANUAL",
		Data: map[string]interface{}{
			"booking_id":    bookingId,
			"refund_type":   refundType,
			"refund_amount": refundAmount,
			"synthetic_ref": syntheticRef,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish REFUND_PENDING_MANUAL event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishBookingStatusChanged emits BOOKING_STATUS_CHANGED
func (p *NatsPublisher) PublishBookingStatusChanged(ctx context.Context, bookingId uuid.UUID, oldStatus, newStatus, actor string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "BOOKING_STATUS_CHANGED",
		Data: map[string]interface{}{
			"booking_id": bookingId,
			"old_status": oldStatus,
			"new_status": newStatus,
			"actor":      actor,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish BOOKING_STATUS_CHANGED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishFeeConfigUpdated emits FEE_CONFIG_UPDATED
func (p *NatsPublisher) PublishFeeConfigUpdated(ctx context.Context, configId uuid.UUID, serviceRate, commissionRate, processingRate float64, actor string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "FEE_CONFIG_UPDATED",
		Data: map[string]interface{}{
			"config_id":       configId,
			"service_rate":    serviceRate,
			"commission_rate": commissionRate,
			"processing_rate": processingRate,
			"actor":           actor,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish FEE_CONFIG_UPDATED event", map[string]interface{}{"error": err.Error()})
	}
}
