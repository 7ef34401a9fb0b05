package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/pkg/mailer"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process refund-notice bus: it persists an
// operator notification and emails the affected host. Both are best-effort;
// the refund itself committed before the notice was published.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	notifier     *NotificationService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	notifier *NotificationService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		uowFactory:   uowFactory,
		emailService: emailService,
		notifier:     notifier,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, RefundNoticeTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var notice dto.RefundNoticeMessage
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal refund notice", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages are never retriable
		return
	}

	cs.notifyOperators(ctx, &notice)
	cs.emailHost(&notice)
	msg.Ack()
}

// notifyOperators writes a notification row for every admin account.
func (cs *consumerService) notifyOperators(ctx context.Context, notice *dto.RefundNoticeMessage) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	admins, err := uow.UserRepository().FindAll(ctx, specification.RoleIs{Role: "admin"})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load admin users for notification", map[string]interface{}{"error": err.Error()})
		return
	}

	typeCode := "REFUND_EXECUTED"
	title := fmt.Sprintf("Refund processed: %s", notice.Reference)
	body := fmt.Sprintf("A %s refund of %.2f was processed for booking %s.", notice.RefundType, notice.RefundAmount, notice.Reference)
	if notice.PendingManual {
		typeCode = "REFUND_PENDING_MANUAL"
		title = fmt.Sprintf("Refund needs reconciliation: %s", notice.Reference)
		body = fmt.Sprintf("A %s refund of %.2f on booking %s was recorded without processor confirmation (ref %s).",
			notice.RefundType, notice.RefundAmount, notice.Reference, notice.RefundRef)
	}

	metadata := map[string]interface{}{
		"booking_id":  notice.BookingId.String(),
		"refund_type": notice.RefundType,
		"refund_ref":  notice.RefundRef,
	}

	for _, admin := range admins {
		if err := cs.notifier.Create(ctx, admin.Id, typeCode, title, body, metadata); err != nil {
			cs.logger.Error("CONSUMER", "Failed to persist refund notification", map[string]interface{}{
				"userId": admin.Id.String(),
				"error":  err.Error(),
			})
		}
	}
}

func (cs *consumerService) emailHost(notice *dto.RefundNoticeMessage) {
	if notice.HostEmail == "" {
		return
	}

	var err error
	if notice.PendingManual {
		opsEmail := os.Getenv("OPS_ALERT_EMAIL")
		if opsEmail == "" {
			opsEmail = notice.HostEmail
		}
		err = cs.emailService.SendPendingManualAlert(opsEmail, notice.Reference, notice.RefundRef, notice.RefundAmount)
	} else {
		err = cs.emailService.SendRefundNotice(notice.HostEmail, notice.HostName, notice.Reference, notice.RefundType, notice.RefundAmount, notice.ReversalAmount)
	}
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to send refund email", map[string]interface{}{
			"reference": notice.Reference,
			"error":     err.Error(),
		})
	}
}
