package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/entity"
	"space-admin-be/internal/mapper"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/specification"
	"space-admin-be/internal/repository/unitofwork"
	adminEvents "space-admin-be/pkg/admin/events"
	"space-admin-be/pkg/admin/fees"
	"space-admin-be/pkg/admin/ledger"
	"space-admin-be/pkg/admin/refund"
	"space-admin-be/pkg/processor"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// RefundNoticeTopic is the in-process bus topic carrying refund notices to
// the notification consumer.
const RefundNoticeTopic = "refund-notices"

var ErrBookingNotFound = errors.New("booking not found")

type IBookingService interface {
	GetBookings(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingListResponse, int64, error)
	GetBookingDetail(ctx context.Context, id uuid.UUID) (*dto.BookingDetailResponse, error)
	GetModifications(ctx context.Context, id uuid.UUID) ([]dto.BookingModificationResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingStatusRequest, actor string) error
	ExecuteRefund(ctx context.Context, id uuid.UUID, req *dto.ExecuteRefundRequest, actor string) (*dto.ExecuteRefundResponse, error)
}

type bookingService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *refund.Engine
	updater    *ledger.Updater
	settings   *fees.SettingsProvider
	gateway    processor.Gateway
	publisher  adminEvents.Publisher
	pubSub     *gochannel.GoChannel
	logger     logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	engine *refund.Engine,
	updater *ledger.Updater,
	settings *fees.SettingsProvider,
	gateway processor.Gateway,
	publisher adminEvents.Publisher,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory: uowFactory,
		engine:     engine,
		updater:    updater,
		settings:   settings,
		gateway:    gateway,
		publisher:  publisher,
		pubSub:     pubSub,
		logger:     log,
	}
}

func (s *bookingService) GetBookings(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingListResponse, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var filterSpecs []specification.Specification
	if req.PaymentStatus != "" {
		filterSpecs = append(filterSpecs, specification.PaymentStatusIs{Status: req.PaymentStatus})
	}
	if req.BookingStatus != "" {
		filterSpecs = append(filterSpecs, specification.BookingStatusIs{Status: req.BookingStatus})
	}
	if from, to, ok := parseRange(req.FromDate, req.ToDate); ok {
		filterSpecs = append(filterSpecs, specification.CreatedBetween{From: from, To: to})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.BookingRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	bookings, err := uow.BookingRepository().FindAllWithDetails(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	res := make([]dto.BookingListResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, mapper.ToBookingListResponse(b))
	}
	return res, total, nil
}

func (s *bookingService) GetBookingDetail(ctx context.Context, id uuid.UUID) (*dto.BookingDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BookingRepository().FindOneWithDetails(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	rates, err := s.settings.ActiveRates(ctx, false)
	if err != nil {
		return nil, err
	}

	// Older rows may predate fee capture; fill the gaps for display without
	// overwriting anything captured at transaction time.
	fees.Backfill(b, rates)

	var detail *processor.LedgerDetail
	if b.ProcessorPaymentRef != nil && *b.ProcessorPaymentRef != "" {
		if d, ledgerErr := s.gateway.GetChargeLedgerDetail(ctx, *b.ProcessorPaymentRef); ledgerErr == nil {
			detail = d
		}
	}
	net := fees.NetApplicationFee(b, rates, detail)
	if b.NetApplicationFee == nil {
		b.NetApplicationFee = &net.Amount
	}

	res := mapper.ToBookingDetailResponse(b, string(net.Source))
	return &res, nil
}

func (s *bookingService) GetModifications(ctx context.Context, id uuid.UUID) ([]dto.BookingModificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mods, err := uow.BookingRepository().ListModifications(ctx, id)
	if err != nil {
		return nil, err
	}
	res := make([]dto.BookingModificationResponse, 0, len(mods))
	for _, m := range mods {
		res = append(res, mapper.ToBookingModificationResponse(m))
	}
	return res, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingStatusRequest, actor string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}

	oldStatus := string(b.BookingStatus)
	if err := s.updater.ApplyStatusChange(ctx, uow, b, entity.BookingStatus(req.Status), req.Reason, actor); err != nil {
		return err
	}

	s.publisher.PublishBookingStatusChanged(ctx, b.Id, oldStatus, req.Status, actor)
	return nil
}

func (s *bookingService) ExecuteRefund(ctx context.Context, id uuid.UUID, req *dto.ExecuteRefundRequest, actor string) (*dto.ExecuteRefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.engine.Execute(ctx, uow, entity.RefundRequest{
		BookingId:       id,
		Type:            entity.RefundType(req.RefundType),
		RequestedAmount: req.Amount,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Actor:           actor,
	})
	if err != nil {
		return nil, err
	}

	s.publishRefundNotice(ctx, uow, id, req.RefundType, result)

	return &dto.ExecuteRefundResponse{
		State:                  string(result.State),
		RefundAmount:           result.RefundAmount,
		TransferReversalAmount: result.TransferReversalAmount,
		RefundRef:              result.RefundRef,
		ReversalRef:            result.ReversalRef,
		Warning:                result.Warning,
	}, nil
}

// publishRefundNotice hands the committed refund to the notification
// consumer. Failures are logged only; the financial mutation stands.
func (s *bookingService) publishRefundNotice(ctx context.Context, uow unitofwork.UnitOfWork, bookingId uuid.UUID, refundType string, result *refund.Result) {
	b, err := uow.BookingRepository().FindOneWithDetails(ctx, specification.ByID{ID: bookingId})
	if err != nil || b == nil {
		s.logger.Warn("BOOKING", "Could not load booking for refund notice", map[string]interface{}{
			"bookingId": bookingId.String(),
		})
		return
	}

	notice := dto.RefundNoticeMessage{
		BookingId:     b.Id,
		Reference:     b.Reference,
		HostId:        b.HostId,
		HostEmail:     b.Host.Email,
		HostName:      b.Host.FullName,
		RefundType:    refundType,
		RefundAmount:  result.RefundAmount,
		RefundRef:     result.RefundRef,
		PendingManual: result.Warning != "",
	}
	if result.TransferReversalAmount != nil {
		notice.ReversalAmount = *result.TransferReversalAmount
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		s.logger.Error("BOOKING", "Failed to marshal refund notice", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(RefundNoticeTopic, msg); err != nil {
		s.logger.Error("BOOKING", "Failed to publish refund notice", map[string]interface{}{"error": err.Error()})
	}
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, bool) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	// Make the range inclusive of the whole end day.
	return from, to.Add(24*time.Hour - time.Second), true
}
