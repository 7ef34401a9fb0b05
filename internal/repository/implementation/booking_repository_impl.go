package implementation

import (
	"context"
	"encoding/json"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/model"
	"space-admin-be/internal/repository/contract"
	"space-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(booking)).Error
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var mb model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mb), nil
}

// FindOneWithDetails preloads the Host and Space relations for display and
// report rows.
func (r *bookingRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var mb model.Booking
	query := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Space")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	b := r.mapToEntity(&mb)
	r.attachRelations(b, &mb)
	return b, nil
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	for _, mb := range mbs {
		bookings = append(bookings, r.mapToEntity(mb))
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Space")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	for _, mb := range mbs {
		b := r.mapToEntity(mb)
		r.attachRelations(b, mb)
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *bookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", booking.Id).
		Updates(map[string]interface{}{
			"payment_status":                  string(booking.PaymentStatus),
			"booking_status":                  string(booking.BookingStatus),
			"refund_kind":                     string(booking.RefundKind),
			"refund_amount":                   booking.RefundAmount,
			"transfer_reversal_amount":        booking.TransferReversalAmount,
			"refund_reason":                   booking.RefundReason,
			"processor_refund_ref":            booking.ProcessorRefundRef,
			"processor_transfer_reversal_ref": booking.ProcessorTransferReversalRef,
			"net_application_fee":             booking.NetApplicationFee,
			"platform_earnings":               booking.PlatformEarnings,
			"service_fee":                     booking.ServiceFee,
			"processing_fee":                  booking.ProcessingFee,
			"commission_amount":               booking.CommissionAmount,
			"total_paid":                      booking.TotalPaid,
		}).Error
}

func (r *bookingRepositoryImpl) AppendModification(ctx context.Context, mod *entity.BookingModification) error {
	oldJSON, err := json.Marshal(mod.OldValue)
	if err != nil {
		return err
	}
	newJSON, err := json.Marshal(mod.NewValue)
	if err != nil {
		return err
	}

	row := &model.BookingModification{
		Id:        mod.Id,
		BookingId: mod.BookingId,
		Type:      mod.Type,
		OldValue:  datatypes.JSON(oldJSON),
		NewValue:  datatypes.JSON(newJSON),
		Reason:    mod.Reason,
		Actor:     mod.Actor,
		CreatedAt: mod.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *bookingRepositoryImpl) ListModifications(ctx context.Context, bookingId uuid.UUID) ([]*entity.BookingModification, error) {
	var rows []*model.BookingModification
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingId).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var mods []*entity.BookingModification
	for _, row := range rows {
		m := &entity.BookingModification{
			Id:        row.Id,
			BookingId: row.BookingId,
			Type:      row.Type,
			Reason:    row.Reason,
			Actor:     row.Actor,
			CreatedAt: row.CreatedAt,
		}
		// Snapshots are best-effort on read; a malformed row should not
		// break the audit listing.
		_ = json.Unmarshal(row.OldValue, &m.OldValue)
		_ = json.Unmarshal(row.NewValue, &m.NewValue)
		mods = append(mods, m)
	}
	return mods, nil
}

func (r *bookingRepositoryImpl) attachRelations(b *entity.Booking, mb *model.Booking) {
	b.Host = entity.User{
		Id:               mb.Host.Id,
		Email:            mb.Host.Email,
		FullName:         mb.Host.FullName,
		Role:             entity.UserRole(mb.Host.Role),
		PayoutAccountRef: mb.Host.PayoutAccountRef,
	}
	b.Space = entity.Space{
		Id:     mb.Space.Id,
		HostId: mb.Space.HostId,
		Name:   mb.Space.Name,
		City:   mb.Space.City,
	}
}

func (r *bookingRepositoryImpl) mapToEntity(mb *model.Booking) *entity.Booking {
	return &entity.Booking{
		Id:                           mb.Id,
		Reference:                    mb.Reference,
		SpaceId:                      mb.SpaceId,
		HostId:                       mb.HostId,
		GuestId:                      mb.GuestId,
		Currency:                     mb.Currency,
		BaseAmount:                   mb.BaseAmount,
		Price:                        mb.Price,
		ServiceFee:                   mb.ServiceFee,
		ProcessingFee:                mb.ProcessingFee,
		CommissionAmount:             mb.CommissionAmount,
		TotalPaid:                    mb.TotalPaid,
		PaymentStatus:                entity.PaymentStatus(mb.PaymentStatus),
		BookingStatus:                entity.BookingStatus(mb.BookingStatus),
		RefundKind:                   entity.RefundKind(mb.RefundKind),
		RefundAmount:                 mb.RefundAmount,
		TransferReversalAmount:       mb.TransferReversalAmount,
		RefundReason:                 mb.RefundReason,
		ProcessorPaymentRef:          mb.ProcessorPaymentRef,
		ProcessorTransferRef:         mb.ProcessorTransferRef,
		ProcessorRefundRef:           mb.ProcessorRefundRef,
		ProcessorTransferReversalRef: mb.ProcessorTransferReversalRef,
		NetApplicationFee:            mb.NetApplicationFee,
		PlatformEarnings:             mb.PlatformEarnings,
		InternationalCard:            mb.InternationalCard,
		StartDate:                    mb.StartDate,
		EndDate:                      mb.EndDate,
		CreatedAt:                    mb.CreatedAt,
		UpdatedAt:                    mb.UpdatedAt,
	}
}

func (r *bookingRepositoryImpl) mapToModel(b *entity.Booking) *model.Booking {
	return &model.Booking{
		Id:                           b.Id,
		Reference:                    b.Reference,
		SpaceId:                      b.SpaceId,
		HostId:                       b.HostId,
		GuestId:                      b.GuestId,
		Currency:                     b.Currency,
		BaseAmount:                   b.BaseAmount,
		Price:                        b.Price,
		ServiceFee:                   b.ServiceFee,
		ProcessingFee:                b.ProcessingFee,
		CommissionAmount:             b.CommissionAmount,
		TotalPaid:                    b.TotalPaid,
		PaymentStatus:                string(b.PaymentStatus),
		BookingStatus:                string(b.BookingStatus),
		RefundKind:                   string(b.RefundKind),
		RefundAmount:                 b.RefundAmount,
		TransferReversalAmount:       b.TransferReversalAmount,
		RefundReason:                 b.RefundReason,
		ProcessorPaymentRef:          b.ProcessorPaymentRef,
		ProcessorTransferRef:         b.ProcessorTransferRef,
		ProcessorRefundRef:           b.ProcessorRefundRef,
		ProcessorTransferReversalRef: b.ProcessorTransferReversalRef,
		NetApplicationFee:            b.NetApplicationFee,
		PlatformEarnings:             b.PlatformEarnings,
		InternationalCard:            b.InternationalCard,
		StartDate:                    b.StartDate,
		EndDate:                      b.EndDate,
	}
}
