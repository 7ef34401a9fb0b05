package mapper

import (
	"space-admin-be/internal/dto"
	"space-admin-be/internal/entity"
)

func ToBookingListResponse(b *entity.Booking) dto.BookingListResponse {
	res := dto.BookingListResponse{
		Id:            b.Id,
		Reference:     b.Reference,
		HostName:      b.Host.FullName,
		SpaceName:     b.Space.Name,
		BaseAmount:    b.BaseAmount,
		PaymentStatus: string(b.PaymentStatus),
		BookingStatus: string(b.BookingStatus),
		RefundKind:    string(b.RefundKind),
		CreatedAt:     b.CreatedAt,
	}
	if b.TotalPaid != nil {
		res.TotalPaid = *b.TotalPaid
	}
	return res
}

func ToBookingDetailResponse(b *entity.Booking, netFeeSource string) dto.BookingDetailResponse {
	return dto.BookingDetailResponse{
		Id:        b.Id,
		Reference: b.Reference,
		Currency:  b.Currency,
		Host: dto.BookingHostInfo{
			Id:       b.Host.Id,
			Email:    b.Host.Email,
			FullName: b.Host.FullName,
		},
		Space: dto.BookingSpaceInfo{
			Id:   b.Space.Id,
			Name: b.Space.Name,
			City: b.Space.City,
		},
		BaseAmount:       b.BaseAmount,
		ServiceFee:       b.ServiceFee,
		ProcessingFee:    b.ProcessingFee,
		CommissionAmount: b.CommissionAmount,
		TotalPaid:        b.TotalPaid,

		PaymentStatus: string(b.PaymentStatus),
		BookingStatus: string(b.BookingStatus),

		RefundKind:             string(b.RefundKind),
		RefundAmount:           b.RefundAmount,
		TransferReversalAmount: b.TransferReversalAmount,
		RefundReason:           b.RefundReason,

		NetApplicationFee: b.NetApplicationFee,
		NetFeeSource:      netFeeSource,
		PlatformEarnings:  b.PlatformEarnings,

		ProcessorPaymentRef:          b.ProcessorPaymentRef,
		ProcessorRefundRef:           b.ProcessorRefundRef,
		ProcessorTransferReversalRef: b.ProcessorTransferReversalRef,

		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		CreatedAt: b.CreatedAt,
	}
}

func ToBookingModificationResponse(m *entity.BookingModification) dto.BookingModificationResponse {
	return dto.BookingModificationResponse{
		Id:        m.Id,
		Type:      m.Type,
		OldValue:  m.OldValue,
		NewValue:  m.NewValue,
		Reason:    m.Reason,
		Actor:     m.Actor,
		CreatedAt: m.CreatedAt,
	}
}
