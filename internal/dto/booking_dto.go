package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Booking Listing ---

type BookingListRequest struct {
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	PaymentStatus string `query:"payment_status"`
	BookingStatus string `query:"booking_status"`
	FromDate      string `query:"from_date"`
	ToDate        string `query:"to_date"`
}

type BookingListResponse struct {
	Id            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	HostName      string    `json:"host_name"`
	SpaceName     string    `json:"space_name"`
	BaseAmount    float64   `json:"base_amount"`
	TotalPaid     float64   `json:"total_paid"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	RefundKind    string    `json:"refund_kind,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Booking Detail ---

type BookingDetailResponse struct {
	Id        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Currency  string    `json:"currency"`

	Host  BookingHostInfo  `json:"host"`
	Space BookingSpaceInfo `json:"space"`

	BaseAmount       float64  `json:"base_amount"`
	ServiceFee       *float64 `json:"service_fee,omitempty"`
	ProcessingFee    *float64 `json:"processing_fee,omitempty"`
	CommissionAmount *float64 `json:"commission_amount,omitempty"`
	TotalPaid        *float64 `json:"total_paid,omitempty"`

	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`

	RefundKind             string   `json:"refund_kind,omitempty"`
	RefundAmount           *float64 `json:"refund_amount,omitempty"`
	TransferReversalAmount *float64 `json:"transfer_reversal_amount,omitempty"`
	RefundReason           string   `json:"refund_reason,omitempty"`

	NetApplicationFee *float64 `json:"net_application_fee,omitempty"`
	NetFeeSource      string   `json:"net_fee_source,omitempty"`
	PlatformEarnings  *float64 `json:"platform_earnings,omitempty"`

	ProcessorPaymentRef          *string `json:"processor_payment_ref,omitempty"`
	ProcessorRefundRef           *string `json:"processor_refund_ref,omitempty"`
	ProcessorTransferReversalRef *string `json:"processor_transfer_reversal_ref,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingHostInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type BookingSpaceInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

// --- Status Change ---

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed active completed cancelled"`
	Reason string `json:"reason,omitempty"`
}

// --- Modification History ---

type BookingModificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	OldValue  map[string]interface{} `json:"old_value"`
	NewValue  map[string]interface{} `json:"new_value"`
	Reason    string                 `json:"reason,omitempty"`
	Actor     string                 `json:"actor"`
	CreatedAt time.Time              `json:"created_at"`
}
