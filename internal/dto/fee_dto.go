package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Fee Settings ---

type FeeSettingsResponse struct {
	Id                    uuid.UUID `json:"id"`
	ServiceRate           float64   `json:"service_rate"`
	PartnerCommissionRate float64   `json:"partner_commission_rate"`
	ProcessingRate        float64   `json:"processing_rate"`
	TaxRate               float64   `json:"tax_rate"`
	IsDefault             bool      `json:"is_default"`
	CreatedBy             string    `json:"created_by,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type UpdateFeeSettingsRequest struct {
	ServiceRate           float64 `json:"service_rate" validate:"gte=0,lte=1"`
	PartnerCommissionRate float64 `json:"partner_commission_rate" validate:"gte=0,lte=1"`
	ProcessingRate        float64 `json:"processing_rate" validate:"gte=0,lte=1"`
	TaxRate               float64 `json:"tax_rate" validate:"gte=0,lte=1"`
}

// --- Fee Preview ---

type FeePreviewRequest struct {
	BaseAmount float64 `query:"base_amount" validate:"required,gt=0"`
}

type FeePreviewResponse struct {
	BaseAmount        float64 `json:"base_amount"`
	ServiceFee        float64 `json:"service_fee"`
	ProcessingFee     float64 `json:"processing_fee"`
	PartnerCommission float64 `json:"partner_commission"`
	TotalPaid         float64 `json:"total_paid"`
	PartnerPayout     float64 `json:"partner_payout"`
}
