package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeeConfig is an immutable snapshot of the platform's rate configuration.
// Exactly one config is active at a time; superseded rows are kept for audit
// and never reactivated.
type FeeConfig struct {
	Id                    uuid.UUID
	ServiceRate           float64
	PartnerCommissionRate float64
	ProcessingRate        float64
	TaxRate               float64
	IsActive              bool
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
