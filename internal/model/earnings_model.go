package model

import (
	"time"

	"github.com/google/uuid"
)

// EarningsEntry rows are append-only; refunds insert compensating negative
// rows instead of updating existing ones.
type EarningsEntry struct {
	Id          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingId   uuid.UUID `gorm:"type:uuid;not null;index"`
	HostId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	Kind        string    `gorm:"type:varchar(30);not null"` // payout, refund_reversal
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (EarningsEntry) TableName() string {
	return "earnings_entries"
}
