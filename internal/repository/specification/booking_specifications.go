package specification

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBetween filters rows whose created_at falls inside [From, To].
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at <= ?", s.From, s.To)
}

// PaymentStatusIs filters bookings by payment status.
type PaymentStatusIs struct {
	Status string
}

func (s PaymentStatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", s.Status)
}

// BookingStatusIs filters bookings by booking status.
type BookingStatusIs struct {
	Status string
}

func (s BookingStatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("booking_status = ?", s.Status)
}

// HostOwnedBy filters rows belonging to a host.
type HostOwnedBy struct {
	HostID interface{}
}

func (s HostOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("host_id = ?", s.HostID)
}
