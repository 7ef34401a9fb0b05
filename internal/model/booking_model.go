package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	Id        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	SpaceId   uuid.UUID `gorm:"type:uuid;not null;index"`
	HostId    uuid.UUID `gorm:"type:uuid;not null;index"`
	GuestId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency  string    `gorm:"type:varchar(3);default:'USD'"`

	BaseAmount       float64  `gorm:"type:decimal(10,2);not null"`
	Price            *float64 `gorm:"type:decimal(10,2)"`
	ServiceFee       *float64 `gorm:"type:decimal(10,2)"`
	ProcessingFee    *float64 `gorm:"type:decimal(10,2)"`
	CommissionAmount *float64 `gorm:"type:decimal(10,2)"`
	TotalPaid        *float64 `gorm:"type:decimal(10,2)"`

	PaymentStatus string `gorm:"type:varchar(20);default:'pending';index"`
	BookingStatus string `gorm:"type:varchar(20);default:'pending';index"`

	RefundKind             string   `gorm:"type:varchar(20);default:''"`
	RefundAmount           *float64 `gorm:"type:decimal(10,2)"`
	TransferReversalAmount *float64 `gorm:"type:decimal(10,2)"`
	RefundReason           string   `gorm:"type:text"`

	ProcessorPaymentRef          *string `gorm:"type:varchar(255);index"`
	ProcessorTransferRef         *string `gorm:"type:varchar(255)"`
	ProcessorRefundRef           *string `gorm:"type:varchar(255)"`
	ProcessorTransferReversalRef *string `gorm:"type:varchar(255)"`

	NetApplicationFee *float64 `gorm:"type:decimal(10,2)"`
	PlatformEarnings  *float64 `gorm:"type:decimal(10,2)"`
	InternationalCard bool     `gorm:"default:false"`

	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relations
	Host  User  `gorm:"foreignKey:HostId"`
	Space Space `gorm:"foreignKey:SpaceId"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingModification is the append-only audit trail of operator changes.
// OldValue/NewValue hold JSONB snapshots of the touched fields.
type BookingModification struct {
	Id        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type      string         `gorm:"type:varchar(30);not null"` // status_change, refund
	OldValue  datatypes.JSON `gorm:"type:jsonb"`
	NewValue  datatypes.JSON `gorm:"type:jsonb"`
	Reason    string         `gorm:"type:text"`
	Actor     string         `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

func (BookingModification) TableName() string {
	return "booking_modifications"
}
