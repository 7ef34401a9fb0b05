package model

import (
	"time"

	"github.com/google/uuid"
)

type FeeConfig struct {
	Id                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceRate           float64   `gorm:"type:decimal(6,4);not null"`
	PartnerCommissionRate float64   `gorm:"type:decimal(6,4);not null"`
	ProcessingRate        float64   `gorm:"type:decimal(6,4);not null"`
	TaxRate               float64   `gorm:"type:decimal(6,4);default:0"`
	IsActive              bool      `gorm:"default:true;index"`
	CreatedBy             string    `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (FeeConfig) TableName() string {
	return "fee_configs"
}
