package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	PasswordHash     *string   `gorm:"type:varchar(255)"`
	Role             string    `gorm:"type:varchar(20);default:'guest';index"`
	Status           string    `gorm:"type:varchar(20);default:'active'"`
	PayoutAccountRef *string   `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type Space struct {
	Id        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HostId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	City      string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Space) TableName() string {
	return "spaces"
}
