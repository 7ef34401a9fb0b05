package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleHost  UserRole = "host"
	UserRoleGuest UserRole = "guest"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash *string
	Role         UserRole
	Status       UserStatus
	// PayoutAccountRef is the host's connected account at the payment
	// processor; empty for guests and admins.
	PayoutAccountRef *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Space struct {
	Id        uuid.UUID
	HostId    uuid.UUID
	Name      string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
