package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Notifications ---

type NotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Total int64                  `json:"total"`
}

// RefundNoticeMessage travels the in-process bus from the booking service to
// the notification consumer after a refund has been committed.
type RefundNoticeMessage struct {
	BookingId      uuid.UUID `json:"booking_id"`
	Reference      string    `json:"reference"`
	HostId         uuid.UUID `json:"host_id"`
	HostEmail      string    `json:"host_email"`
	HostName       string    `json:"host_name"`
	RefundType     string    `json:"refund_type"`
	RefundAmount   float64   `json:"refund_amount"`
	ReversalAmount float64   `json:"reversal_amount"`
	RefundRef      string    `json:"refund_ref"`
	PendingManual  bool      `json:"pending_manual"`
}
