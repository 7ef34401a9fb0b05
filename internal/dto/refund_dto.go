package dto

// --- Refund Execution ---

type ExecuteRefundRequest struct {
	RefundType string  `json:"refund_type" validate:"required,oneof=full partial split_50_50"`
	Amount     float64 `json:"amount,omitempty"`
	Reason     string  `json:"reason" validate:"required,min=5"`
	Notes      string  `json:"notes,omitempty"`
}

type ExecuteRefundResponse struct {
	State                  string   `json:"state"`
	RefundAmount           float64  `json:"refund_amount"`
	TransferReversalAmount *float64 `json:"transfer_reversal_amount,omitempty"`
	RefundRef              string   `json:"refund_ref"`
	ReversalRef            *string  `json:"reversal_ref,omitempty"`
	Warning                string   `json:"warning,omitempty"`
}
