package dto

import "time"

// --- Commission Reports ---

type ReportRangeRequest struct {
	FromDate string `query:"from_date"`
	ToDate   string `query:"to_date"`
}

type CommissionSummaryResponse struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalCommission       float64 `json:"total_commission"`
	TotalNetEarnings      float64 `json:"total_net_earnings"`
	TotalHostPayouts      float64 `json:"total_host_payouts"`
	AverageCommissionRate float64 `json:"average_commission_rate"`
	TotalTransactions     int     `json:"total_transactions"`
}

type CommissionReportRowResponse struct {
	Reference        string    `json:"reference"`
	HostName         string    `json:"host_name"`
	SpaceName        string    `json:"space_name"`
	BookingAmount    float64   `json:"booking_amount"`
	PlatformEarnings float64   `json:"platform_earnings"`
	HostPayout       float64   `json:"host_payout"`
	PayoutStatus     string    `json:"payout_status"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
}

type CommissionReportResponse struct {
	Rows    []CommissionReportRowResponse `json:"rows"`
	Summary CommissionSummaryResponse     `json:"summary"`
}
