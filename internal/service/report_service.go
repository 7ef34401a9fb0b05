package service

import (
	"context"
	"errors"
	"io"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/repository/unitofwork"
	"space-admin-be/pkg/admin/commission"
)

var ErrInvalidDateRange = errors.New("invalid date range")

type IReportService interface {
	GetSummary(ctx context.Context, req *dto.ReportRangeRequest) (*dto.CommissionSummaryResponse, error)
	GetReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.CommissionReportResponse, error)
	ExportCSV(ctx context.Context, req *dto.ReportRangeRequest, w io.Writer) error
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *commission.Aggregator
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, aggregator *commission.Aggregator) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *reportService) GetSummary(ctx context.Context, req *dto.ReportRangeRequest) (*dto.CommissionSummaryResponse, error) {
	from, to, err := reportRange(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	summary, err := s.aggregator.Summarize(ctx, uow, from, to)
	if err != nil {
		return nil, err
	}
	res := toSummaryResponse(summary)
	return &res, nil
}

func (s *reportService) GetReport(ctx context.Context, req *dto.ReportRangeRequest) (*dto.CommissionReportResponse, error) {
	from, to, err := reportRange(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, summary, err := s.aggregator.Report(ctx, uow, from, to)
	if err != nil {
		return nil, err
	}

	res := &dto.CommissionReportResponse{
		Rows:    make([]dto.CommissionReportRowResponse, 0, len(rows)),
		Summary: toSummaryResponse(summary),
	}
	for _, r := range rows {
		res.Rows = append(res.Rows, dto.CommissionReportRowResponse{
			Reference:        r.Reference,
			HostName:         r.HostName,
			SpaceName:        r.SpaceName,
			BookingAmount:    r.BookingAmount,
			PlatformEarnings: r.PlatformEarnings,
			HostPayout:       r.HostPayout,
			PayoutStatus:     r.PayoutStatus,
			Status:           r.Status,
			Date:             r.Date,
		})
	}
	return res, nil
}

func (s *reportService) ExportCSV(ctx context.Context, req *dto.ReportRangeRequest, w io.Writer) error {
	from, to, err := reportRange(req)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, summary, err := s.aggregator.Report(ctx, uow, from, to)
	if err != nil {
		return err
	}
	return commission.WriteCSV(w, rows, summary)
}

// reportRange parses the requested window, defaulting to the last 30 days.
func reportRange(req *dto.ReportRangeRequest) (time.Time, time.Time, error) {
	if req.FromDate == "" && req.ToDate == "" {
		now := time.Now()
		return now.AddDate(0, 0, -30), now, nil
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to.Add(24*time.Hour - time.Second), nil
}

func toSummaryResponse(s *commission.Summary) dto.CommissionSummaryResponse {
	return dto.CommissionSummaryResponse{
		TotalRevenue:          s.TotalRevenue,
		TotalCommission:       s.TotalCommission,
		TotalNetEarnings:      s.TotalNetEarnings,
		TotalHostPayouts:      s.TotalHostPayouts,
		AverageCommissionRate: s.AverageCommissionRate,
		TotalTransactions:     s.TotalTransactions,
	}
}
