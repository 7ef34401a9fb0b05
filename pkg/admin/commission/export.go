package commission

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var exportHeader = []string{"Reference", "Host", "Space", "Booking Amount", "Platform Earnings", "Host Payout", "Status", "Date"}

// WriteCSV streams the report as CSV: a header, one line per row, and a
// trailing SUMMARY line carrying the aggregate totals.
func WriteCSV(w io.Writer, rows []ReportRow, summary *Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, r := range rows {
		payout := r.PayoutStatus
		if r.PayoutStatus == PayoutReportPaid {
			payout = amount(r.HostPayout)
		}
		record := []string{
			r.Reference,
			r.HostName,
			r.SpaceName,
			amount(r.BookingAmount),
			amount(r.PlatformEarnings),
			payout,
			r.Status,
			r.Date.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	summaryRecord := []string{
		"SUMMARY",
		fmt.Sprintf("%d transactions", summary.TotalTransactions),
		"",
		amount(summary.TotalRevenue),
		amount(summary.TotalNetEarnings),
		amount(summary.TotalHostPayouts),
		fmt.Sprintf("avg commission %.2f%%", summary.AverageCommissionRate*100),
		"",
	}
	if err := cw.Write(summaryRecord); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
