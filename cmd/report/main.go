package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"space-admin-be/internal/config"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/unitofwork"
	"space-admin-be/pkg/admin/commission"
	"space-admin-be/pkg/admin/fees"
	"space-admin-be/pkg/database"
	"space-admin-be/pkg/processor"

	"github.com/fatih/color"
)

// Commission report CLI. Prints the reconciled totals for a date range and
// optionally writes the per-booking rows to a CSV file.
func main() {
	fromFlag := flag.String("from", "", "range start (YYYY-MM-DD), defaults to 30 days ago")
	toFlag := flag.String("to", "", "range end (YYYY-MM-DD), defaults to today")
	csvPath := flag.String("csv", "", "write per-booking rows to this CSV file")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	from, to, err := parseRange(*fromFlag, *toFlag)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewIsolatedLogger("logs/report.log")
	gateway := processor.NewStripeGateway(cfg.Keys.StripeSecretKey)
	settings := fees.NewSettingsProvider(uowFactory, sysLogger)
	aggregator := commission.NewAggregator(sysLogger, gateway, settings)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	rows, summary, err := aggregator.Report(ctx, uow, from, to)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("📊 Commission Report %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))

	color.Yellow("Totals")
	fmt.Printf("  Transactions:       %d\n", summary.TotalTransactions)
	fmt.Printf("  Total Revenue:      %.2f\n", summary.TotalRevenue)
	fmt.Printf("  Total Commission:   %.2f\n", summary.TotalCommission)
	fmt.Printf("  Net Earnings:       %.2f\n", summary.TotalNetEarnings)
	fmt.Printf("  Host Payouts:       %.2f\n", summary.TotalHostPayouts)
	fmt.Printf("  Avg Commission:     %.2f%%\n", summary.AverageCommissionRate*100)

	color.Yellow("\nBookings")
	for _, row := range rows {
		payout := row.PayoutStatus
		if row.PayoutStatus == commission.PayoutReportPaid {
			payout = fmt.Sprintf("%.2f", row.HostPayout)
		}
		fmt.Printf("  %-12s %-24s %10.2f %12.2f %12s %s\n",
			row.Reference, row.SpaceName, row.BookingAmount, row.PlatformEarnings, payout, row.Status)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			color.Red("Failed to create CSV file: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := commission.WriteCSV(f, rows, summary); err != nil {
			color.Red("Failed to write CSV: %v", err)
			os.Exit(1)
		}
		color.Green("\nCSV written to %s", *csvPath)
	}
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		if from, err = time.Parse("2006-01-02", fromStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date: %w", err)
		}
		to = to.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end precedes range start")
	}
	return from, to, nil
}
