package main

import (
	"log"
	"os"
	"time"

	"space-admin-be/internal/model"
	"space-admin-be/pkg/database"
	"space-admin-be/pkg/money"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Admin Account...")

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash admin password: %v", err)
	}

	admin := model.User{
		Email:        "admin@spaceadmin.local",
		FullName:     "Platform Admin",
		PasswordHash: strPtr(string(hash)),
		Role:         "admin",
		Status:       "active",
	}
	var existing model.User
	if err := db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", admin.Email)
	} else if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin: %v", err)
	} else {
		log.Printf("Created admin: %s", admin.Email)
	}

	log.Println("Seeding Fee Configuration...")

	var activeConfig model.FeeConfig
	if err := db.Where("is_active = ?", true).First(&activeConfig).Error; err != nil {
		cfg := model.FeeConfig{
			ServiceRate:           0.12,
			PartnerCommissionRate: 0.15,
			ProcessingRate:        0.0175,
			IsActive:              true,
			CreatedBy:             "seed",
		}
		if err := db.Create(&cfg).Error; err != nil {
			log.Printf("Error creating fee config: %v", err)
		} else {
			log.Println("Created default fee configuration")
		}
	} else {
		log.Println("Active fee configuration already exists, skipping...")
	}

	log.Println("Seeding Demo Hosts, Spaces and Bookings...")

	hosts := []model.User{
		{Email: "maya.host@example.com", FullName: "Maya Lindgren", Role: "host", Status: "active", PayoutAccountRef: strPtr("acct_demo_maya")},
		{Email: "jonas.host@example.com", FullName: "Jonas Petersen", Role: "host", Status: "active"},
	}
	for i := range hosts {
		var found model.User
		if err := db.Where("email = ?", hosts[i].Email).First(&found).Error; err == nil {
			hosts[i] = found
			log.Printf("Host '%s' already exists, skipping...", found.Email)
			continue
		}
		if err := db.Create(&hosts[i]).Error; err != nil {
			log.Printf("Error creating host '%s': %v", hosts[i].Email, err)
		}
	}

	guest := model.User{Email: "guest@example.com", FullName: "Demo Guest", Role: "guest", Status: "active"}
	var foundGuest model.User
	if err := db.Where("email = ?", guest.Email).First(&foundGuest).Error; err == nil {
		guest = foundGuest
	} else if err := db.Create(&guest).Error; err != nil {
		log.Printf("Error creating guest: %v", err)
	}

	spaces := []model.Space{
		{HostId: hosts[0].Id, Name: "Harbor Loft Studio", City: "Copenhagen"},
		{HostId: hosts[1].Id, Name: "Old Town Meeting Room", City: "Aarhus"},
	}
	for i := range spaces {
		var found model.Space
		if err := db.Where("host_id = ? AND name = ?", spaces[i].HostId, spaces[i].Name).First(&found).Error; err == nil {
			spaces[i] = found
			continue
		}
		if err := db.Create(&spaces[i]).Error; err != nil {
			log.Printf("Error creating space '%s': %v", spaces[i].Name, err)
		}
	}

	bookings := []model.Booking{
		demoBooking("BK-1001", spaces[0], guest.Id, 100.00, "paid", "confirmed", strPtr("ch_demo_1001"), strPtr("tr_demo_1001")),
		demoBooking("BK-1002", spaces[0], guest.Id, 250.00, "paid", "completed", strPtr("ch_demo_1002"), strPtr("tr_demo_1002")),
		demoBooking("BK-1003", spaces[1], guest.Id, 80.00, "paid", "confirmed", strPtr("ch_demo_1003"), nil),
		demoBooking("BK-1004", spaces[1], guest.Id, 60.00, "pending", "pending", nil, nil),
	}
	for _, b := range bookings {
		var found model.Booking
		if err := db.Where("reference = ?", b.Reference).First(&found).Error; err == nil {
			log.Printf("Booking '%s' already exists, skipping...", b.Reference)
			continue
		}
		if err := db.Create(&b).Error; err != nil {
			log.Printf("Error creating booking '%s': %v", b.Reference, err)
			continue
		}
		if b.PaymentStatus == "paid" && b.CommissionAmount != nil {
			entry := model.EarningsEntry{
				BookingId:   b.Id,
				HostId:      b.HostId,
				Amount:      money.Round2(b.BaseAmount - *b.CommissionAmount),
				Kind:        "payout",
				Description: "Host payout for booking " + b.Reference,
			}
			if err := db.Create(&entry).Error; err != nil {
				log.Printf("Error creating earnings entry for '%s': %v", b.Reference, err)
			}
		}
		log.Printf("Created booking: %s", b.Reference)
	}

	log.Println("✅ Seeding completed!")
}

func demoBooking(ref string, space model.Space, guestId uuid.UUID, base float64, paymentStatus, bookingStatus string, paymentRef, transferRef *string) model.Booking {
	serviceFee := money.Round2(base * 0.12)
	processingFee := money.Round2(base * 0.0175)
	commission := money.Round2(base * 0.15)
	total := money.Round2(base + serviceFee + processingFee)

	return model.Booking{
		Reference:            ref,
		SpaceId:              space.Id,
		HostId:               space.HostId,
		GuestId:              guestId,
		Currency:             "USD",
		BaseAmount:           base,
		ServiceFee:           f64Ptr(serviceFee),
		ProcessingFee:        f64Ptr(processingFee),
		CommissionAmount:     f64Ptr(commission),
		TotalPaid:            f64Ptr(total),
		PaymentStatus:        paymentStatus,
		BookingStatus:        bookingStatus,
		ProcessorPaymentRef:  paymentRef,
		ProcessorTransferRef: transferRef,
		StartDate:            time.Now().AddDate(0, 0, 7),
		EndDate:              time.Now().AddDate(0, 0, 8),
	}
}
