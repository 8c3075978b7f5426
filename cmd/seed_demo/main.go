package main

import (
	"fmt"
	"log"

	"github.com/rangbot-io/rangbotgo/internal/config"
	"github.com/rangbot-io/rangbotgo/internal/database"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/utils"
)

func main() {
	fmt.Println("🌱 RangBot Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.StaffUser{},
		&models.PurchaseOrder{},
		&models.Member{},
		&models.RangBotDevice{},
		&models.ActivityLog{},
		&models.DetectionHistory{},
		&models.Notification{},
		&models.ProductInfo{},
		&models.FAQ{},
		&models.Article{},
		&models.ContactMessage{},
		&models.ForumUser{},
		&models.ForumPost{},
		&models.ForumComment{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var staffCount int64
	db.Model(&models.StaffUser{}).Count(&staffCount)
	if staffCount > 0 {
		fmt.Printf("⚠️  Database already has %d staff accounts. Re-seed anyway? (y/N): ", staffCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Staff accounts
	fmt.Println("👤 Creating staff accounts...")
	adminPass, _ := utils.HashPassword("admin1234")
	csPass, _ := utils.HashPassword("cs1234")
	staff := []models.StaffUser{
		{Username: "admin", Email: "admin@rangbot.io", FullName: "System Administrator", Password: adminPass, Role: models.StaffRoleAdmin, IsActive: true},
		{Username: "cs_anna", Email: "anna@rangbot.io", FullName: "Anna (Customer Service)", Password: csPass, Role: models.StaffRoleCS, IsActive: true},
	}
	for i := range staff {
		if err := db.Create(&staff[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create staff %s: %v", staff[i].Username, err)
		} else {
			fmt.Printf("   ✓ Created staff: %s (%s)\n", staff[i].Username, staff[i].Role)
		}
	}
	fmt.Println()

	// 2. Product listings
	fmt.Println("📦 Creating product listings...")
	products := []models.ProductInfo{
		{
			PackageType: models.PackageBasic,
			Name:        "RangBot Basic",
			Price:       1490000,
			Description: "Entry-level autonomous greenhouse rover for small strawberry farms.",
			Features:    "Autonomous patrol\nDisease detection camera\nMobile dashboard\n1 year warranty",
			IsActive:    true,
		},
		{
			PackageType: models.PackageProfessional,
			Name:        "RangBot Professional",
			Price:       2890000,
			Description: "Full sensor suite with environmental monitoring for commercial greenhouses.",
			Features:    "Everything in Basic\nTemperature and humidity sensors\nSoil moisture probes\nPriority support\n2 year warranty",
			IsActive:    true,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create product %s: %v", products[i].Name, err)
		} else {
			fmt.Printf("   ✓ Created product: %s (%.0f)\n", products[i].Name, products[i].Price)
		}
	}
	fmt.Println()

	// 3. Landing-page FAQs
	fmt.Println("❓ Creating FAQs...")
	faqs := []models.FAQ{
		{Question: "How do I get my Member ID?", Answer: "After our team verifies your purchase order, your Member ID is issued and sent to you. Use it to register on the member portal.", Order: 0, IsActive: true},
		{Question: "What is the difference between Basic and Professional?", Answer: "Professional adds environmental sensors (temperature, humidity, soil moisture) on top of the Basic patrol and detection features.", Order: 1, IsActive: true},
		{Question: "How long does delivery take?", Answer: "Devices ship within 2 weeks of order verification. Installation support is included.", Order: 2, IsActive: true},
	}
	for i := range faqs {
		if err := db.Create(&faqs[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create FAQ: %v", err)
		}
	}
	fmt.Printf("✅ Created %d FAQs\n\n", len(faqs))

	// 4. Sample pending order, ready to verify from the admin dashboard
	fmt.Println("🧾 Creating sample purchase order...")
	order := models.PurchaseOrder{
		CustomerName:    "Kim Farmer",
		CustomerEmail:   "kim@example.com",
		CustomerPhone:   "010-1234-5678",
		CustomerAddress: "42 Greenhouse Lane, Jinju",
		QtyBasic:        2,
		QtyProfessional: 1,
		TotalPrice:      2*products[0].Price + products[1].Price,
		PaymentMethod:   models.PaymentTransfer,
		Status:          models.OrderStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		log.Printf("⚠️  Failed to create sample order: %v", err)
	} else {
		fmt.Printf("   ✓ Created pending order #%d (%s)\n", order.ID, order.CustomerName)
	}
	fmt.Println()

	fmt.Println("✅ Demo data seeded successfully")
	fmt.Println("   Admin login:  admin / admin1234")
	fmt.Println("   CS login:     cs_anna / cs1234")
}
