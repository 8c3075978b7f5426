package provisioning

import (
	"fmt"
	"log"
	"os"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPort = 9876

var testDB *gorm.DB

// TestMain boots a throwaway embedded PostgreSQL for the whole package
func TestMain(m *testing.M) {
	runtimeDir, err := os.MkdirTemp("", "rangbot-pgtest-")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}

	cfg := embeddedpostgres.DefaultConfig().
		Port(testPort).
		Database("rangbot_test").
		RuntimePath(runtimeDir)
	if repoURL := os.Getenv("EMBEDDED_POSTGRES_BINARY_REPO_URL"); repoURL != "" {
		cfg = cfg.BinaryRepositoryURL(repoURL)
	}
	ep := embeddedpostgres.NewDatabase(cfg)

	if err := ep.Start(); err != nil {
		os.RemoveAll(runtimeDir)
		log.Fatalf("start embedded postgres: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=rangbot_test sslmode=disable", testPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = ep.Stop()
		os.RemoveAll(runtimeDir)
		log.Fatalf("connect: %v", err)
	}

	err = db.AutoMigrate(
		&models.StaffUser{},
		&models.PurchaseOrder{},
		&models.Member{},
		&models.RangBotDevice{},
		&models.ActivityLog{},
	)
	if err != nil {
		_ = ep.Stop()
		os.RemoveAll(runtimeDir)
		log.Fatalf("migrate: %v", err)
	}

	testDB = db
	code := m.Run()

	_ = ep.Stop()
	os.RemoveAll(runtimeDir)
	os.Exit(code)
}

// resetTables clears all provisioning-related tables between tests
func resetTables(t *testing.T) {
	t.Helper()
	err := testDB.Exec(
		"TRUNCATE TABLE activity_logs, rangbot_devices, members, purchase_orders, staff_users RESTART IDENTITY CASCADE",
	).Error
	require.NoError(t, err)
}

// seedStaff creates the admin account acting in a test
func seedStaff(t *testing.T) *models.StaffUser {
	t.Helper()
	staff := &models.StaffUser{
		Username: "admin",
		Email:    "admin@rangbot.io",
		Password: "x",
		FullName: "Test Admin",
		Role:     models.StaffRoleAdmin,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(staff).Error)
	return staff
}

// seedOrder creates a pending purchase order
func seedOrder(t *testing.T, qtyBasic, qtyPro int) *models.PurchaseOrder {
	t.Helper()
	order := &models.PurchaseOrder{
		CustomerName:    "Budi Santoso",
		CustomerEmail:   "budi@example.com",
		CustomerPhone:   "+62-812-0000-0001",
		CustomerAddress: "Jl. Stroberi 1, Bandung",
		QtyBasic:        qtyBasic,
		QtyProfessional: qtyPro,
		TotalPrice:      float64(qtyBasic)*15_000_000 + float64(qtyPro)*35_000_000,
		Status:          models.OrderStatusPending,
	}
	require.NoError(t, testDB.Create(order).Error)
	return order
}

// seedReorder creates a pending reorder referencing an existing member id
func seedReorder(t *testing.T, originalMemberID string, qtyBasic, qtyPro int) *models.PurchaseOrder {
	t.Helper()
	order := &models.PurchaseOrder{
		CustomerName:     "Budi Santoso",
		CustomerEmail:    "budi@example.com",
		CustomerPhone:    "+62-812-0000-0001",
		QtyBasic:         qtyBasic,
		QtyProfessional:  qtyPro,
		Status:           models.OrderStatusPending,
		IsReorder:        true,
		OriginalMemberID: &originalMemberID,
	}
	require.NoError(t, testDB.Create(order).Error)
	return order
}
