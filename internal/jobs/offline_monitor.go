package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/config"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// OfflineMonitor periodically flags devices that stopped reporting sensor
// data and notifies their owners.
type OfflineMonitor struct {
	db           *gorm.DB
	offlineAfter time.Duration
	cron         *cron.Cron
}

// NewOfflineMonitor creates the monitor with the configured staleness window
func NewOfflineMonitor(db *gorm.DB, cfg config.JobsConfig) *OfflineMonitor {
	return &OfflineMonitor{
		db:           db,
		offlineAfter: cfg.OfflineAfter,
		cron:         cron.New(),
	}
}

// Start schedules the sweep and runs one immediately
func (m *OfflineMonitor) Start(spec string) error {
	if _, err := m.cron.AddFunc(spec, m.Sweep); err != nil {
		return fmt.Errorf("failed to schedule offline sweep: %w", err)
	}
	m.cron.Start()
	log.Printf("⏰ Offline device monitor started (%s, threshold %s)", spec, m.offlineAfter)

	go m.Sweep()
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish
func (m *OfflineMonitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// Sweep marks stale devices offline and writes an owner notification for
// each device that just flipped.
func (m *OfflineMonitor) Sweep() {
	cutoff := time.Now().UTC().Add(-m.offlineAfter)

	var stale []models.RangBotDevice
	err := m.db.
		Where("status <> ?", models.DeviceStatusOffline).
		Where("last_data_update IS NULL OR last_data_update < ?", cutoff).
		Find(&stale).Error
	if err != nil {
		log.Printf("❌ Offline sweep query failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	flipped := 0
	for _, device := range stale {
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.RangBotDevice{}).
				Where("id = ? AND status <> ?", device.ID, models.DeviceStatusOffline).
				Update("status", models.DeviceStatusOffline).Error; err != nil {
				return err
			}
			return tx.Create(&models.Notification{
				MemberID: device.OwnerID,
				Type:     models.NotifyDeviceOffline,
				Title:    device.DisplayName() + " is offline",
				Message: fmt.Sprintf("%s (%s) has not sent data for more than %s. Check its power and network connection.",
					device.DisplayName(), device.SerialNumber, m.offlineAfter),
			}).Error
		})
		if err != nil {
			log.Printf("❌ Failed to mark device %s offline: %v", device.SerialNumber, err)
			continue
		}
		flipped++
	}

	if flipped > 0 {
		log.Printf("⚠️ Offline sweep: %d device(s) marked offline", flipped)
	}
}
