package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DeviceStatus defines the operational state of a RangBot unit
type DeviceStatus string

const (
	DeviceStatusActive   DeviceStatus = "active"
	DeviceStatusInactive DeviceStatus = "inactive"
	DeviceStatusOffline  DeviceStatus = "offline" // Initial state after provisioning
)

// RangBotDevice represents one physical RangBot unit. Serial numbers
// (RBT-SN-01-<n>) are allocated globally during order verification.
type RangBotDevice struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SerialNumber string `gorm:"uniqueIndex;not null" json:"serialNumber"`

	OwnerID uint    `gorm:"not null;index" json:"ownerId"`
	Owner   *Member `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	PurchaseOrderID *uint          `gorm:"index" json:"purchaseOrderId,omitempty"`
	PurchaseOrder   *PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`

	DeviceName    string       `json:"deviceName,omitempty"`
	CoveredBlocks string       `json:"coveredBlocks,omitempty"` // e.g. "A, B"
	Status        DeviceStatus `gorm:"default:'offline';index" json:"status"`
	IsActive      bool         `gorm:"default:true" json:"isActive"`

	LastDataUpdate *time.Time `json:"lastDataUpdate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for RangBotDevice model
func (RangBotDevice) TableName() string {
	return "rangbot_devices"
}

// DisplayName returns the device name, falling back to the serial number
func (d *RangBotDevice) DisplayName() string {
	if d.DeviceName != "" {
		return d.DeviceName
	}
	return d.SerialNumber
}

// BlocksDisplay returns a human readable description of the covered blocks
func (d *RangBotDevice) BlocksDisplay() string {
	if d.CoveredBlocks == "" {
		return "Blocks not assigned"
	}
	blocks := strings.Split(d.CoveredBlocks, ",")
	for i := range blocks {
		blocks[i] = strings.TrimSpace(blocks[i])
	}
	return fmt.Sprintf("Covers blocks %s", strings.Join(blocks, ", "))
}
