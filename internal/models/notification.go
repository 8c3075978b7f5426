package models

import (
	"time"
)

// NotificationType tags member notifications
type NotificationType string

const (
	NotifySensorUpdate  NotificationType = "sensor_update"
	NotifyDetectionNew  NotificationType = "detection_new"
	NotifySensorWarning NotificationType = "sensor_warning"
	NotifyDeviceOffline NotificationType = "device_offline"
	NotifyDeviceAdded   NotificationType = "device_added"
)

// Notification is an in-app message shown on the member dashboard
type Notification struct {
	ID       uint             `gorm:"primaryKey" json:"id"`
	MemberID uint             `gorm:"not null;index" json:"memberId"`
	Member   *Member          `gorm:"foreignKey:MemberID" json:"-"`
	Type     NotificationType `gorm:"not null" json:"type"`
	Title    string           `gorm:"not null" json:"title"`
	Message  string           `gorm:"type:text;not null" json:"message"`
	IsRead   bool             `gorm:"default:false;index" json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
