package models

import (
	"time"
)

// DetectionType distinguishes automatic device uploads from manual checks
type DetectionType string

const (
	DetectionAuto   DetectionType = "auto"
	DetectionManual DetectionType = "manual"
)

// DetectionHistory records one strawberry disease detection event for a device
type DetectionHistory struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	DeviceID uint           `gorm:"not null;index" json:"deviceId"`
	Device   *RangBotDevice `gorm:"foreignKey:DeviceID" json:"-"`

	ImageURL        string        `gorm:"not null" json:"imageUrl"`
	DiseaseDetected string        `json:"diseaseDetected,omitempty"`
	Confidence      *float64      `json:"confidence,omitempty"`
	Location        string        `json:"location,omitempty"`
	Type            DetectionType `gorm:"default:'auto'" json:"type"`
	// Free-text advisory produced by the AI analysis, when enabled
	Analysis string `gorm:"type:text" json:"analysis,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for DetectionHistory model
func (DetectionHistory) TableName() string {
	return "detection_histories"
}
