package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionType tags an activity log entry
type ActionType string

const (
	ActionOrderCreated      ActionType = "order_created"
	ActionOrderVerified     ActionType = "order_verified"
	ActionOrderRejected     ActionType = "order_rejected"
	ActionMemberCreated     ActionType = "member_created"
	ActionMemberRegistered  ActionType = "member_registered"
	ActionMemberUpdated     ActionType = "member_updated"
	ActionMemberActivated   ActionType = "member_activated"
	ActionMemberDeactivated ActionType = "member_deactivated"
	ActionSerialCreated     ActionType = "serial_created"
	ActionSerialUpdated     ActionType = "serial_updated"
	ActionProductUpdated    ActionType = "product_updated"
	ActionStaffCreated      ActionType = "staff_created"
	ActionStaffDeactivated  ActionType = "staff_deactivated"
	ActionSystemError       ActionType = "system_error"
)

// KnownActionTypes enumerates every valid action type
var KnownActionTypes = map[ActionType]bool{
	ActionOrderCreated:      true,
	ActionOrderVerified:     true,
	ActionOrderRejected:     true,
	ActionMemberCreated:     true,
	ActionMemberRegistered:  true,
	ActionMemberUpdated:     true,
	ActionMemberActivated:   true,
	ActionMemberDeactivated: true,
	ActionSerialCreated:     true,
	ActionSerialUpdated:     true,
	ActionProductUpdated:    true,
	ActionStaffCreated:      true,
	ActionStaffDeactivated:  true,
	ActionSystemError:       true,
}

// ActivityLog is an immutable audit record of a staff or system action.
// Append-only: nothing in the application updates these rows; admins may
// bulk-purge old entries as housekeeping.
type ActivityLog struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	ActionType  ActionType `gorm:"not null;index" json:"actionType"`
	Description string     `gorm:"type:text;not null" json:"description"`

	PerformedByID *uint      `gorm:"index" json:"performedById,omitempty"`
	PerformedBy   *StaffUser `gorm:"foreignKey:PerformedByID" json:"performedBy,omitempty"`

	RelatedOrderID  *uint          `gorm:"index" json:"relatedOrderId,omitempty"`
	RelatedOrder    *PurchaseOrder `gorm:"foreignKey:RelatedOrderID" json:"-"`
	RelatedMemberID *uint          `gorm:"index" json:"relatedMemberId,omitempty"`
	RelatedMember   *Member        `gorm:"foreignKey:RelatedMemberID" json:"-"`
	RelatedDeviceID *uint          `gorm:"index" json:"relatedDeviceId,omitempty"`
	RelatedDevice   *RangBotDevice `gorm:"foreignKey:RelatedDeviceID" json:"-"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// BeforeCreate assigns a uuid primary key
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
