package models

import (
	"time"

	"gorm.io/gorm"
)

// Member represents a customer account entitled to own RangBot devices.
// Member IDs (MBR-YYYY-NNNNN) are assigned when staff verifies a purchase
// order; the customer later self-registers credentials against that ID.
type Member struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	MemberID string  `gorm:"uniqueIndex;not null" json:"memberId"`
	Username *string `gorm:"uniqueIndex" json:"username,omitempty"`
	FullName string  `gorm:"not null" json:"fullName"`
	Email    string  `gorm:"not null;index" json:"email"`
	Phone    string  `json:"phone,omitempty"`
	// Nullable: empty until self-service registration completes
	Password     *string    `json:"-"`
	IsRegistered bool       `gorm:"default:false" json:"isRegistered"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`

	PurchaseOrderID *uint          `gorm:"index" json:"purchaseOrderId,omitempty"`
	PurchaseOrder   *PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`

	Devices []RangBotDevice `gorm:"foreignKey:OwnerID" json:"devices,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Member model
func (Member) TableName() string {
	return "members"
}
