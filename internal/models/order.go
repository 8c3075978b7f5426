package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus defines possible purchase order statuses
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"  // Awaiting staff verification
	OrderStatusVerified OrderStatus = "verified" // Accepted; member and devices provisioned
	OrderStatusRejected OrderStatus = "rejected" // Declined by staff
)

// PackageType defines the RangBot package kinds sold on the landing page
type PackageType string

const (
	PackageBasic        PackageType = "basic"
	PackageProfessional PackageType = "professional"
)

// PaymentMethod values accepted by the purchase form
const (
	PaymentTransfer    = "transfer"
	PaymentCredit      = "credit"
	PaymentInstallment = "installment"
	PaymentLeasing     = "leasing"
)

// PurchaseOrder represents one customer order from the public purchase form
type PurchaseOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Customer information
	CustomerName    string `gorm:"not null;index" json:"customerName"`
	CustomerEmail   string `gorm:"not null;index" json:"customerEmail"`
	CustomerPhone   string `gorm:"not null" json:"customerPhone"`
	CustomerAddress string `gorm:"type:text" json:"customerAddress"`
	CompanyName     string `json:"companyName,omitempty"`

	// Order details
	QtyBasic        int     `gorm:"default:0" json:"qtyBasic"`
	QtyProfessional int     `gorm:"default:0" json:"qtyProfessional"`
	TotalPrice      float64 `gorm:"type:numeric(15,2)" json:"totalPrice"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`

	// Status & tracking. MemberID is assigned exactly once, during verification.
	Status           OrderStatus `gorm:"default:'pending';index" json:"status"`
	MemberID         *string     `gorm:"uniqueIndex" json:"memberId,omitempty"`
	IsReorder        bool        `gorm:"default:false" json:"isReorder"`
	OriginalMemberID *string     `json:"originalMemberId,omitempty"`

	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	VerifiedByID *uint      `gorm:"index" json:"verifiedById,omitempty"`
	VerifiedBy   *StaffUser `gorm:"foreignKey:VerifiedByID" json:"verifiedBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// TotalUnits returns the number of devices this order buys
func (o *PurchaseOrder) TotalUnits() int {
	return o.QtyBasic + o.QtyProfessional
}

// IsVerified reports whether the order has been accepted
func (o *PurchaseOrder) IsVerified() bool {
	return o.Status == OrderStatusVerified
}

// OrderNumber returns the display order number, e.g. ORD-20250115-093055-00042
func (o *PurchaseOrder) OrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", o.CreatedAt.Format("20060102-150405"), o.ID)
}
