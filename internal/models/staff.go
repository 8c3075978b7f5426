package models

import (
	"time"

	"gorm.io/gorm"
)

// StaffRole defines the kind of staff account
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin" // full access incl. order verification
	StaffRoleCS    StaffRole = "cs"    // customer service: read-mostly moderation tools
)

// StaffUser represents an admin or customer-service account
// Convention: Go PascalCase -> DB snake_case (GORM auto) -> JSON camelCase
type StaffUser struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FullName  string     `json:"fullName"`
	Role      StaffRole  `gorm:"default:'cs';index" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for StaffUser model
func (StaffUser) TableName() string {
	return "staff_users"
}

// IsAdmin returns true for admin accounts
func (s *StaffUser) IsAdmin() bool {
	return s.Role == StaffRoleAdmin
}
