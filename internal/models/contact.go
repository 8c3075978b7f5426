package models

import (
	"time"
)

// MessageStatus tracks the CS workflow state of a contact message
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusArchived MessageStatus = "archived"
)

// ContactMessage is a support request from the public landing page
type ContactMessage struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Subject string        `gorm:"size:200;not null" json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  MessageStatus `gorm:"default:'new';index" json:"status"`

	RepliedByID  *uint      `json:"repliedById,omitempty"`
	RepliedBy    *StaffUser `gorm:"foreignKey:RepliedByID" json:"-"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
	ReplyMessage string     `gorm:"type:text" json:"replyMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}
