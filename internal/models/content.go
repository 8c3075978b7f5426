package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ProductInfo holds the landing-page package listings, editable by admins
type ProductInfo struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	PackageType PackageType `gorm:"uniqueIndex;not null" json:"packageType"`
	Name        string      `gorm:"not null" json:"name"`
	Price       float64     `gorm:"type:numeric(15,2)" json:"price"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	// One feature per line
	Features string `gorm:"type:text" json:"features,omitempty"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	UpdatedByID *uint      `json:"updatedById,omitempty"`
	UpdatedBy   *StaffUser `gorm:"foreignKey:UpdatedByID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for ProductInfo model
func (ProductInfo) TableName() string {
	return "product_infos"
}

// FeatureList splits the newline-separated feature text
func (p *ProductInfo) FeatureList() []string {
	var out []string
	for _, line := range strings.Split(p.Features, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FAQ is an admin/CS managed question-answer pair for the landing page
type FAQ struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Question string `gorm:"size:500;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
	// Display order, 0 = first
	Order    int  `gorm:"column:display_order;default:0" json:"order"`
	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for FAQ model
func (FAQ) TableName() string {
	return "faqs"
}

// Article is a daily tips / knowledge-base article
type Article struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsPublished bool   `gorm:"default:false;index" json:"isPublished"`

	CreatedByID *uint      `json:"createdById,omitempty"`
	CreatedBy   *StaffUser `gorm:"foreignKey:CreatedByID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Article model
func (Article) TableName() string {
	return "articles"
}
