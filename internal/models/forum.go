package models

import (
	"time"
)

// ForumRole describes who a forum participant is
type ForumRole string

const (
	ForumRoleFarmer     ForumRole = "farmer"
	ForumRoleStudent    ForumRole = "student"
	ForumRoleResearcher ForumRole = "researcher"
	ForumRoleOther      ForumRole = "other"
)

// ForumCategory groups forum posts
type ForumCategory string

const (
	ForumCategoryDisease    ForumCategory = "disease"
	ForumCategoryCare       ForumCategory = "care"
	ForumCategoryExperience ForumCategory = "experience"
	ForumCategoryTechnical  ForumCategory = "technical"
	ForumCategoryGeneral    ForumCategory = "general"
)

// ForumUser is a lightweight email-identified forum participant
type ForumUser struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Name      string     `gorm:"not null" json:"name"`
	Role      ForumRole  `gorm:"default:'farmer'" json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName specifies the table name for ForumUser model
func (ForumUser) TableName() string {
	return "forum_users"
}

// ForumPost is a discussion thread starter
type ForumPost struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	Title    string        `gorm:"size:200;not null" json:"title"`
	Content  string        `gorm:"type:text;not null" json:"content"`
	AuthorID uint          `gorm:"not null;index" json:"authorId"`
	Author   *ForumUser    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category ForumCategory `gorm:"default:'general';index" json:"category"`
	Views    int           `gorm:"default:0" json:"views"`

	Comments []ForumComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for ForumPost model
func (ForumPost) TableName() string {
	return "forum_posts"
}

// Excerpt returns a shortened preview of the post content
func (p *ForumPost) Excerpt(length int) string {
	if len(p.Content) <= length {
		return p.Content
	}
	return p.Content[:length] + "..."
}

// ForumComment is a reply on a forum post
type ForumComment struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	PostID   uint       `gorm:"not null;index" json:"postId"`
	AuthorID uint       `gorm:"not null;index" json:"authorId"`
	Author   *ForumUser `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string     `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for ForumComment model
func (ForumComment) TableName() string {
	return "forum_comments"
}
