package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypeArticle            = "article"
	ContentTypeSocialPost         = "social_post"
	ContentTypeProductDescription = "product_description"

	ContentLengthShort  = "short"
	ContentLengthMedium = "medium"
	ContentLengthLong   = "long"

	DefaultTone     = "professional"
	DefaultLanguage = "en"
)

func ValidContentType(t string) bool {
	switch t {
	case ContentTypeArticle, ContentTypeSocialPost, ContentTypeProductDescription:
		return true
	}
	return false
}

func ValidContentLength(l string) bool {
	switch l {
	case ContentLengthShort, ContentLengthMedium, ContentLengthLong:
		return true
	}
	return false
}

// GeneratedContent is one immutable generation record, deletable only by
// its owner.
type GeneratedContent struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentType   string         `gorm:"type:varchar(50);not null" json:"content_type"`
	Topic         string         `gorm:"type:text;not null" json:"topic"`
	ContentLength string         `gorm:"type:varchar(20);not null" json:"content_length"`
	Tone          string         `gorm:"type:varchar(50);not null;default:'professional'" json:"tone"`
	Language      string         `gorm:"type:varchar(10);not null;default:'en'" json:"language"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GeneratedContent) TableName() string {
	return "generated_content"
}

func (c *GeneratedContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return nil
}
