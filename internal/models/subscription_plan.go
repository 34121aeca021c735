package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionPlan bounds how many generations a user may run per day and
// per month. A limit of 0 blocks generation entirely; a negative limit
// means unlimited.
type SubscriptionPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	DisplayName  string    `gorm:"type:varchar(100);not null" json:"display_name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        int       `gorm:"not null;default:0" json:"price"` // minor currency units
	MonthlyLimit int       `gorm:"not null" json:"monthly_limit"`
	DailyLimit   int       `gorm:"not null" json:"daily_limit"`
	Features     string    `gorm:"type:text" json:"features"` // JSON array of feature strings
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	return nil
}

func (p *SubscriptionPlan) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
