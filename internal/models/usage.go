package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyUsage counts generations for one user on one calendar day. Rows are
// created lazily on first generation and only ever incremented.
type DailyUsage struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_usage_user_day" json:"user_id"`
	Day             string    `gorm:"column:day;type:varchar(10);not null;uniqueIndex:idx_daily_usage_user_day" json:"day"` // YYYY-MM-DD
	GenerationCount int       `gorm:"not null;default:0" json:"generation_count"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (DailyUsage) TableName() string {
	return "daily_usage"
}

func (u *DailyUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// MonthlyUsage counts generations for one user in one calendar month.
type MonthlyUsage struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_usage_user_month" json:"user_id"`
	Month           string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_monthly_usage_user_month" json:"month"` // YYYY-MM
	GenerationCount int       `gorm:"not null;default:0" json:"generation_count"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MonthlyUsage) TableName() string {
	return "monthly_usage"
}

func (u *MonthlyUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DayKey and MonthKey format the period keys used by the usage tables.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
