package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// UserSubscription links a user to their plan. The unique index on UserID
// keeps at most one subscription row per user.
type UserSubscription struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	PlanID      uuid.UUID        `gorm:"type:uuid;not null" json:"plan_id"`
	Status      string           `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartDate   time.Time        `gorm:"not null" json:"start_date"`
	EndDate     *time.Time       `gorm:"default:null" json:"end_date"`
	RenewalDate *time.Time       `gorm:"default:null" json:"renewal_date"`
	CreatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	User        User             `gorm:"foreignKey:UserID" json:"-"`
	Plan        SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

func (s *UserSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	now := time.Now()
	if s.StartDate.IsZero() {
		s.StartDate = now
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	return nil
}

func (s *UserSubscription) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the subscription is usable at the given instant.
func (s *UserSubscription) IsActive(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(now)
}
