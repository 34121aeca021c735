package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManualPayment is a payment record entered by an admin, outside any
// payment processor.
type ManualPayment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        int       `gorm:"not null" json:"amount"` // minor currency units
	Method        string    `gorm:"type:varchar(100);not null" json:"method"`
	TransactionID string    `gorm:"type:varchar(255)" json:"transaction_id"`
	Notes         string    `gorm:"type:text" json:"notes"`
	RecordedBy    uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}

func (ManualPayment) TableName() string {
	return "manual_payments"
}

func (p *ManualPayment) BeforeCreate(tx *gorm.DB) error {
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
