package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment methods
const (
	PaymentMethodFake   = "fake"
	PaymentMethodManual = "manual"
)

// Payment is tied 1:1 to an order. RefCode is the opaque external handle
// used during gateway verification.
type Payment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OrderID   uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	Order     Order      `gorm:"foreignKey:OrderID" json:"-"`
	Amount    float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    string     `gorm:"type:varchar(30);not null;default:'fake'" json:"method"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RefCode   string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"ref_code"`
	Meta      string     `gorm:"type:text" json:"meta"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the unique reference code on first save.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.RefCode == "" {
		p.RefCode = strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	}
	return nil
}
