package models

import "time"

// Payment log events
const (
	PaymentEventCreated       = "payment_created"
	PaymentEventVerifyAttempt = "verify_attempt"
	PaymentEventVerifySuccess = "verify_success"
	PaymentEventVerifyFailed  = "verify_failed"
)

// PaymentLog is an append-only audit trail of payment lifecycle events.
type PaymentLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"index;not null" json:"payment_id"`
	Event     string    `gorm:"type:varchar(30);not null" json:"event"`
	Payload   string    `gorm:"type:text" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
