package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// Order is a frozen snapshot of what was ordered. Items never change after
// creation; only status and the delivery fields move.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UUID         string      `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	UserID       uint        `gorm:"index;not null" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"-"`
	RestaurantID uint        `gorm:"index;not null" json:"restaurant_id"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalPrice   float64     `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_price"`
	Address      string      `gorm:"type:text" json:"address"`
	Phone        string      `gorm:"type:varchar(20)" json:"phone"`
	Note         string      `gorm:"type:text" json:"note"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate assigns the customer-facing checkout handle.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.NewString()
	}
	return nil
}
