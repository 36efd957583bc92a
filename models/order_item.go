package models

import "time"

// OrderItem is a frozen copy of an ordered line. Price is the unit
// discounted price at the time the order was created.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	FoodID    uint      `gorm:"index;not null" json:"food_id"`
	Food      Food      `gorm:"foreignKey:FoodID" json:"food"`
	Quantity  uint      `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
