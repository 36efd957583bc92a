package models

import "time"

// CartItem is one (cart, food) line. The pair is kept unique through a
// locked get-or-create in the cart service.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;not null" json:"cart_id"`
	FoodID    uint      `gorm:"index;not null" json:"food_id"`
	Food      Food      `gorm:"foreignKey:FoodID" json:"food"`
	Quantity  uint      `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
