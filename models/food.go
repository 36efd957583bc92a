package models

import "time"

type Food struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RestaurantID    uint      `gorm:"index;not null" json:"restaurant_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPercent uint      `gorm:"not null;default:0" json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DiscountedPrice applies the discount percent to the base price.
func (f *Food) DiscountedPrice() float64 {
	return f.Price * (1 - float64(f.DiscountPercent)/100)
}
