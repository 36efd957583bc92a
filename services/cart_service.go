package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
)

// CartService owns all cart mutations. Read-modify-write sequences run in
// short transactions with row locks so concurrent requests cannot
// double-increment a line or resurrect a deleted one.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart merges quantity into the user's (cart, food) line, creating the
// cart and the line as needed.
func (s *CartService) AddToCart(userID, foodID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.First(&food, foodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodNotFound
			}
			return err
		}

		var cart models.Cart
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		err := lockForUpdate(tx).
			Where("cart_id = ? AND food_id = ?", cart.ID, food.ID).
			First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:   cart.ID,
				FoodID:   food.ID,
				Quantity: uint(quantity),
			}
			return tx.Create(&item).Error
		case err != nil:
			return err
		default:
			item.Quantity += uint(quantity)
			return tx.Save(&item).Error
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// RemoveFromCart deletes the matching line item unconditionally.
func (s *CartService) RemoveFromCart(userID, foodID uint) (*models.Cart, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND food_id = ?", cart.ID, foodID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// DecrementItem reduces the line quantity by one and deletes the line when
// it would drop to zero.
func (s *CartService) DecrementItem(userID, foodID uint) (*models.Cart, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = lockForUpdate(tx).
			Where("cart_id = ? AND food_id = ?", cart.ID, foodID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotInCart
			}
			return err
		}

		if item.Quantity > 1 {
			item.Quantity--
			return tx.Save(&item).Error
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// GetCart loads the cart with its items and foods. The total is derived on
// read from current prices, never stored.
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Food").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func findCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}
