package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
)

// OrderService creates immutable order snapshots and moves them through the
// status lifecycle.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderItemInput is one requested line for explicit order creation.
type OrderItemInput struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// Allowed forward transitions per current status.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusCanceled},
	models.OrderStatusPreparing: {models.OrderStatusOnTheWay, models.OrderStatusCanceled},
	models.OrderStatusOnTheWay:  {models.OrderStatusDelivered},
}

// CreateOrder persists an Order plus frozen OrderItems from an explicit item
// list. Unit prices are the discounted prices at creation time.
func (s *OrderService) CreateOrder(userID, restaurantID uint, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRestaurantNotFound
			}
			return err
		}

		order = models.Order{
			UserID:       userID,
			RestaurantID: restaurant.ID,
			Status:       models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		var total float64
		for _, item := range items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			var food models.Food
			if err := tx.First(&food, item.FoodID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFoodNotFound
				}
				return err
			}

			unitPrice := food.DiscountedPrice()
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				FoodID:   food.ID,
				Quantity: uint(item.Quantity),
				Price:    unitPrice,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total += float64(item.Quantity) * unitPrice
		}

		order.TotalPrice = total
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

// CreateOrderFromCart materializes the user's cart into an order and empties
// the cart in the same transaction. All cart foods must belong to a single
// restaurant.
func (s *OrderService) CreateOrderFromCart(userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Food").
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		restaurantID := cart.Items[0].Food.RestaurantID
		for _, item := range cart.Items {
			if item.Food.RestaurantID != restaurantID {
				return ErrMixedRestaurants
			}
		}

		order = models.Order{
			UserID:       userID,
			RestaurantID: restaurantID,
			Status:       models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		var total float64
		for _, item := range cart.Items {
			unitPrice := item.Food.DiscountedPrice()
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				FoodID:   item.FoodID,
				Quantity: item.Quantity,
				Price:    unitPrice,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total += float64(item.Quantity) * unitPrice
		}

		order.TotalPrice = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

// Checkout fills delivery details on the caller's pending order identified
// by its UUID. Any uuid/owner/status mismatch reads as not found.
func (s *OrderService) Checkout(orderUUID string, userID uint, address, phone, note string) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("uuid = ? AND user_id = ? AND status = ?",
			orderUUID, userID, models.OrderStatusPending).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		order.Address = address
		order.Phone = phone
		order.Note = note
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

// ListOrders scopes the result by role: customers see their own orders,
// vendors their restaurant's, admins everything.
func (s *OrderService) ListOrders(userID uint, role string) ([]models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.Food").Order("orders.created_at DESC")

	switch role {
	case models.RoleAdmin:
	case models.RoleVendor:
		query = query.
			Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("restaurants.owner_id = ?", userID)
	default:
		query = query.Where("orders.user_id = ?", userID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order if the caller is allowed to see it.
func (s *OrderService) GetOrder(orderID, userID uint, role string) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleAdmin:
		return order, nil
	case models.RoleVendor:
		var restaurant models.Restaurant
		if err := s.db.First(&restaurant, order.RestaurantID).Error; err != nil {
			return nil, err
		}
		if restaurant.OwnerID != userID {
			return nil, ErrOrderNotFound
		}
		return order, nil
	default:
		if order.UserID != userID {
			return nil, ErrOrderNotFound
		}
		return order, nil
	}
}

// UpdateStatus advances the order lifecycle. Only the owning vendor or an
// admin may do this, and only along allowed transitions.
func (s *OrderService) UpdateStatus(orderID, userID uint, role, newStatus string) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if role == models.RoleVendor {
			var restaurant models.Restaurant
			if err := tx.First(&restaurant, order.RestaurantID).Error; err != nil {
				return err
			}
			if restaurant.OwnerID != userID {
				return ErrOrderNotFound
			}
		}

		allowed := false
		for _, next := range orderTransitions[order.Status] {
			if next == newStatus {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrInvalidStatus
		}

		order.Status = newStatus
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

func (s *OrderService) loadOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Food").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
