package services

import "errors"

// Business-rule failures surfaced by the service layer. Controllers map
// these to HTTP status codes.
var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrFoodNotFound    = errors.New("food not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotInCart   = errors.New("item not found in cart")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrMixedRestaurants   = errors.New("cart contains foods from more than one restaurant")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidStatus      = errors.New("invalid order status transition")

	ErrOrderNotPayable  = errors.New("order is not payable")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentProcessed = errors.New("payment has already been processed")
	ErrInvalidCard      = errors.New("card number must be 12 to 19 digits")
	ErrInvalidCVV       = errors.New("cvv2 must be 3 or 4 digits")
	ErrInvalidOTP       = errors.New("otp must be exactly 6 digits")

	ErrInvalidReservation = errors.New("reservation is missing required fields")
)
