package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinehub/restaurant-app/services"
	"github.com/dinehub/restaurant-app/utils"
)

// respondServiceError maps service-layer sentinels to HTTP status codes:
// validation -> 400, missing things -> 404, state conflicts -> 400,
// anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidCard),
		errors.Is(err, services.ErrInvalidCVV),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrInvalidReservation),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrMixedRestaurants),
		errors.Is(err, services.ErrInvalidStatus):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrItemNotInCart),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrOrderNotPayable),
		errors.Is(err, services.ErrPaymentProcessed):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
