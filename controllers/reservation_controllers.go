package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/notifier"
	"github.com/dinehub/restaurant-app/services"
	"github.com/dinehub/restaurant-app/utils"
)

type ReservationController struct {
	reservations *services.ReservationService
}

func NewReservationController(db *gorm.DB, publisher notifier.Publisher) *ReservationController {
	return &ReservationController{
		reservations: services.NewReservationService(db, publisher),
	}
}

// CreateReservation validates and persists a booking request, then notifies
// the reservations channel.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input services.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.reservations.CreateReservation(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}
