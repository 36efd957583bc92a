package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/notifier"
	"github.com/dinehub/restaurant-app/utils"
)

// ReservationService persists booking requests and notifies subscribers.
type ReservationService struct {
	db        *gorm.DB
	publisher notifier.Publisher
}

func NewReservationService(db *gorm.DB, publisher notifier.Publisher) *ReservationService {
	return &ReservationService{db: db, publisher: publisher}
}

// ReservationInput carries the raw booking request.
type ReservationInput struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  int    `json:"guests"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateReservation validates, persists and then publishes the booking to
// the reservations channel. The publish is fire-and-forget: the reservation
// exists even if notification fails.
func (s *ReservationService) CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	if input.Date == "" || input.Time == "" || input.Name == "" || input.Phone == "" || input.Guests <= 0 {
		return nil, ErrInvalidReservation
	}

	reservation := models.Reservation{
		Date:    input.Date,
		Time:    input.Time,
		Guests:  uint(input.Guests),
		Name:    input.Name,
		Phone:   input.Phone,
		Message: input.Message,
	}
	if err := s.db.Create(&reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	payload := map[string]interface{}{
		"date":    reservation.Date,
		"time":    reservation.Time,
		"guests":  reservation.Guests,
		"name":    reservation.Name,
		"phone":   reservation.Phone,
		"message": reservation.Message,
	}
	if err := s.publisher.Publish(ctx, notifier.ChannelReservations, notifier.EventNewReservation, payload); err != nil {
		// The row is already committed; at-most-once notification.
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Errorf("failed to publish reservation %d: %v", reservation.ID, err)
		}
	}

	return &reservation, nil
}
