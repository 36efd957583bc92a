package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dinehub/restaurant-app/controllers"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/notifier"
)

func TestCreateReservationPublishesEvent(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{}
	r := gin.New()
	r.POST("/reservations", controllers.NewReservationController(db, publisher).CreateReservation)

	w := doJSON(t, r, "POST", "/reservations", gin.H{
		"date":    "2026-09-15",
		"time":    "19:30",
		"guests":  4,
		"name":    "Dana Reyes",
		"phone":   "555-0142",
		"message": "window table if possible",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, notifier.ChannelReservations, event.Channel)
	assert.Equal(t, notifier.EventNewReservation, event.Event)
	payload := event.Payload.(map[string]interface{})
	assert.Equal(t, "2026-09-15", payload["date"])
	assert.Equal(t, "Dana Reyes", payload["name"])
	assert.Equal(t, uint(4), payload["guests"])
}

func TestCreateReservationValidation(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{}
	r := gin.New()
	r.POST("/reservations", controllers.NewReservationController(db, publisher).CreateReservation)

	cases := []struct {
		name    string
		payload gin.H
	}{
		{"zero guests", gin.H{"date": "2026-09-15", "time": "19:30", "guests": 0, "name": "Dana", "phone": "555-0142"}},
		{"missing date", gin.H{"time": "19:30", "guests": 2, "name": "Dana", "phone": "555-0142"}},
		{"missing name", gin.H{"date": "2026-09-15", "time": "19:30", "guests": 2, "phone": "555-0142"}},
	}
	for _, tc := range cases {
		w := doJSON(t, r, "POST", "/reservations", tc.payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.name)
	}

	// nothing stored, nothing announced
	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, publisher.events)
}

func TestCreateReservationSurvivesPublishFailure(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{fail: true}
	r := gin.New()
	r.POST("/reservations", controllers.NewReservationController(db, publisher).CreateReservation)

	w := doJSON(t, r, "POST", "/reservations", gin.H{
		"date":   "2026-09-15",
		"time":   "20:00",
		"guests": 2,
		"name":   "Sam Ortiz",
		"phone":  "555-0107",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
