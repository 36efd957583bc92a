package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/notifier"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StaffWSHandler upgrades a staff dashboard connection and keeps it
// registered with the notifier hub until it drops. Reservation events are
// then pushed in real time. Routing restricts this to staff roles.
func StaffWSHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	notifier.RegisterClient(ws, middlewares.Role(c))

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	notifier.UnregisterClient(ws)
}
