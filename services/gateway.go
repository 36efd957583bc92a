package services

import (
	"math/rand"

	"github.com/dinehub/restaurant-app/models"
)

// Gateway decides the outcome of a payment authorization. The fake gateway
// stands in for a real processor; swapping in a real integration only means
// providing another implementation, the state machine stays untouched.
type Gateway interface {
	Authorize(payment *models.Payment) bool
}

// FakeGateway resolves payments by a weighted random draw, modelling an
// external gateway's unpredictability for demo and test purposes.
type FakeGateway struct {
	SuccessWeight int // out of 100
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{SuccessWeight: 90}
}

func (g *FakeGateway) Authorize(_ *models.Payment) bool {
	return rand.Intn(100) < g.SuccessWeight
}
