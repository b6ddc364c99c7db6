// README: Featured route model shown on the public routes page.
package routes

import (
	"errors"
	"time"

	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

var (
	ErrNotFound   = errors.New("route not found")
	ErrBadRequest = errors.New("from, to and a known category are required")
)

type Route struct {
	ID        types.ID         `json:"id"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Category  pricing.Category `json:"category"`
	TripType  pricing.TripType `json:"tripType"`
	CreatedAt time.Time        `json:"createdAt"`
}

// PricedRoute carries either a live fare or the reason it could not be priced.
type PricedRoute struct {
	Route
	Fare  *fare.Result `json:"fare,omitempty"`
	Error string       `json:"error,omitempty"`
}

type CreateCommand struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Category string `json:"category"`
	TripType string `json:"tripType"`
}
