// README: Fare request/result types and sentinel errors.
package fare

import (
	"errors"
	"time"

	"taxifare/internal/modules/location"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

var (
	ErrInvalidRequest  = errors.New("pickup, drop and category are required")
	ErrUnknownCategory = errors.New("no rate for category")
)

type Request struct {
	PickupText  string
	DropText    string
	Category    pricing.Category
	TripType    pricing.TripType
	ScheduledAt *time.Time
}

type Result struct {
	DistanceKm     float64                 `json:"distanceKm"`
	Price          types.Money             `json:"price"`
	Surge          float64                 `json:"surge"`
	SurgeLabel     string                  `json:"surgeLabel,omitempty"`
	DistanceSource location.DistanceSource `json:"distanceSource"`
	LowConfidence  bool                    `json:"lowConfidence"`
	Rate           float64                 `json:"rate"`
	Category       pricing.Category        `json:"category"`
	TripType       pricing.TripType        `json:"tripType"`
}
