package booking

import (
	"context"
	"time"

	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

type FareEstimator interface {
	Estimate(ctx context.Context, req fare.Request) (fare.Result, error)
}

// FareQuoter prices an enquiry with the same pipeline as the public estimator.
type FareQuoter struct {
	estimator FareEstimator
	loc       *time.Location
}

func NewFareQuoter(estimator FareEstimator, loc *time.Location) *FareQuoter {
	return &FareQuoter{estimator: estimator, loc: loc}
}

func (q *FareQuoter) Quote(ctx context.Context, e Enquiry) (types.Money, error) {
	category, ok := pricing.ParseCategory(e.Category)
	if !ok {
		return types.Money{}, fare.ErrUnknownCategory
	}
	tripType, err := pricing.ParseTripType(e.TripType)
	if err != nil {
		return types.Money{}, err
	}
	res, err := q.estimator.Estimate(ctx, fare.Request{
		PickupText:  e.Pickup,
		DropText:    e.Drop,
		Category:    category,
		TripType:    tripType,
		ScheduledAt: pricing.ParseScheduledAt(e.Date, e.Time, q.loc),
	})
	if err != nil {
		return types.Money{}, err
	}
	return res.Price, nil
}
