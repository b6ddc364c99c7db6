// README: Fare calculator: distance, rate lookup, trip factor, then surge.
package fare

import (
	"context"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"taxifare/internal/logger"
	"taxifare/internal/metrics"
	"taxifare/internal/modules/location"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

type DistanceProvider interface {
	DistanceKm(ctx context.Context, pickupText, dropText string) location.Distance
}

type RateSource interface {
	GetRateTable(ctx context.Context) pricing.RateTable
}

type Service struct {
	distance DistanceProvider
	rates    RateSource
	loc      *time.Location
	log      logger.Logger
	tracer   trace.Tracer
}

// NewService builds the calculator. loc is the zone surge hours are read in.
func NewService(distance DistanceProvider, rates RateSource, loc *time.Location, log logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		distance: distance,
		rates:    rates,
		loc:      loc,
		log:      log,
		tracer:   otel.Tracer("taxifare/fare"),
	}
}

// Estimate prices req against the current rate table.
func (s *Service) Estimate(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	return s.Compute(ctx, req, s.rates.GetRateTable(ctx))
}

// Compute prices req against table. Round trips double the one-leg distance
// and use the round-trip rate; rounding happens before and after surge.
func (s *Service) Compute(ctx context.Context, req Request, table pricing.RateTable) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "fare.Compute", trace.WithAttributes(
		attribute.String("fare.category", string(req.Category)),
		attribute.String("fare.trip_type", string(req.TripType)),
	))
	defer span.End()

	if err := validate(req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	rates, ok := table[req.Category]
	if !ok {
		span.SetStatus(codes.Error, ErrUnknownCategory.Error())
		return Result{}, ErrUnknownCategory
	}

	dist := s.distance.DistanceKm(ctx, req.PickupText, req.DropText)

	factor := 1.0
	if req.TripType == pricing.RoundTrip {
		factor = 2
	}
	rate := rates.For(req.TripType)
	base := math.Round(dist.Km * factor * rate)
	surge := pricing.SurgeMultiplier(req.ScheduledAt, s.loc)
	price := int64(math.Round(base * surge))

	tripType := req.TripType
	if tripType == "" {
		tripType = pricing.OneWay
	}
	res := Result{
		DistanceKm:     dist.Km,
		Price:          types.INR(price),
		Surge:          surge,
		SurgeLabel:     pricing.SurgeLabel(surge),
		DistanceSource: dist.Source,
		LowConfidence:  dist.LowConfidence,
		Rate:           rate,
		Category:       req.Category,
		TripType:       tripType,
	}

	span.SetAttributes(
		attribute.Float64("fare.distance_km", dist.Km),
		attribute.String("fare.distance_source", string(dist.Source)),
		attribute.Int64("fare.price", price),
	)
	metrics.FareEstimates.WithLabelValues(string(req.Category), string(tripType)).Inc()
	s.log.Debug(ctx, "fare computed",
		"category", string(req.Category), "trip_type", string(tripType),
		"distance_km", dist.Km, "source", string(dist.Source), "surge", surge, "price", price)
	return res, nil
}

func validate(req Request) error {
	if strings.TrimSpace(req.PickupText) == "" || strings.TrimSpace(req.DropText) == "" || req.Category == "" {
		return ErrInvalidRequest
	}
	return nil
}
