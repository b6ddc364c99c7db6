// README: Distance provider; routing service first, haversine when it cannot answer, random when a city is unknown.
package location

import (
	"context"
	"math/rand/v2"

	"taxifare/internal/logger"
	"taxifare/internal/metrics"
	"taxifare/internal/types"
)

// Router returns a driving distance in metres between two points.
type Router interface {
	RouteDistanceMeters(ctx context.Context, from, to types.Point) (float64, error)
}

// DistanceCache remembers routing answers between two points.
type DistanceCache interface {
	Get(ctx context.Context, from, to types.Point) (float64, bool, error)
	Set(ctx context.Context, from, to types.Point, km float64) error
}

const (
	fallbackMinKm  = 10
	fallbackSpanKm = 50
)

type DistanceProvider struct {
	resolver *Resolver
	router   Router
	cache    DistanceCache
	log      logger.Logger
	intN     func(n int) int
}

// NewDistanceProvider wires the fallback chain. router and cache may be nil:
// a nil router means routing is not configured and haversine is used directly.
func NewDistanceProvider(resolver *Resolver, router Router, cache DistanceCache, log logger.Logger) *DistanceProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &DistanceProvider{
		resolver: resolver,
		router:   router,
		cache:    cache,
		log:      log,
		intN:     rand.IntN,
	}
}

// DistanceKm never fails; every upstream problem degrades to a less accurate estimate.
func (p *DistanceProvider) DistanceKm(ctx context.Context, pickupText, dropText string) Distance {
	from, okFrom := p.resolver.Resolve(pickupText)
	to, okTo := p.resolver.Resolve(dropText)
	if !okFrom || !okTo {
		// Unknown location: placeholder distance kept for parity with the public site.
		km := float64(p.intN(fallbackSpanKm) + fallbackMinKm)
		metrics.DistanceSource.WithLabelValues(string(SourceRandom)).Inc()
		p.log.Debug(ctx, "location not in gazetteer, using placeholder distance",
			"pickup", pickupText, "drop", dropText, "km", km)
		return Distance{Km: km, Source: SourceRandom, LowConfidence: true}
	}

	if p.router != nil {
		if km, ok := p.cached(ctx, from.Point, to.Point); ok {
			metrics.DistanceSource.WithLabelValues(string(SourceCache)).Inc()
			return Distance{Km: km, Source: SourceCache}
		}

		meters, err := p.router.RouteDistanceMeters(ctx, from.Point, to.Point)
		if err == nil && meters > 0 {
			km := roundTenth(meters / 1000)
			if p.cache != nil {
				if err := p.cache.Set(ctx, from.Point, to.Point, km); err != nil {
					p.log.Warn(ctx, "distance cache write failed", "error", err.Error())
				}
			}
			metrics.DistanceSource.WithLabelValues(string(SourceRouting)).Inc()
			return Distance{Km: km, Source: SourceRouting}
		}
		metrics.UpstreamFailures.WithLabelValues("routing").Inc()
		if err != nil {
			p.log.Warn(ctx, "routing failed, falling back to haversine",
				"from", from.Name, "to", to.Name, "error", err.Error())
		} else {
			p.log.Warn(ctx, "routing returned no distance, falling back to haversine",
				"from", from.Name, "to", to.Name)
		}
	}

	metrics.DistanceSource.WithLabelValues(string(SourceHaversine)).Inc()
	return Distance{Km: HaversineKm(from.Point, to.Point), Source: SourceHaversine}
}

func (p *DistanceProvider) cached(ctx context.Context, from, to types.Point) (float64, bool) {
	if p.cache == nil {
		return 0, false
	}
	km, ok, err := p.cache.Get(ctx, from, to)
	if err != nil {
		p.log.Debug(ctx, "distance cache read failed", "error", err.Error())
		return 0, false
	}
	return km, ok
}
