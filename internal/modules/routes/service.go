// README: Featured routes service; admin CRUD plus live pricing for the public list.
package routes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"taxifare/internal/logger"
	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

type Store interface {
	List(ctx context.Context) ([]Route, error)
	Create(ctx context.Context, r *Route) error
	Delete(ctx context.Context, id types.ID) (bool, error)
}

type Estimator interface {
	Estimate(ctx context.Context, req fare.Request) (fare.Result, error)
}

const pricingConcurrency = 4

type Service struct {
	store     Store
	estimator Estimator
	log       logger.Logger
	now       func() time.Time
}

func NewService(store Store, estimator Estimator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, estimator: estimator, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Route, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Route, error) {
	from, to := strings.TrimSpace(cmd.From), strings.TrimSpace(cmd.To)
	category, ok := pricing.ParseCategory(cmd.Category)
	if from == "" || to == "" || !ok {
		return nil, ErrBadRequest
	}
	tripType, err := pricing.ParseTripType(cmd.TripType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	r := &Route{
		ID:        types.ID(uuid.NewString()),
		From:      from,
		To:        to,
		Category:  category,
		TripType:  tripType,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "featured route created", "route_id", string(r.ID), "from", from, "to", to)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.log.Info(ctx, "featured route deleted", "route_id", string(id))
	return nil
}

// ListPriced prices every route with no surge. A route that cannot be
// priced is still listed, with its error.
func (s *Service) ListPriced(ctx context.Context) ([]PricedRoute, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PricedRoute, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pricingConcurrency)
	for i, r := range list {
		out[i].Route = r
		g.Go(func() error {
			res, err := s.estimator.Estimate(gctx, fare.Request{
				PickupText: r.From,
				DropText:   r.To,
				Category:   r.Category,
				TripType:   r.TripType,
			})
			if err != nil {
				s.log.Warn(gctx, "featured route not priced", "route_id", string(r.ID), "error", err.Error())
				out[i].Error = err.Error()
				return nil
			}
			out[i].Fare = &res
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}
