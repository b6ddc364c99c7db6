// README: Pricing service owns the rate table: local cache first, pricing backend second, defaults last.
package pricing

import (
	"context"
	"fmt"

	"taxifare/internal/logger"
	"taxifare/internal/metrics"
)

// Store is the local rate-table cache.
type Store interface {
	Get(ctx context.Context) (RateTable, bool, error)
	Set(ctx context.Context, t RateTable) error
}

// Remote is the pricing backend of record.
type Remote interface {
	Fetch(ctx context.Context) (RateTable, error)
	Push(ctx context.Context, t RateTable) error
}

type Service struct {
	store  Store
	remote Remote
	log    logger.Logger
}

func NewService(store Store, remote Remote, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, remote: remote, log: log}
}

// GetRateTable never fails. A cached table is authoritative and the remote
// is not consulted; on a miss the remote answer (or the defaults when the
// remote fails) is cached for the next caller.
func (s *Service) GetRateTable(ctx context.Context) RateTable {
	cached, ok, err := s.store.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "rate table cache read failed", "error", err.Error())
	}
	if ok {
		metrics.RateTableSource.WithLabelValues("cache").Inc()
		return BackFill(cached)
	}

	table, source := s.fetch(ctx)
	if err := s.store.Set(ctx, table); err != nil {
		s.log.Warn(ctx, "rate table cache write failed", "error", err.Error())
	}
	metrics.RateTableSource.WithLabelValues(source).Inc()
	return table
}

func (s *Service) fetch(ctx context.Context) (RateTable, string) {
	if s.remote == nil {
		return DefaultRateTable(), "default"
	}
	remote, err := s.remote.Fetch(ctx)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("pricing").Inc()
		s.log.Warn(ctx, "pricing backend unavailable, using default rates", "error", err.Error())
		return DefaultRateTable(), "default"
	}
	return BackFill(remote), "remote"
}

// SetRateTable writes the cache before the backend so the admin sees the new
// prices even when the push fails. A push failure wraps ErrRemoteUpdate.
func (s *Service) SetRateTable(ctx context.Context, t RateTable) error {
	table := BackFill(t)
	if err := s.store.Set(ctx, table); err != nil {
		return fmt.Errorf("cache rate table: %w", err)
	}
	if s.remote == nil {
		return nil
	}
	if err := s.remote.Push(ctx, table); err != nil {
		metrics.UpstreamFailures.WithLabelValues("pricing").Inc()
		s.log.Warn(ctx, "pricing backend update failed, cache kept", "error", err.Error())
		return fmt.Errorf("%w: %w", ErrRemoteUpdate, err)
	}
	s.log.Info(ctx, "rate table updated")
	return nil
}
