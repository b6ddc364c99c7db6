// README: Featured route stores: PostgreSQL, with an in-memory variant when no database is reachable.
package routes

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxifare/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) List(ctx context.Context) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, from_city, to_city, category, trip_type, created_at
        FROM featured_routes
        ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Route{}
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.From, &r.To, &r.Category, &r.TripType, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) Create(ctx context.Context, r *Route) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO featured_routes (id, from_city, to_city, category, trip_type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		string(r.ID), r.From, r.To, string(r.Category), string(r.TripType), r.CreatedAt,
	)
	return err
}

func (s *PGStore) Delete(ctx context.Context, id types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM featured_routes WHERE id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

type MemoryStore struct {
	mu     sync.RWMutex
	routes map[types.ID]Route
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{routes: make(map[types.ID]Route)}
}

func (s *MemoryStore) List(_ context.Context) ([]Route, error) {
	s.mu.RLock()
	out := make([]Route, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, r *Route) error {
	s.mu.Lock()
	s.routes[r.ID] = *r
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return false, nil
	}
	delete(s.routes, id)
	return true, nil
}
