// README: Routing-distance cache backed by Redis, keyed by the geohash of both endpoints.
package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"

	"taxifare/internal/types"
)

const (
	distanceKeyPrefix = "taxifare:distance:%s:%s"
	geohashPrecision  = 7
	distanceTTL       = 24 * time.Hour
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) Get(ctx context.Context, from, to types.Point) (float64, bool, error) {
	val, err := s.redis.Get(ctx, distanceKey(from, to)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	km, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse cached distance %q: %w", val, err)
	}
	return km, true, nil
}

func (s *Store) Set(ctx context.Context, from, to types.Point, km float64) error {
	return s.redis.Set(ctx, distanceKey(from, to), strconv.FormatFloat(km, 'f', 1, 64), distanceTTL).Err()
}

// distanceKey is directional: routing answers may differ by direction.
func distanceKey(from, to types.Point) string {
	return fmt.Sprintf(distanceKeyPrefix,
		geohash.EncodeWithPrecision(from.Lat, from.Lng, geohashPrecision),
		geohash.EncodeWithPrecision(to.Lat, to.Lng, geohashPrecision),
	)
}
