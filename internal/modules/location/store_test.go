package location

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"taxifare/internal/types"
)

func TestDistanceKey_Directional(t *testing.T) {
	a := types.Point{Lat: 13.0827, Lng: 80.2707}
	b := types.Point{Lat: 12.9165, Lng: 79.1325}
	if distanceKey(a, b) == distanceKey(b, a) {
		t.Fatal("distance key must depend on direction")
	}
	if distanceKey(a, b) != distanceKey(a, b) {
		t.Fatal("distance key must be deterministic")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	redisAddr := os.Getenv("TAXI_TEST_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("TAXI_TEST_REDIS_ADDR not set; skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	store := NewStore(rdb)
	ctx := context.Background()
	from := types.Point{Lat: 12.2253, Lng: 79.0747}
	to := types.Point{Lat: 13.0827, Lng: 80.2707}
	t.Cleanup(func() { rdb.Del(ctx, distanceKey(from, to)) })

	if err := store.Set(ctx, from, to, 184.4); err != nil {
		t.Fatalf("set: %v", err)
	}
	km, ok, err := store.Get(ctx, from, to)
	if err != nil || !ok || km != 184.4 {
		t.Fatalf("get = %v/%v/%v, want 184.4", km, ok, err)
	}
	if _, ok, _ := store.Get(ctx, to, from); ok {
		t.Fatal("reverse direction should miss")
	}
}
