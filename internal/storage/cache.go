package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
	"github.com/san-kum/dartsim/internal/sweep"
)

const resultKeyPrefix = "dartsim:result:"

// ErrCacheMiss is returned when no result is stored under a key.
var ErrCacheMiss = errors.New("cache miss")

type CacheConfig struct {
	RedisClient *redis.Client
	// TTL of zero keeps entries forever.
	TTL time.Duration
}

// Cache stores simulation results in Redis. Only results from a fixed seed
// are reproducible, so the seed is part of every key.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(cfg *CacheConfig) (*Cache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: cfg.RedisClient, ttl: cfg.TTL}, nil
}

type CacheKey struct {
	Seed       int64
	NSims      int
	Dispersion float64
	Aim        board.Point
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s%d:%d:%g:%g:%g", resultKeyPrefix, k.Seed, k.NSims, k.Dispersion, k.Aim.X, k.Aim.Y)
}

// cachedResult is the JSON form of sim.Result; segment-keyed maps do not
// survive encoding/json.
type cachedResult struct {
	Seed         int64          `json:"seed"`
	NSims        int            `json:"n_sims"`
	Dispersion   float64        `json:"dispersion"`
	Aim          board.Point    `json:"aim"`
	AverageScore float64        `json:"average_score"`
	StdDev       float64        `json:"std_dev"`
	Counts       []cachedCounts `json:"counts"`
}

type cachedCounts struct {
	Segment board.Segment `json:"segment"`
	Count   int64         `json:"count"`
}

func (c *Cache) Get(ctx context.Context, key CacheKey) (*sim.Result, error) {
	data, err := c.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var cr cachedResult
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	r := &sim.Result{
		Seed:         cr.Seed,
		NSims:        cr.NSims,
		Dispersion:   cr.Dispersion,
		Aim:          cr.Aim,
		AverageScore: cr.AverageScore,
		StdDev:       cr.StdDev,
		Counts:       make(map[board.Segment]int64, len(cr.Counts)),
	}
	for _, sc := range cr.Counts {
		r.Counts[sc.Segment] = sc.Count
	}
	return r, nil
}

func (c *Cache) Put(ctx context.Context, key CacheKey, r *sim.Result) error {
	cr := cachedResult{
		Seed:         r.Seed,
		NSims:        r.NSims,
		Dispersion:   r.Dispersion,
		Aim:          r.Aim,
		AverageScore: r.AverageScore,
		StdDev:       r.StdDev,
	}
	for _, sc := range r.TopSegments(-1) {
		cr.Counts = append(cr.Counts, cachedCounts{Segment: sc.Segment, Count: sc.Count})
	}

	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// CachedSimulator answers repeated configurations from the cache and
// stores fresh results after simulating them.
type CachedSimulator struct {
	inner sweep.Simulator
	cache *Cache
	seed  int64
}

func NewCachedSimulator(inner sweep.Simulator, cache *Cache, seed int64) *CachedSimulator {
	return &CachedSimulator{inner: inner, cache: cache, seed: seed}
}

func (c *CachedSimulator) Simulate(ctx context.Context, nSims int, dispersion float64, aim board.Point) (*sim.Result, error) {
	key := CacheKey{Seed: c.seed, NSims: nSims, Dispersion: dispersion, Aim: aim}

	r, err := c.cache.Get(ctx, key)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	r, err = c.inner.Simulate(ctx, nSims, dispersion, aim)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(ctx, key, r); err != nil {
		return nil, err
	}
	return r, nil
}
