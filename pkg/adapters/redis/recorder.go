package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.FlightRecorder using Redis.
// Each flight is a list of JSON events; a ZSET indexes flights by expiry.
type Recorder struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Recorder)

// WithTTL sets the expiration of a flight log, refreshed on every append.
func WithTTL(ttl time.Duration) Option {
	return func(r *Recorder) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for flight logs.
func WithPrefix(prefix string) Option {
	return func(r *Recorder) {
		r.prefix = prefix
	}
}

// New creates a new Redis recorder with options.
func New(address, password string, db int, opts ...Option) *Recorder {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	rec := &Recorder{
		client: client,
		prefix: "chute:flight:",
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

func (r *Recorder) key(flightID string) string {
	return r.prefix + flightID
}

func (r *Recorder) indexKey() string {
	return r.prefix + "index"
}

// Append pushes the event onto the flight's list and refreshes its index entry.
func (r *Recorder) Append(ctx context.Context, flightID string, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key(flightID), data)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(flightID), r.ttl)
	}

	// Score = Now + TTL. If TTL = 0 the flight never expires.
	score := float64(time.Now().Add(r.ttl).Unix())
	if r.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{
		Score:  score,
		Member: flightID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Events reads the flight's list back in append order.
func (r *Recorder) Events(ctx context.Context, flightID string) ([]domain.Event, error) {
	raw, err := r.client.LRange(ctx, r.key(flightID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlightNotFound, flightID)
	}

	events := make([]domain.Event, 0, len(raw))
	for i, item := range raw {
		var e domain.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Flights returns the flights whose logs have not expired.
func (r *Recorder) Flights(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := r.client.ZRemRangeByScore(ctx, r.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired flights: %w", err)
	}

	flights, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

// Delete removes the flight's log and its index entry.
func (r *Recorder) Delete(ctx context.Context, flightID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(flightID))
	pipe.ZRem(ctx, r.indexKey(), flightID)
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (r *Recorder) Close() error {
	return r.client.Close()
}
