// Package notify carries capture outcomes to the outside world. Sinks are
// best-effort: the capture engine never fails a call because a sink could
// not deliver.
package notify

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/duskveil-games/soultrap/pkg/models"
)

// Sink receives user notifications and stat increments from the capture
// engine.
type Sink interface {
	// Notify delivers a user-facing message to the collector's client.
	Notify(message string)

	// IncrementStat records one trapped soul for the collector.
	IncrementStat(collector, victim *models.Actor)
}

// Null discards everything. Useful for tests and headless runs.
type Null struct{}

// Notify does nothing.
func (Null) Notify(message string) {}

// IncrementStat does nothing.
func (Null) IncrementStat(collector, victim *models.Actor) {}

// Log writes notifications and stat increments to the process log.
type Log struct{}

// Notify logs the message.
func (Log) Notify(message string) {
	log.Printf("[notify] %s", message)
}

// IncrementStat logs the increment.
func (Log) IncrementStat(collector, victim *models.Actor) {
	victimName := "(unknown)"
	if victim != nil {
		victimName = victim.Name
	}
	log.Printf("[stat] souls trapped +1 for %s (victim: %s)", collector.Name, victimName)
}

// Multi fans out to several sinks in order.
type Multi []Sink

// Notify delivers to every sink.
func (m Multi) Notify(message string) {
	for _, s := range m {
		s.Notify(message)
	}
}

// IncrementStat delivers to every sink.
func (m Multi) IncrementStat(collector, victim *models.Actor) {
	for _, s := range m {
		s.IncrementStat(collector, victim)
	}
}

// RedisStats keeps a per-collector souls-trapped counter in Redis.
// Notifications are not its concern.
type RedisStats struct {
	client *redis.Client
	prefix string
}

// NewRedisStats creates a Redis-backed stat sink.
func NewRedisStats(client *redis.Client, prefix string) *RedisStats {
	return &RedisStats{client: client, prefix: prefix}
}

// Notify does nothing.
func (r *RedisStats) Notify(message string) {}

// IncrementStat bumps the collector's counter. Errors are logged and
// dropped.
func (r *RedisStats) IncrementStat(collector, victim *models.Actor) {
	key := r.prefix + collector.ID
	if err := r.client.Incr(context.Background(), key).Err(); err != nil {
		log.Printf("Failed to increment stat %s: %v", key, err)
	}
}
