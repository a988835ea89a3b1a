package events

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LogSink writes each event as a structured log line.
func LogSink(logger *zap.Logger) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		logger.Info("event",
			zap.String("event", string(e.Name)),
			zap.String("entity_id", e.EntityID.String()),
			zap.Time("occurred_at", e.OccurredAt))
		return nil
	})
}

// RedisSink publishes each event as JSON on a Pub/Sub channel.
func RedisSink(client redis.Cmdable, channel string) Sink {
	return SinkFunc(func(ctx context.Context, e Event) error {
		payload, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return client.Publish(ctx, channel, payload).Err()
	})
}

// MetricsSink counts events by name.
func MetricsSink(counter *prometheus.CounterVec) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		counter.WithLabelValues(string(e.Name)).Inc()
		return nil
	})
}
