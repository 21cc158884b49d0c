package security

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Sink receives security events. Implementations must not fail the request path.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event Event)

func (f SinkFunc) Record(ctx context.Context, event Event) {
	f(ctx, event)
}

// Sinks fans an event out to every member.
type Sinks []Sink

func (s Sinks) Record(ctx context.Context, event Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Record(ctx, event)
		}
	}
}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink builds a LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(_ context.Context, event Event) {
	s.logger.Warn("security event", logFields(event)...)
}

func logFields(event Event) []zap.Field {
	return []zap.Field{
		zap.String("category", string(event.Category)),
		zap.String("pattern", event.Pattern),
		zap.String("key", event.Key),
		zap.String("value", event.Value),
		zap.String("url", event.URL),
		zap.String("method", event.Method),
		zap.String("ip", event.IP),
		zap.String("user_agent", event.UserAgent),
		zap.Time("detected_at", event.Timestamp),
	}
}

// StreamSink appends events to a capped Redis stream for downstream consumers.
type StreamSink struct {
	client  redis.Cmdable
	stream  string
	maxLen  int64
	timeout time.Duration
	logger  *zap.Logger
}

// NewStreamSink builds a StreamSink. maxLen <= 0 leaves the stream uncapped.
func NewStreamSink(client redis.Cmdable, stream string, maxLen int64, logger *zap.Logger) *StreamSink {
	return &StreamSink{
		client:  client,
		stream:  stream,
		maxLen:  maxLen,
		timeout: 500 * time.Millisecond,
		logger:  logger,
	}
}

func (s *StreamSink) Record(ctx context.Context, event Event) {
	if s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: streamValues(event),
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		s.logger.Warn("security event stream write failed",
			zap.String("stream", s.stream),
			zap.String("category", string(event.Category)),
			zap.Error(err))
	}
}

func streamValues(event Event) map[string]any {
	return map[string]any{
		"category":    string(event.Category),
		"pattern":     event.Pattern,
		"key":         event.Key,
		"value":       event.Value,
		"url":         event.URL,
		"method":      event.Method,
		"ip":          event.IP,
		"user_agent":  event.UserAgent,
		"detected_at": event.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// CategoryCounter counts events per category.
type CategoryCounter interface {
	RecordSecurityEvent(category string)
}

// MetricsSink bumps a counter per event.
type MetricsSink struct {
	counter CategoryCounter
}

// NewMetricsSink builds a MetricsSink.
func NewMetricsSink(counter CategoryCounter) *MetricsSink {
	return &MetricsSink{counter: counter}
}

func (s *MetricsSink) Record(_ context.Context, event Event) {
	if s.counter == nil {
		return
	}
	s.counter.RecordSecurityEvent(string(event.Category))
}
