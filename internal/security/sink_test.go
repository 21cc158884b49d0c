package security

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingCounter) RecordSecurityEvent(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[category]++
}

func sampleEvent() Event {
	return Event{
		Category:  CategorySQLInjection,
		Pattern:   "union_select",
		Key:       "search",
		Value:     "' UNION SELECT 1",
		URL:       "https://example.com/api/contact",
		Method:    "POST",
		IP:        "203.0.113.7",
		UserAgent: "sqlmap/1.7",
		Timestamp: fixedNow,
	}
}

func TestSinks_FanOutSkipsNil(t *testing.T) {
	var got []Category
	record := SinkFunc(func(_ context.Context, ev Event) { got = append(got, ev.Category) })

	sinks := Sinks{record, nil, record}
	sinks.Record(context.Background(), sampleEvent())

	assert.Equal(t, []Category{CategorySQLInjection, CategorySQLInjection}, got)
}

func TestLogSink_WritesWarnWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core))

	sink.Record(context.Background(), sampleEvent())

	entries := logs.FilterMessage("security event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "sql_injection_attempt", fields["category"])
	assert.Equal(t, "union_select", fields["pattern"])
	assert.Equal(t, "search", fields["key"])
	assert.Equal(t, "203.0.113.7", fields["ip"])
}

func TestMetricsSink_CountsPerCategory(t *testing.T) {
	counter := &countingCounter{}
	sink := NewMetricsSink(counter)

	sink.Record(context.Background(), sampleEvent())
	sink.Record(context.Background(), sampleEvent())
	sink.Record(context.Background(), Event{Category: CategoryEmptyUserAgent})

	assert.Equal(t, 2, counter.counts["sql_injection_attempt"])
	assert.Equal(t, 1, counter.counts["empty_user_agent"])

	assert.NotPanics(t, func() { NewMetricsSink(nil).Record(context.Background(), sampleEvent()) })
}

func TestStreamValues(t *testing.T) {
	values := streamValues(sampleEvent())

	assert.Equal(t, "sql_injection_attempt", values["category"])
	assert.Equal(t, "' UNION SELECT 1", values["value"])
	assert.Equal(t, fixedNow.Format(time.RFC3339Nano), values["detected_at"])
}

func TestStreamSink_WriteFailureIsLoggedNotRaised(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	sink := NewStreamSink(client, "security:events", 100, zap.New(core))

	assert.NotPanics(t, func() { sink.Record(context.Background(), sampleEvent()) })
	assert.Equal(t, 1, logs.FilterMessage("security event stream write failed").Len())
}

func TestStreamSink_NilClientIsNoop(t *testing.T) {
	sink := NewStreamSink(nil, "security:events", 0, zap.NewNop())
	assert.NotPanics(t, func() { sink.Record(context.Background(), sampleEvent()) })
}
