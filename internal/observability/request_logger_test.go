package observability

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger_SlowRequestsLogAtWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics, 10*time.Millisecond))
	app.Get("/fast", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/slow", func(c *fiber.Ctx) error {
		time.Sleep(30 * time.Millisecond)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fast", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/slow", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, logs.FilterMessage("request completed").Len())
	slow := logs.FilterMessage("slow request").All()
	require.Len(t, slow, 1)
	assert.Equal(t, zapcore.WarnLevel, slow[0].Level)
	assert.Equal(t, "/slow", slow[0].ContextMap()["path"])

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.SlowRequests["/slow|GET"])
	assert.Equal(t, int64(1), snap.Requests["/fast|GET|200"])
}

func TestRequestLogger_KeysOnRouteTemplate(t *testing.T) {
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics, 0))
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 50; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", fmt.Sprintf("/items/%d", i), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/missing-%d", i), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	snap := metrics.Snapshot()
	assert.Len(t, snap.Requests, 2)
	assert.Equal(t, int64(50), snap.Requests["/items/:id|GET|200"])
	assert.Equal(t, int64(50), snap.Requests[UnmatchedRoute+"|GET|404"])
}
