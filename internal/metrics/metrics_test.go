package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/recipes/:slug", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipes/:slug", "200"))

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/negroni", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipes/:slug", "200"))
	assert.Equal(t, before+1, after)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "mymixes_http_requests_total"))
}

func TestReviewCounter(t *testing.T) {
	before := testutil.ToFloat64(ReviewsCreated.WithLabelValues(SourceQR))
	ReviewsCreated.WithLabelValues(SourceQR).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ReviewsCreated.WithLabelValues(SourceQR)))
}

func TestMiddlewareRecordsHandledErrorStatus(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		},
	})
	app.Use(Middleware())
	app.Get("/private", func(c *fiber.Ctx) error {
		return errors.New("no token")
	})

	unauthorized := HTTPRequests.WithLabelValues("GET", "/private", "401")
	internal := HTTPRequests.WithLabelValues("GET", "/private", "500")
	before401, before500 := testutil.ToFloat64(unauthorized), testutil.ToFloat64(internal)

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, before401+1, testutil.ToFloat64(unauthorized))
	assert.Equal(t, before500, testutil.ToFloat64(internal))
}
