package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/observability/metrics"
)

// Metrics records one observation per request labelled by the route
// pattern, so /api/mariages/12 and /api/mariages/13 share a series.
// statusOf gives the status the error handler will write for a returned
// error; nil counts every error as a 500.
func Metrics(statusOf func(error) int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				var he *echo.HTTPError
				switch {
				case errors.As(err, &he):
					status = he.Code
				case statusOf != nil:
					status = statusOf(err)
				default:
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveHTTPRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
