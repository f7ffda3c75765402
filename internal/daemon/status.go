package daemon

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samcharles93/elfinspect/internal/version"
)

// Health is the body of GET /healthz.
type Health struct {
	Status    string       `json:"status"`
	Listening bool         `json:"listening"`
	Version   version.Info `json:"version"`
}

// StatusHandler serves /healthz and /metrics for s. It only reads the
// ready channel and the registered collectors, so it is safe to serve from
// another goroutine while s runs.
func StatusHandler(s *Server, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Recover())

	metrics := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})

	e.GET("/healthz", func(c *echo.Context) error {
		h := Health{Status: "ok", Version: version.Resolve()}
		select {
		case <-s.Ready():
			h.Listening = true
		default:
			h.Status = "starting"
		}
		body, err := json.Marshal(h)
		if err != nil {
			return err
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		res.WriteHeader(http.StatusOK)
		_, err = res.Write(body)
		return err
	})
	e.GET("/metrics", func(c *echo.Context) error {
		metrics.ServeHTTP(c.Response(), c.Request())
		return nil
	})
	return e
}

// ServeStatus runs the status endpoints on addr until ctx is cancelled.
func ServeStatus(ctx context.Context, addr string, e *echo.Echo) error {
	sc := echo.StartConfig{
		Address: addr,
		BeforeServeFunc: func(srv *http.Server) error {
			srv.ReadHeaderTimeout = 5 * time.Second
			return nil
		},
	}
	return sc.Start(ctx, e)
}
