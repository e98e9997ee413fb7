// Package server bootstraps the HTTP serving layer around the prompt pipeline.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/voyago/concierge/internal/profile"
	"github.com/voyago/concierge/server/middleware"
	apiv1 "github.com/voyago/concierge/server/router/api/v1"
)

// Server hosts the v1 API on an echo instance.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer assembles the echo instance, middleware, and v1 routes.
func NewServer(p *profile.Profile) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewRateLimiter(0, 0).Echo())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			slog.Info("http request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	}))

	apiService := apiv1.NewAPIV1Service(p)
	apiService.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		Profile:    p,
		echoServer: e,
		apiService: apiService,
	}
}

// Start begins serving and blocks until the listener fails or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("addr", addr), slog.String("mode", s.Profile.Mode))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echoServer.Start(addr)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown drains in-flight requests and releases pipeline resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.echoServer.Shutdown(ctx)
	s.apiService.Close()
	slog.Info("server stopped")
	return err
}
