package api

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Executor runs one oracle invocation.
type Executor interface {
	Handle(ctx context.Context, request []byte, settings string) ([]byte, error)
}

type Server struct {
	echo     *echo.Echo
	executor Executor
	logger   *zap.Logger
}

type ExecuteRequest struct {
	Request  hexutil.Bytes `json:"request"`
	Settings string        `json:"settings"`
}

type ExecuteResponse struct {
	Response hexutil.Bytes `json:"response"`
}

func NewServer(ex Executor, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s := &Server{
		echo:     e,
		executor: ex,
		logger:   logger,
	}

	s.routes(gatherer)

	return s
}

func (s *Server) routes(gatherer prometheus.Gatherer) {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	s.echo.POST("/v1/execute", s.execute)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) execute(c echo.Context) error {
	var req ExecuteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "request must be a 0x-prefixed hex string"})
	}

	out, err := s.executor.Handle(c.Request().Context(), req.Request, req.Settings)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ExecuteResponse{Response: out})
}
