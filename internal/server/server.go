// Package server provides the REST API for the calculator.
package server

import (
	"context"
	"errors"
	"time"

	"yqhp/calculator/internal/config"
	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/logger"
	"yqhp/calculator/internal/middleware"
	"yqhp/calculator/internal/response"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server represents the REST API server.
type Server struct {
	app       *fiber.App
	evaluator expression.Evaluator
	stats     *Stats
	server    config.ServerConfig
	display   config.DisplayConfig
}

// NewServer creates a new REST API server. A nil evaluator uses the default.
func NewServer(cfg *config.Config, evaluator expression.Evaluator) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if evaluator == nil {
		evaluator = expression.NewEvaluator()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          customErrorHandler,
		AppName:               cfg.App.Name,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:       app,
		evaluator: evaluator,
		stats:     NewStats(),
		server:    cfg.Server,
		display:   cfg.Display,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.app.Use(middleware.Recover())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger())

	if s.server.EnableCORS {
		s.app.Use(middleware.CORS())
	}
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.healthCheck)

	api := s.app.Group("/api/v1")
	api.Get("/health", s.healthCheck)

	calc := api.Group("/calc")
	calc.Post("/evaluate", s.evaluate)
	calc.Post("/display", s.displayCalculate)
	calc.Post("/keys", s.replayKeys)
	calc.Get("/functions", s.listFunctions)
	calc.Get("/stats", s.getStats)

	s.app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "route "+c.Method()+" "+c.Path()+" not found")
	})
}

// Start starts the REST API server.
func (s *Server) Start() error {
	logger.Info("http server listening", zap.String("address", s.server.Address))
	return s.app.Listen(s.server.Address)
}

// StartWithContext starts the server and shuts it down when ctx is done.
func (s *Server) StartWithContext(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	logger.Info("http server shutting down")
	return s.app.Shutdown()
}

// ShutdownWithTimeout gracefully shuts down the server with a timeout.
func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Stats returns the evaluation statistics.
func (s *Server) Stats() *Stats {
	return s.stats
}

// customErrorHandler handles errors returned by handlers.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := response.MsgServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return response.Error(c, code, message)
}
