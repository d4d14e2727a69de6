// Package httpapi exposes the account flows over HTTP using fiber.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/arondight/internal/logging"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	"github.com/dmitrijs2005/arondight/internal/server/metrics"
	"github.com/dmitrijs2005/arondight/internal/server/models"
	"github.com/dmitrijs2005/arondight/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Accounts is the set of account flows served by the API.
type Accounts interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, in services.LoginInput) (string, error)
	Get(ctx context.Context, id string) (*models.AccountDetails, error)
	Update(ctx context.Context, id string, in services.UpdateInput) (string, error)
	Delete(ctx context.Context, id string) error
}

// TokenVerifier decodes and checks session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type HTTPServer struct {
	address         string
	accounts        Accounts
	verifier        TokenVerifier
	metrics         *metrics.Metrics
	logger          logging.Logger
	shutdownTimeout time.Duration
	app             *fiber.App
}

// NewHTTPServer builds the fiber app and registers every route. m may be nil,
// in which case /metrics is not served.
func NewHTTPServer(address string, l logging.Logger, accounts Accounts, verifier TokenVerifier,
	m *metrics.Metrics, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		accounts:        accounts,
		verifier:        verifier,
		metrics:         m,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()

	return s
}

func (s *HTTPServer) routes() {
	s.app.Use(s.requestLogger)

	users := s.app.Group("/users")
	users.Post("/register", s.register)
	users.Post("/login", s.login)
	users.Get("/auth-locked", s.gate, s.authLocked)
	users.Get("/:id", s.getUser)
	users.Put("/:id", s.updateUser)
	users.Delete("/:id", s.deleteUser)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}
}

// App returns the underlying fiber application.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}

// errorHandler renders errors that escape a handler, such as unknown routes.
func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgServerError

	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
		msg = fe.Message
	} else {
		s.logger.Error(c.UserContext(), "unhandled error", "error", err)
	}

	return c.Status(code).JSON(fiber.Map{"msg": msg})
}
