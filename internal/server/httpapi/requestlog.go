package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the per-request ULID in responses.
const RequestIDHeader = "X-Request-ID"

// requestLogger tags each request with a ULID, then logs and counts it once
// the handler chain returns.
func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	id := ulid.Make().String()
	c.Set(RequestIDHeader, id)

	chainErr := c.Next()
	if chainErr != nil {
		if err := s.errorHandler(c, chainErr); err != nil {
			return err
		}
	}

	// c.Method() aliases the request buffer, which fasthttp reuses.
	method := utils.CopyString(c.Method())
	status := c.Response().StatusCode()
	route := c.Route().Path
	latency := time.Since(start)

	s.metrics.ObserveHTTP(method, route, status, latency)
	s.logger.Info(c.UserContext(), "request",
		"request_id", id,
		"method", method,
		"path", c.Path(),
		"status", status,
		"latency_ms", latency.Milliseconds(),
	)

	return nil
}
