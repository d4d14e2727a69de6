package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	"github.com/dmitrijs2005/arondight/internal/server/metrics"
	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const identityKey ctxKey = "identity"

// localsIdentity is the fiber locals key holding the verified claims.
const localsIdentity = "identity"

// IdentityFromContext returns the claims stored by the auth gate.
func IdentityFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(identityKey).(*auth.Claims)
	return c, ok && c != nil
}

func withIdentity(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey, c)
}

// extractToken accepts either a bare token or "Bearer <token>".
func extractToken(header string) string {
	h := strings.TrimSpace(header)
	scheme := common.BearerScheme
	if len(h) > len(scheme) && strings.EqualFold(h[:len(scheme)], scheme) && h[len(scheme)] == ' ' {
		return strings.TrimSpace(h[len(scheme):])
	}
	return h
}

// authenticate verifies the token in header. Every failure matches
// common.ErrUnauthorized; the cause is kept for logging only.
func (s *HTTPServer) authenticate(header string) (*auth.Claims, error) {
	token := extractToken(header)
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", common.ErrUnauthorized)
	}

	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}
	return claims, nil
}

// gate rejects the request with 401 unless it carries a valid session token.
// On success the claims are available through c.Locals and
// IdentityFromContext(c.UserContext()).
func (s *HTTPServer) gate(c *fiber.Ctx) error {
	claims, err := s.authenticate(c.Get(common.AccessTokenHeaderName))
	if err != nil {
		s.metrics.RecordAuth("gate", metrics.OutcomeRejected)
		s.logger.Debug(c.UserContext(), "token rejected", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": msgAuthFailed})
	}

	s.metrics.RecordAuth("gate", metrics.OutcomeSuccess)
	c.Locals(localsIdentity, claims)
	c.SetUserContext(withIdentity(c.UserContext(), claims))

	return c.Next()
}
