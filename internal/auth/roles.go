package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-report-service/internal/domain"
	apperrors "github.com/spec-kit/civic-report-service/pkg/util"
)

// HasRole is the capability check behind role-gated routes. Kept separate from
// the middleware so additional roles or scopes slot in without touching call
// sites.
func HasRole(principal *Principal, allowed ...domain.Role) bool {
	if principal == nil {
		return false
	}
	for _, role := range allowed {
		if principal.Role == role {
			return true
		}
	}
	return false
}

// RequireRole ensures the principal holds one of the allowed roles. Must run
// after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !HasRole(principal, allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is attached, regardless of role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
