package middleware

import (
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// IdentityRequired accepts requests carrying a valid identity token as a
// Bearer credential and stores its claims for GetIdentity. Bearer tokens go
// through the same TokenVerifier as sign-in tokens.
func IdentityRequired(verifier *services.TokenVerifier) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: invalid or expired token",
		})
	}

	return jwtware.New(jwtware.Config{
		KeyFunc: verifier.Keyfunc(),
		Claims:  &services.GoogleClaims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			// re-parse with the verifier's method, iat and leeway options
			identity, err := verifier.Verify(c.UserContext(), token.Raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(identityKey, identity)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// GetIdentity returns the claims stored by IdentityRequired, or nil.
func GetIdentity(c *fiber.Ctx) *services.IdentityClaims {
	if identity, ok := c.Locals(identityKey).(*services.IdentityClaims); ok {
		return identity
	}
	return nil
}
