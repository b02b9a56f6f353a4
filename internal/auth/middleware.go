package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
)

const DefaultTokenHeader = "x-auth-token"

// LocalsUserID is the fiber Locals key the gate stores the user id under.
const LocalsUserID = "user_id"

type identityKey struct{}

// Middleware is the auth gate: it requires a valid token in the configured
// header (or an Authorization bearer) and stores the user id for handlers.
func Middleware(tokens *TokenService, header string) fiber.Handler {
	if header == "" {
		header = DefaultTokenHeader
	}
	return func(c *fiber.Ctx) error {
		userID, err := authenticate(tokens, header, c)
		if errors.Is(err, ErrMissingToken) {
			return apierr.Unauthorized("No token, authorization denied")
		}
		if err != nil {
			return apierr.Unauthorized("Token is not valid")
		}

		c.Locals(LocalsUserID, userID)
		c.SetUserContext(WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

func authenticate(tokens *TokenService, header string, c *fiber.Ctx) (string, error) {
	token := tokenFromRequest(c, header)
	if token == "" {
		return "", ErrMissingToken
	}
	return tokens.Verify(token)
}

func tokenFromRequest(c *fiber.Ctx, header string) string {
	if token := strings.TrimSpace(c.Get(header)); token != "" {
		return token
	}
	return parseBearer(c.Get(fiber.HeaderAuthorization))
}

func parseBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the id the gate attached to the request, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}
