package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
	"github.com/tsm98/social-mern/internal/user"
	"github.com/tsm98/social-mern/internal/validate"
)

// Users is what the login and current-user routes need from the user service.
type Users interface {
	Authenticate(ctx context.Context, email, password string) (user.User, error)
	Get(ctx context.Context, id string) (user.User, error)
}

func RegisterRoutes(r fiber.Router, users Users, tokens *TokenService, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		u, err := users.Get(c.UserContext(), UserID(c))
		if errors.Is(err, user.ErrUserNotFound) {
			return apierr.Unauthorized("User no longer exists")
		}
		if err != nil {
			return err
		}
		return c.JSON(u)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req user.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Invalid("invalid payload")
		}
		req.Email = user.NormalizeEmail(req.Email)
		if err := validate.Struct(req); err != nil {
			return err
		}

		u, err := users.Authenticate(c.UserContext(), req.Email, req.Password)
		if errors.Is(err, user.ErrInvalidCredentials) {
			return apierr.Invalid("Invalid credentials")
		}
		if err != nil {
			return err
		}

		token, err := tokens.Issue(u.ID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"token": token})
	})
}
