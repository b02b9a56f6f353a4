package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Invalid("invalid payload")
		}
		if _, err := svc.Register(c.UserContext(), req); err != nil {
			if errors.Is(err, ErrEmailTaken) {
				return apierr.Invalid("User already exists")
			}
			return err
		}
		return c.JSON(fiber.Map{"msg": "User registered"})
	})
}
