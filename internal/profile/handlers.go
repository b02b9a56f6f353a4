package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
	"github.com/tsm98/social-mern/internal/auth"
	"github.com/tsm98/social-mern/internal/user"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.ByUser(c.UserContext(), auth.UserID(c))
		if errors.Is(err, ErrProfileNotFound) {
			return apierr.BadRequest("There is no profile for this user")
		}
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req UpsertRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Invalid("invalid payload")
		}
		p, err := svc.Upsert(c.UserContext(), auth.UserID(c), req)
		if errors.Is(err, user.ErrUserNotFound) {
			return apierr.Unauthorized("User no longer exists")
		}
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		profiles, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(profiles)
	})

	r.Get("/user/:user_id", func(c *fiber.Ctx) error {
		p, err := svc.ByUser(c.UserContext(), c.Params("user_id"))
		if errors.Is(err, ErrProfileNotFound) {
			return apierr.BadRequest("Profile not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	r.Delete("/", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteAccount(c.UserContext(), auth.UserID(c)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"msg": "User deleted"})
	})
}
