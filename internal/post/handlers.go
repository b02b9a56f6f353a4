package post

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
	"github.com/tsm98/social-mern/internal/auth"
	"github.com/tsm98/social-mern/internal/user"
	"github.com/tsm98/social-mern/internal/validate"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req TextRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Invalid("invalid payload")
		}
		if err := validate.Struct(req); err != nil {
			return err
		}
		p, err := svc.Create(c.UserContext(), auth.UserID(c), req.Text)
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(p)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		posts, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(posts)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(p)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), auth.UserID(c), c.Params("id")); err != nil {
			return toAPIError(err)
		}
		return c.JSON(fiber.Map{"msg": "Post removed"})
	})

	r.Put("/like/:id", authMiddleware, func(c *fiber.Ctx) error {
		likes, err := svc.Like(c.UserContext(), c.Params("id"), auth.UserID(c))
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(likes)
	})

	r.Put("/unlike/:id", authMiddleware, func(c *fiber.Ctx) error {
		likes, err := svc.Unlike(c.UserContext(), c.Params("id"), auth.UserID(c))
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(likes)
	})

	r.Post("/comment/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req TextRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Invalid("invalid payload")
		}
		if err := validate.Struct(req); err != nil {
			return err
		}
		comments, err := svc.Comment(c.UserContext(), c.Params("id"), auth.UserID(c), req.Text)
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(comments)
	})

	r.Delete("/comment/:id/:comment_id", authMiddleware, func(c *fiber.Ctx) error {
		comments, err := svc.Uncomment(c.UserContext(), c.Params("id"), auth.UserID(c), c.Params("comment_id"))
		if err != nil {
			return toAPIError(err)
		}
		return c.JSON(comments)
	})
}

func toAPIError(err error) error {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return apierr.NotFound("Post not found")
	case errors.Is(err, ErrCommentNotFound):
		return apierr.NotFound("Comment does not exist")
	case errors.Is(err, ErrAlreadyLiked):
		return apierr.BadRequest("Post already liked")
	case errors.Is(err, ErrNotLiked):
		return apierr.BadRequest("Post has not yet been liked")
	case errors.Is(err, ErrNotAuthor):
		return apierr.Unauthorized("User not authorized")
	case errors.Is(err, ErrEmptyText):
		return apierr.List(fiber.StatusBadRequest, apierr.Message{Msg: "text is required", Param: "text"})
	case errors.Is(err, ErrStale):
		return apierr.Conflict("Post was modified concurrently")
	case errors.Is(err, user.ErrUserNotFound):
		return apierr.Unauthorized("User no longer exists")
	default:
		return err
	}
}
