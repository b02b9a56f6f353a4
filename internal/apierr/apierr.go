// Package apierr carries HTTP-facing errors and renders them as JSON.
package apierr

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Message is one entry of a list response: {"msg": ..., "param": ...}.
type Message struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Error is an error with a status code. When list is set it renders as
// {"errors":[...]}, otherwise as {"msg": ...}.
type Error struct {
	Status   int
	Messages []Message
	list     bool
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		parts = append(parts, m.Msg)
	}
	return strings.Join(parts, "; ")
}

func New(status int, msg string) *Error {
	return &Error{Status: status, Messages: []Message{{Msg: msg}}}
}

func List(status int, msgs ...Message) *Error {
	return &Error{Status: status, Messages: msgs, list: true}
}

func BadRequest(msg string) *Error   { return New(fiber.StatusBadRequest, msg) }
func Unauthorized(msg string) *Error { return New(fiber.StatusUnauthorized, msg) }
func NotFound(msg string) *Error     { return New(fiber.StatusNotFound, msg) }
func Conflict(msg string) *Error     { return New(fiber.StatusConflict, msg) }

// Invalid builds a 400 list error from bare messages.
func Invalid(msgs ...string) *Error {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Message{Msg: m})
	}
	return List(fiber.StatusBadRequest, out...)
}

// Handler is the fiber ErrorHandler used by the server.
func Handler(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return write(c, apiErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		}
		return write(c, New(fiberErr.Code, fiberErr.Message))
	}

	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return write(c, New(fiber.StatusInternalServerError, "Server Error"))
}

func write(c *fiber.Ctx, e *Error) error {
	c.Status(e.Status)
	if e.list {
		return c.JSON(fiber.Map{"errors": e.Messages})
	}
	msg := ""
	if len(e.Messages) > 0 {
		msg = e.Messages[0].Msg
	}
	return c.JSON(fiber.Map{"msg": msg})
}
