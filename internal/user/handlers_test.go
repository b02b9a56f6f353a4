package user

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/tsm98/social-mern/internal/apierr"
)

func newApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierr.Handler})
	RegisterRoutes(app.Group("/users"), svc)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestRegisterHandler(t *testing.T) {
	fastHash(t)
	app := newApp(NewService(newFakeStore()))

	status, body := post(t, app, `{"name":"Ann","email":"ann@example.com","password":"secret1"}`)
	if status != http.StatusOK || !strings.Contains(body, "User registered") {
		t.Fatalf("expected 200, got %d %s", status, body)
	}

	status, body = post(t, app, `{"name":"Ann","email":"ann@example.com","password":"secret1"}`)
	if status != http.StatusBadRequest || !strings.Contains(body, `"errors"`) || !strings.Contains(body, "User already exists") {
		t.Fatalf("expected duplicate error, got %d %s", status, body)
	}
}

func TestRegisterHandlerValidation(t *testing.T) {
	app := newApp(NewService(newFakeStore()))

	status, body := post(t, app, `{"email":"ann@example.com","password":"secret1"}`)
	if status != http.StatusBadRequest || !strings.Contains(body, "name is required") {
		t.Fatalf("expected validation error, got %d %s", status, body)
	}

	status, _ = post(t, app, `{not json`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad payload, got %d", status)
	}
}

func TestRegisterHandlerPaddedEmail(t *testing.T) {
	fastHash(t)
	app := newApp(NewService(newFakeStore()))

	status, body := post(t, app, `{"name":"Ann","email":"  Ann@Example.com ","password":"secret1"}`)
	if status != http.StatusOK {
		t.Fatalf("expected padded email to register, got %d %s", status, body)
	}
	status, body = post(t, app, `{"name":"Ann","email":"ann@example.com","password":"secret1"}`)
	if status != http.StatusBadRequest || !strings.Contains(body, "User already exists") {
		t.Fatalf("expected duplicate after normalizing, got %d %s", status, body)
	}
}
