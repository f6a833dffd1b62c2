package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func newTestMiddleware(perSecond rate.Limit, burst int) *middleware {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &middleware{
		rateLimitter:        newRateLimiter(perSecond, burst),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddleware(100, 100)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 26 || resp.Header.Get(RequestIDKey) != string(body) {
		t.Errorf("expected a generated ULID echoed in the header, got %q / %q", body, resp.Header.Get(RequestIDKey))
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, _ = app.Test(req)
	body, _ = io.ReadAll(resp.Body)
	if string(body) != "client-supplied" {
		t.Errorf("expected the client request id to be kept, got %q", body)
	}
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddleware(rate.Every(1<<62), 2)
	app := fiber.New()
	app.Use(m.NewRateLimiter)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	want := []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}
	for i, code := range want {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != code {
			t.Errorf("request %d: status %d, want %d", i, resp.StatusCode, code)
		}
	}
}

func TestSummarizeRequestBody(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	got := summarizeRequestBody([]byte(`{"message":"` + string(long) + `"}`))
	if len(got) > maxLoggedMessage+40 {
		t.Errorf("expected message to be truncated, got %d chars", len(got))
	}
	if summarizeRequestBody([]byte("plain")) != "[non-JSON body]" {
		t.Error("expected non-JSON marker")
	}
}
