package middleware

import (
	"SecondSonsNLU/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

const maxLoggedMessage = 200

func (m *middleware) NewLoggingMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	status := c.Response().StatusCode()
	fields := log.Fields{
		"request_id":    m.GetRequestID(c),
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"latency_ms":    time.Since(start).Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 {
		fields["request_body"] = summarizeRequestBody(body)
	}

	entry := m.log.WithFields(fields)
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("Server error")
	case status >= fiber.StatusBadRequest:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}

// summarizeRequestBody keeps the log line bounded; user messages can be long.
func summarizeRequestBody(body []byte) string {
	var payload map[string]interface{}
	if err := jsoniter.Unmarshal(body, &payload); err != nil {
		return "[non-JSON body]"
	}

	if msg, ok := payload["message"].(string); ok && len(msg) > maxLoggedMessage {
		payload["message"] = msg[:maxLoggedMessage] + "..."
	}

	out, err := jsoniter.MarshalToString(payload)
	if err != nil {
		return "[unencodable body]"
	}
	return out
}
