package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a UUID so log lines from one request can
// be correlated. An incoming header wins so upstream proxies keep their id.
func RequestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("requestID", id)
	c.Set(RequestIDHeader, id)
	return c.Next()
}
