package handler

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"multasapi/internal/service"
)

// successEnvelope wraps payloads of the storage and processed-files endpoints.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successEnvelope{Success: true, Data: data})
}

// requestCtx carries the request ID into the service layer for audit rows and events.
func requestCtx(c *fiber.Ctx) context.Context {
	return service.WithRequestID(c.UserContext(), requestIDFromCtx(c))
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: key, Message: key + " deve ser um número inteiro"}
	}
	return n, nil
}

// wildcardPath returns the decoded object key captured by a trailing "*" route segment.
func wildcardPath(c *fiber.Ctx) (string, error) {
	p, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return "", &service.ValidationError{Field: "path", Message: "caminho mal codificado"}
	}
	return p, nil
}
