package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"multasapi/internal/http/middleware"
	"multasapi/internal/service"
	"multasapi/internal/upload"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// fail translates a service error into its HTTP response. notFound is the message used for
// service.ErrNotFound. Unrecognized errors are returned to Fiber so ErrorHandler logs them.
func fail(c *fiber.Ctx, err error, notFound string) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "formato de id inválido")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	case errors.Is(err, service.ErrDuplicate):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "recurso já existe")
	case errors.Is(err, service.ErrUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "serviço indisponível")
	case errors.Is(err, upload.ErrNoFiles):
		return writeError(c, fiber.StatusBadRequest, "NO_FILES", "nenhum arquivo foi enviado")
	case errors.Is(err, upload.ErrTooManyFiles):
		return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "muitos arquivos por requisição")
	case errors.Is(err, upload.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "arquivo muito grande")
	case errors.Is(err, upload.ErrInvalidType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "tipo de arquivo não permitido")
	default:
		return err
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Anything that is not a *fiber.Error is logged and reported as a 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			log.Error("unhandled request error",
				zap.String("request_id", requestIDFromCtx(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "requisição inválida")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "recurso não encontrado")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "método não permitido")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "requisição muito grande")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "serviço indisponível")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "erro interno do servidor")
		}
	}
}
