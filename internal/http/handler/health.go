package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Check probes one dependency. sql.DB.PingContext and storage.Storage.Ping fit as is.
type Check func(ctx context.Context) error

// HealthCheck runs every dependency check and reports 503 naming the ones that failed.
//
// @Summary  Dependency health
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]any
// @Failure  503  {object}  errorPayload
// @Router   /health [get]
func HealthCheck(checks map[string]Check) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		status := make(map[string]string, len(names))
		var down []string
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status[name] = "down"
				down = append(down, name)
				continue
			}
			status[name] = "up"
		}
		if len(down) > 0 {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
				"dependência indisponível: "+strings.Join(down, ", "))
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "checks": status})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
//
// @Summary  Liveness probe
// @Tags     ops
// @Success  200
// @Router   /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Status reports that the API is online.
//
// @Summary  API status
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/status [get]
func Status() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "online", "timestamp": time.Now().UTC()})
	}
}
