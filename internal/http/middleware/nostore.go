package middleware

import "github.com/gofiber/fiber/v2"

// NoStore disables client and proxy caching for the wrapped routes.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Set(fiber.HeaderPragma, "no-cache")
		c.Set(fiber.HeaderExpires, "0")
		c.Set("Surrogate-Control", "no-store")
		return c.Next()
	}
}
