package handlers

import "github.com/gofiber/fiber/v2"

// Index handles GET / with a map of the API.
func Index(version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Event Management API",
			"version": version,
			"endpoints": fiber.Map{
				"websocket": "/ws",
				"auth":      "/api/auth",
				"events":    "/api/events",
				"health":    "/health/ready",
				"metrics":   "/metrics",
			},
		})
	}
}
