package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/models"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(contextUserKey).(models.User)
	return user, ok
}

func mustCurrentUser(c *fiber.Ctx) models.User {
	user, _ := currentUser(c)
	return user
}
