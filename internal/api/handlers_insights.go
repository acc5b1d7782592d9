package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

func (handler *Handler) CycleStatistics(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	statistics, err := handler.cycleCalculator.Statistics(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return apiError(c, fiber.StatusNotFound, "profile not found")
		}
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("cycle statistics failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to compute cycle statistics")
	}
	return c.JSON(statistics)
}
