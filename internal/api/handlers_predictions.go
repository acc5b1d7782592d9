package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

const defaultHistoryDays = 30

func (handler *Handler) CurrentPrediction(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	targetDate := time.Now()
	if raw := c.Query("target_date"); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
		}
		targetDate = parsed
	}

	prediction, err := handler.predictionService.CurrentPrediction(user.ID, targetDate)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return apiError(c, fiber.StatusNotFound, "profile not found")
		}
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("prediction failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to compute prediction")
	}
	return c.JSON(prediction)
}

func (handler *Handler) Retrain(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	outcomes := handler.retrainService.RetrainAll(user.ID)
	return c.JSON(fiber.Map{"results": outcomes})
}

func (handler *Handler) SevenDayPlan(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	plan, err := handler.planner.SevenDayPlan(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return apiError(c, fiber.StatusNotFound, "profile not found")
		}
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("planning failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to build plan")
	}
	return c.JSON(fiber.Map{"plan": plan})
}

func (handler *Handler) ModelStatus(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	report, err := handler.predictionService.Status(user.ID)
	if err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("model status failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load model status")
	}
	return c.JSON(report)
}

func (handler *Handler) PredictionHistory(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	endDate := services.DateOnly(time.Now())
	startDate := endDate.AddDate(0, 0, -(defaultHistoryDays - 1))

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		return apiError(c, fiber.StatusBadRequest, "end_date must not precede start_date")
	}

	entries, err := handler.predictionService.History(user.ID, startDate, endDate)
	if err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("prediction history failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load prediction history")
	}
	return c.JSON(fiber.Map{"history": entries})
}
