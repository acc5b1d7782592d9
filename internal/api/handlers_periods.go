package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

type periodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	from, ok := parseOptionalDay(c.Query("start_date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	to, ok := parseOptionalDay(c.Query("end_date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	records, err := handler.repositories.Periods.ListByUserRange(user.ID, from, to)
	if err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("listing periods failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to list periods")
	}
	return c.JSON(records)
}

func (handler *Handler) GetPeriod(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	recordID, err := c.ParamsInt("id")
	if err != nil || recordID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	record, found, err := handler.repositories.Periods.FindByID(user.ID, uint(recordID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "period not found")
	}
	return c.JSON(record)
}

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	startDate, endDate, message := parsePeriodRequest(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	exists, err := handler.repositories.Periods.ExistsByUserAndStartDate(user.ID, startDate)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save period")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "a period with this start date already exists")
	}

	record := models.PeriodRecord{UserID: user.ID, StartDate: startDate, EndDate: endDate}
	if err := handler.repositories.Periods.Create(&record); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("creating period failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save period")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	recordID, err := c.ParamsInt("id")
	if err != nil || recordID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	record, found, err := handler.repositories.Periods.FindByID(user.ID, uint(recordID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load period")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "period not found")
	}

	startDate, endDate, message := parsePeriodRequest(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if !startDate.Equal(record.StartDate) {
		exists, err := handler.repositories.Periods.ExistsByUserAndStartDate(user.ID, startDate)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to save period")
		}
		if exists {
			return apiError(c, fiber.StatusConflict, "a period with this start date already exists")
		}
	}

	record.StartDate = startDate
	record.EndDate = endDate
	if err := handler.repositories.Periods.Save(&record); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("saving period failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save period")
	}
	return c.JSON(record)
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	recordID, err := c.ParamsInt("id")
	if err != nil || recordID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	_, found, err := handler.repositories.Periods.FindByID(user.ID, uint(recordID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete period")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "period not found")
	}

	if err := handler.repositories.Periods.Delete(user.ID, uint(recordID)); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("deleting period failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete period")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parsePeriodRequest(c *fiber.Ctx) (time.Time, *time.Time, string) {
	var request periodRequest
	if err := c.BodyParser(&request); err != nil {
		return time.Time{}, nil, "invalid input"
	}

	startDate, err := services.ParseDay(request.StartDate)
	if err != nil {
		return time.Time{}, nil, "start_date must be YYYY-MM-DD"
	}
	endDate, ok := parseOptionalDay(request.EndDate)
	if !ok {
		return time.Time{}, nil, "end_date must be YYYY-MM-DD"
	}
	if endDate != nil && endDate.Before(startDate) {
		return time.Time{}, nil, "end_date must not precede start_date"
	}
	return startDate, endDate, ""
}
