package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

type moodRequest struct {
	Date        string `json:"date"`
	EnergyLevel int    `json:"energy_level"`
	Mood        string `json:"mood"`
	Symptoms    string `json:"symptoms"`
	Notes       string `json:"notes"`
}

func (handler *Handler) ListMoods(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	from, ok := parseOptionalDay(c.Query("start_date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	to, ok := parseOptionalDay(c.Query("end_date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	moods, err := handler.repositories.Moods.ListByUserRange(user.ID, from, to)
	if err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("listing moods failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to list mood logs")
	}
	return c.JSON(moods)
}

func (handler *Handler) GetMood(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	moodID, err := c.ParamsInt("id")
	if err != nil || moodID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid mood id")
	}

	mood, found, err := handler.repositories.Moods.FindByID(user.ID, uint(moodID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load mood log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "mood log not found")
	}
	return c.JSON(mood)
}

func (handler *Handler) CreateMood(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	day, request, message := parseMoodRequest(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	exists, err := handler.repositories.Moods.ExistsByUserAndDate(user.ID, day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save mood log")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "a mood log for this date already exists")
	}

	mood := models.DailyMood{
		UserID:      user.ID,
		Date:        day,
		DayOfCycle:  handler.cachedDayOfCycle(user.ID, day),
		EnergyLevel: request.EnergyLevel,
		Mood:        request.Mood,
		Symptoms:    request.Symptoms,
		Notes:       request.Notes,
	}
	if err := handler.repositories.Moods.Create(&mood); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("creating mood log failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save mood log")
	}
	return c.Status(fiber.StatusCreated).JSON(mood)
}

func (handler *Handler) UpdateMood(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	moodID, err := c.ParamsInt("id")
	if err != nil || moodID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid mood id")
	}

	mood, found, err := handler.repositories.Moods.FindByID(user.ID, uint(moodID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load mood log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "mood log not found")
	}

	day, request, message := parseMoodRequest(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if !day.Equal(mood.Date) {
		exists, err := handler.repositories.Moods.ExistsByUserAndDate(user.ID, day)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to save mood log")
		}
		if exists {
			return apiError(c, fiber.StatusConflict, "a mood log for this date already exists")
		}
	}

	mood.Date = day
	mood.DayOfCycle = handler.cachedDayOfCycle(user.ID, day)
	mood.EnergyLevel = request.EnergyLevel
	mood.Mood = request.Mood
	mood.Symptoms = request.Symptoms
	mood.Notes = request.Notes
	if err := handler.repositories.Moods.Save(&mood); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("saving mood log failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save mood log")
	}
	return c.JSON(mood)
}

func (handler *Handler) DeleteMood(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	moodID, err := c.ParamsInt("id")
	if err != nil || moodID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid mood id")
	}

	_, found, err := handler.repositories.Moods.FindByID(user.ID, uint(moodID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete mood log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "mood log not found")
	}

	if err := handler.repositories.Moods.Delete(user.ID, uint(moodID)); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("deleting mood log failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete mood log")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// cachedDayOfCycle computes the day-of-cycle snapshot stored on the log.
// Missing profile or anchor is not an error at logging time; the field
// just stays empty and the row is skipped at training time.
func (handler *Handler) cachedDayOfCycle(userID uint, day time.Time) *int {
	dayOfCycle, err := handler.cycleCalculator.DayOfCycle(userID, day)
	if err != nil {
		return nil
	}
	return &dayOfCycle
}

func parseMoodRequest(c *fiber.Ctx) (time.Time, moodRequest, string) {
	var request moodRequest
	if err := c.BodyParser(&request); err != nil {
		return time.Time{}, request, "invalid input"
	}

	day, err := services.ParseDay(request.Date)
	if err != nil {
		return time.Time{}, request, "date must be YYYY-MM-DD"
	}
	if request.EnergyLevel < models.EnergyLow || request.EnergyLevel > models.EnergyHigh {
		return time.Time{}, request, "energy_level must be 0, 1 or 2"
	}
	if request.Mood != "" && !containsLabel(models.MoodLabels, request.Mood) {
		return time.Time{}, request, "mood must be one of the known moods"
	}
	if request.Symptoms != "" && !containsLabel(models.KnownSymptoms, request.Symptoms) {
		return time.Time{}, request, "symptoms must be one of the known symptoms"
	}
	return day, request, ""
}

func containsLabel(labels []string, value string) bool {
	for _, label := range labels {
		if label == value {
			return true
		}
	}
	return false
}
