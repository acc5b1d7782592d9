package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

type profileRequest struct {
	HeightCM          int     `json:"height_cm"`
	WeightKG          float64 `json:"weight_kg"`
	CycleLength       int     `json:"cycle_length"`
	LutealLength      int     `json:"luteal_length"`
	MensesLength      int     `json:"menses_length"`
	UnusualBleeding   bool    `json:"unusual_bleeding"`
	NumberOfPeak      int     `json:"number_of_peak"`
	PeriodRegularity  string  `json:"period_regularity"`
	PeriodDescription string  `json:"period_description"`
	MedicalConditions string  `json:"medical_conditions"`
	LastPeriodStart   string  `json:"last_period_start"`
	LastPeriodEnd     string  `json:"last_period_end"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	profile, found, err := handler.repositories.Profiles.FindByUserID(user.ID)
	if err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("loading profile failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}
	return c.JSON(profile)
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	_, found, err := handler.repositories.Profiles.FindByUserID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if found {
		return apiError(c, fiber.StatusConflict, "profile already exists")
	}

	profile := models.CycleProfile{UserID: user.ID}
	if message := applyProfileRequest(c, &profile); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	if err := handler.repositories.Profiles.Create(&profile); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("creating profile failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	profile, found, err := handler.repositories.Profiles.FindByUserID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}

	if message := applyProfileRequest(c, &profile); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	if err := handler.repositories.Profiles.Save(&profile); err != nil {
		handler.logger.Error().Err(err).Uint("user_id", user.ID).Msg("saving profile failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	return c.JSON(profile)
}

func applyProfileRequest(c *fiber.Ctx, profile *models.CycleProfile) string {
	var request profileRequest
	if err := c.BodyParser(&request); err != nil {
		return "invalid input"
	}
	if message := validateProfileRequest(request); message != "" {
		return message
	}

	lastStart, ok := parseOptionalDay(request.LastPeriodStart)
	if !ok {
		return "last_period_start must be YYYY-MM-DD"
	}
	lastEnd, ok := parseOptionalDay(request.LastPeriodEnd)
	if !ok {
		return "last_period_end must be YYYY-MM-DD"
	}
	if lastStart != nil && lastEnd != nil && lastEnd.Before(*lastStart) {
		return "last_period_end must not precede last_period_start"
	}

	profile.HeightCM = request.HeightCM
	profile.WeightKG = request.WeightKG
	profile.CycleLength = request.CycleLength
	profile.LutealLength = request.LutealLength
	profile.MensesLength = request.MensesLength
	profile.UnusualBleeding = request.UnusualBleeding
	profile.NumberOfPeak = request.NumberOfPeak
	profile.PeriodRegularity = request.PeriodRegularity
	profile.PeriodDescription = request.PeriodDescription
	profile.MedicalConditions = request.MedicalConditions
	profile.LastPeriodStart = lastStart
	profile.LastPeriodEnd = lastEnd
	return ""
}

func validateProfileRequest(request profileRequest) string {
	switch {
	case request.HeightCM < 100 || request.HeightCM > 250:
		return "height_cm must be between 100 and 250"
	case request.WeightKG < 30 || request.WeightKG > 200:
		return "weight_kg must be between 30 and 200"
	case request.CycleLength < 20 || request.CycleLength > 40:
		return "cycle_length must be between 20 and 40"
	case request.LutealLength < 10 || request.LutealLength > 20:
		return "luteal_length must be between 10 and 20"
	case request.LutealLength >= request.CycleLength:
		return "luteal_length must be shorter than cycle_length"
	case request.MensesLength < 2 || request.MensesLength > 10:
		return "menses_length must be between 2 and 10"
	case request.NumberOfPeak < 1 || request.NumberOfPeak > 5:
		return "number_of_peak must be between 1 and 5"
	}

	if request.PeriodRegularity != models.RegularityRegular && request.PeriodRegularity != models.RegularityIrregular {
		return "period_regularity must be regular or irregular"
	}
	if request.PeriodDescription != models.DescriptionUsual && request.PeriodDescription != models.DescriptionUnusual {
		return "period_description must be usual or unusual"
	}
	return ""
}

func parseOptionalDay(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	day, err := services.ParseDay(value)
	if err != nil {
		return nil, false
	}
	return &day, true
}
