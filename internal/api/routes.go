package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	profiles := api.Group("/profiles", handler.AuthRequired)
	profiles.Get("/me", handler.GetProfile)
	profiles.Post("/me", handler.CreateProfile)
	profiles.Put("/me", handler.UpdateProfile)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.CreatePeriod)
	periods.Get("/:id", handler.GetPeriod)
	periods.Put("/:id", handler.UpdatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	moods := api.Group("/moods", handler.AuthRequired)
	moods.Get("", handler.ListMoods)
	moods.Post("", handler.CreateMood)
	moods.Get("/:id", handler.GetMood)
	moods.Put("/:id", handler.UpdateMood)
	moods.Delete("/:id", handler.DeleteMood)

	predictions := api.Group("/predictions", handler.AuthRequired)
	predictions.Get("/current", handler.CurrentPrediction)
	predictions.Post("/retrain", handler.Retrain)
	predictions.Get("/7-day-plan", handler.SevenDayPlan)
	predictions.Get("/model-status", handler.ModelStatus)
	predictions.Get("/history", handler.PredictionHistory)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("/cycle-statistics", handler.CycleStatistics)
}
