package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Question *QuestionHandler
	Answer   *AnswerHandler
	Resume   *ResumeHandler
	Health   *HealthHandler
}

// RegisterRoutes mounts the interview endpoints under /api/ai and the
// health checks at the root.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Jemyeonso APP is running!"})
	})
	app.Get("/health", h.Health.HandleHealth)
	app.Get("/storage/health", h.Health.HandleStorageHealth)

	api := app.Group("/api/ai")

	api.Post("/questions", h.Question.HandleGenerate)
	api.Post("/questions/followup", h.Question.HandleFollowUp)
	api.Get("/questions/cache/stats", h.Question.HandleCacheStats)
	api.Delete("/questions/cache/:documentId", h.Question.HandleClearCache)

	api.Post("/answers/analyze", h.Answer.HandleAnalyze)
	api.Post("/answers/analyze/async", h.Answer.HandleAnalyzeAsync)
	api.Get("/answers/analyses/:id", h.Answer.HandleGetAnalysis)

	api.Post("/resume/upload", h.Resume.HandleUpload)
	api.Post("/resume/pii-check", h.Resume.HandlePIICheck)
	api.Post("/resume/pii-log", h.Resume.HandlePIILog)
	api.Post("/resume/pii-upload", h.Resume.HandlePIIUpload)
}

// ErrorHandler renders errors that escape a handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
