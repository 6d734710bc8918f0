package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
	"jemyeonso/interview-ai/internal/services"
)

type QuestionHandler struct {
	generator  services.QuestionGenerator
	followUps  services.FollowUpGenerator
	interviews repositories.InterviewRepository
	cache      services.QuestionCache
}

func NewQuestionHandler(
	generator services.QuestionGenerator,
	followUps services.FollowUpGenerator,
	interviews repositories.InterviewRepository,
	cache services.QuestionCache,
) *QuestionHandler {
	return &QuestionHandler{
		generator:  generator,
		followUps:  followUps,
		interviews: interviews,
		cache:      cache,
	}
}

// HandleGenerate handles POST /questions
func (h *QuestionHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.JobType == "" || req.Level == "" || req.Category == "" || req.QuestionType == "" {
		return badRequest(c, "jobtype, level, category and question_type are required")
	}

	question, err := h.generator.Generate(c.UserContext(), services.QuestionRequest{
		JobType:      req.JobType,
		Level:        req.Level,
		Category:     req.Category,
		QuestionType: req.QuestionType,
		FileID:       req.FileID,
	})
	if err != nil {
		log.Printf("❌ Question generation failed: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "질문 생성 중 오류가 발생했습니다.", nil)
	}

	return respond(c, fiber.StatusOK, "질문을 생성했습니다.", models.GenerateQuestionResponse{
		Question: question,
	})
}

// HandleFollowUp handles POST /questions/followup
func (h *QuestionHandler) HandleFollowUp(c *fiber.Ctx) error {
	var req models.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.InterviewID == 0 || strings.TrimSpace(req.PreviousQuestion) == "" {
		return badRequest(c, "interview_id and previousQuestion are required")
	}

	interview, err := h.interviews.FindByID(req.InterviewID)
	if err != nil {
		log.Printf("❌ Interview context lookup failed: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "인터뷰 컨텍스트 조회 실패", nil)
	}

	followUp := h.followUps.Generate(c.UserContext(), req.PreviousQuestion, req.PreviousAnswer, interview.JobType)

	return respond(c, fiber.StatusOK, "꼬리질문을 생성했습니다.", followUp)
}

// HandleClearCache handles DELETE /questions/cache/:documentId
func (h *QuestionHandler) HandleClearCache(c *fiber.Ctx) error {
	documentID := c.Params("documentId")
	if documentID == "" {
		return badRequest(c, "documentId is required")
	}

	cleared, err := h.cache.ClearByDocument(c.UserContext(), documentID)
	if err != nil {
		log.Printf("❌ Failed to clear question cache: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "질문 캐시 삭제 중 오류가 발생했습니다.", nil)
	}

	return respond(c, fiber.StatusOK, "질문 캐시를 삭제했습니다.", fiber.Map{
		"document_id":     documentID,
		"cleared_entries": cleared,
	})
}

// HandleCacheStats handles GET /questions/cache/stats
func (h *QuestionHandler) HandleCacheStats(c *fiber.Ctx) error {
	stats, err := h.cache.Stats(c.UserContext())
	if err != nil {
		log.Printf("❌ Failed to read question cache stats: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "질문 캐시 통계 조회 실패", nil)
	}

	return respond(c, fiber.StatusOK, "질문 캐시 통계를 조회했습니다.", stats)
}
