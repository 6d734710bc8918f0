package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/services"
)

type ResumeHandler struct {
	intake   services.ResumeIntake
	detector services.PIIDetector
}

func NewResumeHandler(intake services.ResumeIntake, detector services.PIIDetector) *ResumeHandler {
	return &ResumeHandler{
		intake:   intake,
		detector: detector,
	}
}

// HandleUpload handles POST /resume/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "resume file is required")
	}

	userID := c.FormValue("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	result, err := h.intake.Ingest(c.UserContext(), file, userID)
	if err != nil {
		log.Printf("❌ Resume upload failed: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "이력서 업로드에 실패했습니다", nil)
	}

	return respond(c, fiber.StatusOK, "파일 업로드 및 개인 정보 삭제를 성공했습니다", result)
}

// HandlePIICheck handles POST /resume/pii-check
func (h *ResumeHandler) HandlePIICheck(c *fiber.Ctx) error {
	text := c.FormValue("text")
	if text == "" {
		return badRequest(c, "text is required")
	}

	result := h.detector.Detect(text)

	return respond(c, fiber.StatusOK, "PII 탐지 완료", fiber.Map{
		"pii_found": fiber.Map{
			"regex_result": result.Matches,
		},
		"anonymized_text": result.AnonymizedText,
	})
}

// HandlePIILog handles POST /resume/pii-log
func (h *ResumeHandler) HandlePIILog(c *fiber.Ctx) error {
	req, ok := parsePIILogRequest(c)
	if !ok {
		return badRequest(c, "user_id, file_id, original_filename and text are required")
	}

	result, payload := h.intake.Anonymize(req.UserID, req.FileID, req.OriginalFilename, req.Text)

	return respond(c, fiber.StatusOK, "PII 로그 JSON 생성 완료", fiber.Map{
		"log":             payload,
		"anonymized_text": result.AnonymizedText,
	})
}

// HandlePIIUpload handles POST /resume/pii-upload
func (h *ResumeHandler) HandlePIIUpload(c *fiber.Ctx) error {
	req, ok := parsePIILogRequest(c)
	if !ok {
		return badRequest(c, "user_id, file_id, original_filename and text are required")
	}

	result, payload := h.intake.Anonymize(req.UserID, req.FileID, req.OriginalFilename, req.Text)

	key, err := h.intake.UploadPIILog(c.UserContext(), payload)
	if err != nil {
		log.Printf("❌ PII log upload failed: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "PII 로그 업로드 실패", fiber.Map{
			"anonymized_text": result.AnonymizedText,
		})
	}

	return respond(c, fiber.StatusOK, "PII 로그 업로드 완료", fiber.Map{
		"object_key":      key,
		"anonymized_text": result.AnonymizedText,
	})
}

func parsePIILogRequest(c *fiber.Ctx) (*models.PIILogRequest, bool) {
	var req models.PIILogRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, false
	}

	if req.UserID == "" || req.FileID == "" || req.OriginalFilename == "" || req.Text == "" {
		return nil, false
	}

	return &req, true
}
