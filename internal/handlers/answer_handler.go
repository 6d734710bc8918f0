package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
	"jemyeonso/interview-ai/internal/scoring"
	"jemyeonso/interview-ai/internal/services"
)

type AnswerHandler struct {
	analyzer services.AnswerAnalyzer
	worker   services.Worker
}

func NewAnswerHandler(analyzer services.AnswerAnalyzer, worker services.Worker) *AnswerHandler {
	return &AnswerHandler{
		analyzer: analyzer,
		worker:   worker,
	}
}

// HandleAnalyze handles POST /answers/analyze
func (h *AnswerHandler) HandleAnalyze(c *fiber.Ctx) error {
	req, err := parseAnalyzeRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), req.InterviewID, req.Question, req.Answer)
	if err != nil {
		log.Printf("❌ Answer analysis failed: %v\n", err)
		return respond(c, fiber.StatusInternalServerError, "인터뷰 컨텍스트 조회 실패", nil)
	}

	return respond(c, fiber.StatusOK, "대답 분석을 성공하였습니다", analysisData(analysis))
}

// HandleAnalyzeAsync handles POST /answers/analyze/async
func (h *AnswerHandler) HandleAnalyzeAsync(c *fiber.Ctx) error {
	req, err := parseAnalyzeRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	analysis, err := h.analyzer.Submit(req.InterviewID, req.Question, req.Answer)
	if err != nil {
		log.Printf("❌ Failed to queue answer analysis: %v\n", err)
		if errors.Is(err, repositories.ErrNotFound) {
			return respond(c, fiber.StatusInternalServerError, "인터뷰 컨텍스트 조회 실패", nil)
		}
		return respond(c, fiber.StatusInternalServerError, "대답 분석 요청에 실패했습니다", nil)
	}

	h.worker.EnqueueJob(analysis.ID)

	return respond(c, fiber.StatusAccepted, "대답 분석 요청을 접수했습니다", models.AnalyzeAnswerData{
		ID:       analysis.ID.String(),
		Status:   string(analysis.Status),
		Analysis: []scoring.AnalysisItem{},
	})
}

// HandleGetAnalysis handles GET /answers/analyses/:id
func (h *AnswerHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid analysis ID format")
	}

	analysis, err := h.analyzer.Get(analysisID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respond(c, fiber.StatusNotFound, "Analysis not found", nil)
		}
		log.Printf("❌ Failed to load analysis %s: %v\n", analysisID, err)
		return respond(c, fiber.StatusInternalServerError, "대답 분석 조회에 실패했습니다", nil)
	}

	data := analysisData(analysis)
	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		return respond(c, fiber.StatusOK, *analysis.ErrorMessage, data)
	}

	return respond(c, fiber.StatusOK, "대답 분석 결과를 조회했습니다", data)
}

func parseAnalyzeRequest(c *fiber.Ctx) (*models.AnalyzeAnswerRequest, error) {
	var req models.AnalyzeAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("Invalid request payload")
	}

	if req.InterviewID == 0 {
		return nil, errors.New("interview_id is required")
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.New("question is required")
	}

	return &req, nil
}

func analysisData(analysis *models.AnswerAnalysis) models.AnalyzeAnswerData {
	items := analysis.Analysis
	if items == nil {
		items = []scoring.AnalysisItem{}
	}

	return models.AnalyzeAnswerData{
		ID:       analysis.ID.String(),
		Status:   string(analysis.Status),
		Score:    analysis.Score,
		Analysis: items,
	}
}
