package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
	"jemyeonso/interview-ai/internal/scoring"
)

type AnswerAnalyzer interface {
	// Analyze scores an answer synchronously and records the result.
	Analyze(ctx context.Context, interviewID uint, question, answer string) (*models.AnswerAnalysis, error)
	// Submit records a queued analysis for the worker to pick up.
	Submit(interviewID uint, question, answer string) (*models.AnswerAnalysis, error)
	// Process resolves a queued analysis. The worker calls it.
	Process(ctx context.Context, analysisID uuid.UUID) error
	Get(analysisID uuid.UUID) (*models.AnswerAnalysis, error)
}

type answerAnalyzer struct {
	llm        TextGenerator
	engine     *scoring.Engine
	interviews repositories.InterviewRepository
	analyses   repositories.AnalysisRepository
	prompts    *PromptBuilder
	maxRetries int
}

func NewAnswerAnalyzer(
	llm TextGenerator,
	engine *scoring.Engine,
	interviews repositories.InterviewRepository,
	analyses repositories.AnalysisRepository,
	maxRetries int,
) AnswerAnalyzer {
	return &answerAnalyzer{
		llm:        llm,
		engine:     engine,
		interviews: interviews,
		analyses:   analyses,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Analyze implements AnswerAnalyzer. Only a missing interview fails the call;
// an unreachable model still produces a heuristic score.
func (a *answerAnalyzer) Analyze(ctx context.Context, interviewID uint, question, answer string) (*models.AnswerAnalysis, error) {
	interview, err := a.interviews.FindByID(interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview context: %w", err)
	}

	result, upstream := a.evaluate(ctx, interview, question, answer)

	score := result.Score
	analysis := &models.AnswerAnalysis{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Question:    question,
		Answer:      answer,
		Status:      models.StatusCompleted,
		Score:       &score,
		Analysis:    result.Analysis,
		Tier:        string(result.Tier),
	}
	if upstream != "" {
		analysis.UpstreamResponse = &upstream
	}

	if err := a.analyses.Create(analysis); err != nil {
		log.Printf("⚠️  Failed to persist answer analysis: %v\n", err)
	}

	return analysis, nil
}

// Submit implements AnswerAnalyzer.
func (a *answerAnalyzer) Submit(interviewID uint, question, answer string) (*models.AnswerAnalysis, error) {
	if _, err := a.interviews.FindByID(interviewID); err != nil {
		return nil, fmt.Errorf("failed to load interview context: %w", err)
	}

	analysis := &models.AnswerAnalysis{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Question:    question,
		Answer:      answer,
		Status:      models.StatusQueued,
		Analysis:    []scoring.AnalysisItem{},
	}
	if err := a.analyses.Create(analysis); err != nil {
		return nil, err
	}

	return analysis, nil
}

// Process implements AnswerAnalyzer.
func (a *answerAnalyzer) Process(ctx context.Context, analysisID uuid.UUID) error {
	analysis, err := a.analyses.FindByID(analysisID)
	if err != nil {
		return err
	}

	// The poller may enqueue an id the handler already enqueued.
	if analysis.Status != models.StatusQueued {
		return nil
	}

	if err := a.analyses.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		a.fail(analysisID, fmt.Sprintf("failed to start analysis: %v", err))
		return fmt.Errorf("failed to mark analysis processing: %w", err)
	}

	interview, err := a.interviews.FindByID(analysis.InterviewID)
	if err != nil {
		a.fail(analysisID, fmt.Sprintf("failed to load interview context: %v", err))
		return fmt.Errorf("failed to load interview context: %w", err)
	}

	result, upstream := a.evaluate(ctx, interview, analysis.Question, analysis.Answer)

	if err := a.analyses.UpdateResult(analysisID, &repositories.AnalysisUpdateData{
		Score:            result.Score,
		Analysis:         result.Analysis,
		Tier:             result.Tier,
		UpstreamResponse: upstream,
	}); err != nil {
		a.fail(analysisID, fmt.Sprintf("failed to save analysis result: %v", err))
		return fmt.Errorf("failed to save analysis result: %w", err)
	}

	return nil
}

// Get implements AnswerAnalyzer.
func (a *answerAnalyzer) Get(analysisID uuid.UUID) (*models.AnswerAnalysis, error) {
	return a.analyses.FindByID(analysisID)
}

// evaluate asks the model for an assessment and resolves it. A failed model
// call is treated as an absent response.
func (a *answerAnalyzer) evaluate(ctx context.Context, interview *models.Interview, question, answer string) (scoring.Result, string) {
	prompt := a.prompts.BuildAnalysisPrompt(question, answer, interview.JobType, interview.QuestionLevel, interview.QuestionType)

	upstream, err := a.llm.GenerateTextWithRetry(ctx, prompt, GenerateOptions{
		SystemRole:  analystRole,
		Temperature: 0.3,
		MaxTokens:   512,
	}, a.maxRetries)
	if err != nil {
		log.Printf("❌ LLM call failed, scoring heuristically: %v\n", err)
		upstream = ""
	}

	result := a.engine.Resolve(question, answer, upstream)
	log.Printf("✅ Answer scored %d via %s\n", result.Score, result.Tier)

	return result, upstream
}

func (a *answerAnalyzer) fail(analysisID uuid.UUID, message string) {
	if err := a.analyses.UpdateError(analysisID, message); err != nil {
		log.Printf("⚠️  Failed to record analysis error: %v\n", err)
	}
}
