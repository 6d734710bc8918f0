package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jemyeonso/interview-ai/internal/repositories"
)

const referenceMatchLimit = 3

type QuestionRequest struct {
	JobType      string
	Level        string
	Category     string
	QuestionType string
	FileID       string
}

type QuestionGenerator interface {
	Generate(ctx context.Context, req QuestionRequest) (string, error)
}

type questionGenerator struct {
	llm        TextGenerator
	embedder   Embedder
	references ReferenceStore
	resumes    repositories.ResumeRepository
	cache      QuestionCache
	prompts    *PromptBuilder
	maxRetries int
}

// NewQuestionGenerator wires the generator. embedder and references may be
// nil, in which case prompts carry no reference context.
func NewQuestionGenerator(
	llm TextGenerator,
	embedder Embedder,
	references ReferenceStore,
	resumes repositories.ResumeRepository,
	cache QuestionCache,
	maxRetries int,
) QuestionGenerator {
	return &questionGenerator{
		llm:        llm,
		embedder:   embedder,
		references: references,
		resumes:    resumes,
		cache:      cache,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Generate implements QuestionGenerator.
func (g *questionGenerator) Generate(ctx context.Context, req QuestionRequest) (string, error) {
	resumeText, err := g.resumeText(req.FileID)
	if err != nil {
		return "", err
	}

	key := QuestionCacheKey{
		DocumentID: req.FileID,
		JobType:    req.JobType,
		Category:   req.Category,
		Level:      req.Level,
	}

	previous, err := g.cache.PreviousQuestions(ctx, key)
	if err != nil {
		log.Printf("⚠️  Failed to read question cache: %v\n", err)
		previous = nil
	}

	prompt := g.prompts.BuildQuestionPrompt(QuestionPromptInput{
		JobType:           req.JobType,
		Level:             req.Level,
		Category:          req.Category,
		QuestionType:      req.QuestionType,
		ResumeText:        resumeText,
		PreviousQuestions: previous,
		ReferenceContext:  g.referenceContext(ctx, req),
	})

	log.Printf("🤖 Generating %s question (level=%s, category=%s, %d previous)\n",
		req.JobType, req.Level, req.Category, len(previous))

	response, err := g.llm.GenerateTextWithRetry(ctx, prompt, GenerateOptions{
		SystemRole:  interviewerRole,
		Temperature: 0.7,
		MaxTokens:   256,
	}, g.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}

	question := cleanQuestion(response)
	if question == "" {
		return "", fmt.Errorf("failed to generate question: empty response")
	}

	if err := g.cache.AddQuestion(ctx, key, question); err != nil {
		log.Printf("⚠️  Failed to cache question: %v\n", err)
	}

	return question, nil
}

func (g *questionGenerator) resumeText(fileID string) (string, error) {
	if fileID == "" {
		return missingResumeText, nil
	}

	resume, err := g.resumes.FindByFileID(fileID)
	if errors.Is(err, repositories.ErrNotFound) {
		return resumeNotFoundText, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load resume: %w", err)
	}

	return resume.ResumeText, nil
}

// referenceContext never fails; retrieval problems only cost the prompt its context.
func (g *questionGenerator) referenceContext(ctx context.Context, req QuestionRequest) string {
	if g.embedder == nil || g.references == nil {
		return ""
	}

	embedding, err := g.embedder.GenerateEmbedding(ctx, g.prompts.BuildReferenceQuery(req.JobType, req.Category))
	if err != nil {
		log.Printf("⚠️  Failed to embed reference query: %v\n", err)
		return ""
	}

	matches, err := g.references.Search(ctx, embedding, DocTypeCultureFit, referenceMatchLimit)
	if err != nil {
		log.Printf("⚠️  Failed to search reference documents: %v\n", err)
		return ""
	}

	return FormatReferenceContext(matches)
}

func cleanQuestion(response string) string {
	q := strings.TrimSpace(response)
	if i := strings.IndexByte(q, '\n'); i >= 0 {
		q = strings.TrimSpace(q[:i])
	}
	return strings.Trim(q, "\"'“”")
}
