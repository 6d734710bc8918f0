package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/scoring"
)

type AnalysisRepository interface {
	Create(analysis *models.AnswerAnalysis) error
	FindByID(id uuid.UUID) (*models.AnswerAnalysis, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	UpdateResult(id uuid.UUID, result *AnalysisUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.AnswerAnalysis, error)
}

type AnalysisUpdateData struct {
	Score            int
	Analysis         []scoring.AnalysisItem
	Tier             scoring.Tier
	UpstreamResponse string
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.AnswerAnalysis) error {
	if err := r.db.Omit("Interview").Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create answer analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.AnswerAnalysis, error) {
	var analysis models.AnswerAnalysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("answer analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find answer analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

// UpdateResult marks the analysis completed and stores the resolved evaluation.
func (r *analysisRepository) UpdateResult(id uuid.UUID, data *AnalysisUpdateData) error {
	items := data.Analysis
	if items == nil {
		items = []scoring.AnalysisItem{}
	}
	analysisJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	updates := map[string]interface{}{
		"status":     models.StatusCompleted,
		"score":      data.Score,
		"analysis":   string(analysisJSON),
		"tier":       string(data.Tier),
		"updated_at": time.Now(),
	}
	if data.UpstreamResponse != "" {
		updates["upstream_response"] = data.UpstreamResponse
	}

	return r.update(id, updates)
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.AnswerAnalysis, error) {
	var analyses []models.AnswerAnalysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.AnswerAnalysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update answer analysis: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("answer analysis %s: %w", id, ErrNotFound)
	}

	return nil
}
