package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jemyeonso/interview-ai/internal/models"
)

type InterviewRepository interface {
	FindByID(id uint) (*models.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(id uint) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Select("id", "resume_file_id", "job_type", "question_level", "question_type").
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}

	return &interview, nil
}
