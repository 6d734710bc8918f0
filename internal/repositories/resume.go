package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jemyeonso/interview-ai/internal/models"
)

type ResumeRepository interface {
	Save(resume *models.Resume) error
	FindByFileID(fileID string) (*models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Save implements ResumeRepository. A resume uploaded again under the same
// file id replaces the stored one.
func (r *resumeRepository) Save(resume *models.Resume) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "file_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "original_file_name", "object_key", "pii_log_key",
			"resume_text", "detected_pii", "updated_at",
		}),
	}).Create(resume).Error
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	return nil
}

// FindByFileID implements ResumeRepository.
func (r *resumeRepository) FindByFileID(fileID string) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("file_id = ?", fileID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", fileID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}
