package models

import (
	"time"

	"github.com/google/uuid"

	"jemyeonso/interview-ai/internal/scoring"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type AnswerAnalysis struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID      uint                   `gorm:"not null;index" json:"interview_id"`
	Question         string                 `gorm:"type:text" json:"question"`
	Answer           string                 `gorm:"type:text" json:"answer"`
	Status           AnalysisStatus         `gorm:"not null;default:'queued'" json:"status"`
	Score            *int                   `json:"score,omitempty"`
	Analysis         []scoring.AnalysisItem `gorm:"type:jsonb;serializer:json" json:"analysis,omitempty"`
	Tier             string                 `gorm:"type:text" json:"tier,omitempty"`
	UpstreamResponse *string                `gorm:"type:text" json:"-"`
	ErrorMessage     *string                `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time              `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time              `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Interview Interview `gorm:"foreignKey:InterviewID" json:"-"`
}

func (AnswerAnalysis) TableName() string {
	return "answer_analyses"
}
