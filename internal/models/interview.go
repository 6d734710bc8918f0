package models

import "time"

// Interview carries the context an answer is evaluated against.
type Interview struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ResumeFileID  string    `gorm:"type:text;index" json:"resume_file_id"`
	JobType       string    `gorm:"type:text;not null" json:"job_type"`
	QuestionLevel string    `gorm:"type:text;not null" json:"question_level"`
	QuestionType  string    `gorm:"type:text;not null" json:"question_type"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Interview) TableName() string {
	return "interviews"
}
