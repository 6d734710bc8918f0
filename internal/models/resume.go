package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileID           string    `gorm:"type:text;uniqueIndex;not null" json:"file_id"`
	UserID           string    `gorm:"type:text;index" json:"user_id"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	ObjectKey        string    `gorm:"type:text" json:"object_key"`
	PIILogKey        string    `gorm:"type:text" json:"pii_log_key"`
	ResumeText       string    `gorm:"type:text" json:"-"`
	DetectedPII      []string  `gorm:"type:jsonb;serializer:json" json:"detected_pii_fields"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
