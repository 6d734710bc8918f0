package models

import "jemyeonso/interview-ai/internal/scoring"

// APIResponse is the envelope every /api/ai endpoint answers with.
type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type GenerateQuestionRequest struct {
	JobType      string `json:"jobtype" validate:"required"`
	Level        string `json:"level" validate:"required"`
	Category     string `json:"category" validate:"required"`
	QuestionType string `json:"question_type" validate:"required"`
	FileID       string `json:"file_id,omitempty"`
}

type GenerateQuestionResponse struct {
	Question string `json:"question"`
}

type AnalyzeAnswerRequest struct {
	InterviewID uint   `json:"interview_id" validate:"required"`
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer"`
}

type AnalyzeAnswerData struct {
	ID       string                 `json:"id,omitempty"`
	Status   string                 `json:"status,omitempty"`
	Score    *int                   `json:"score,omitempty"`
	Analysis []scoring.AnalysisItem `json:"analysis"`
}

type FollowUpRequest struct {
	InterviewID      uint   `json:"interview_id" validate:"required"`
	PreviousAnswer   string `json:"previousAnswer"`
	PreviousQuestion string `json:"previousQuestion" validate:"required"`
}

type FollowUpQuestion struct {
	QuestionText string `json:"questiontext"`
	QuestionType string `json:"questiontype"`
}

type FollowUpResponse struct {
	Question FollowUpQuestion `json:"question"`
}

type ResumeUploadResponse struct {
	FileID            string   `json:"file_id"`
	ObjectKey         string   `json:"object_key"`
	PIILogKey         string   `json:"pii_log_key"`
	DetectedPIIFields []string `json:"detected_pii_fields"`
}

type PIILogRequest struct {
	UserID           string `form:"user_id" validate:"required"`
	FileID           string `form:"file_id" validate:"required"`
	OriginalFilename string `form:"original_filename" validate:"required"`
	Text             string `form:"text" validate:"required"`
}
