package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
)

type ResumeIntake interface {
	// Ingest stores an uploaded résumé PDF, redacts personal data from its text
	// and records both the redacted text and the deletion log.
	Ingest(ctx context.Context, file *multipart.FileHeader, userID string) (*models.ResumeUploadResponse, error)
	Anonymize(userID, fileID, originalFilename, text string) (PIIResult, PIILogPayload)
	UploadPIILog(ctx context.Context, payload PIILogPayload) (string, error)
}

type resumeIntake struct {
	storage  StorageService
	parser   PDFParser
	detector PIIDetector
	objects  ObjectStore
	resumes  repositories.ResumeRepository
	now      func() time.Time
}

func NewResumeIntake(
	storage StorageService,
	parser PDFParser,
	detector PIIDetector,
	objects ObjectStore,
	resumes repositories.ResumeRepository,
) ResumeIntake {
	return &resumeIntake{
		storage:  storage,
		parser:   parser,
		detector: detector,
		objects:  objects,
		resumes:  resumes,
		now:      time.Now,
	}
}

// Ingest implements ResumeIntake.
func (r *resumeIntake) Ingest(ctx context.Context, file *multipart.FileHeader, userID string) (*models.ResumeUploadResponse, error) {
	fileID, filePath, err := r.storage.SaveResume(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.storage.DeleteFile(filePath); err != nil {
			log.Printf("⚠️  Failed to remove local upload %s: %v\n", filePath, err)
		}
	}()

	data, err := r.storage.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	text, err := r.parser.ExtractTextFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	result, payload := r.Anonymize(userID, fileID, file.Filename, text)

	objectKey := resumeObjectKey(fileID)
	if err := r.objects.PutBytes(ctx, objectKey, data, "application/pdf"); err != nil {
		return nil, err
	}

	logKey, err := r.UploadPIILog(ctx, payload)
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		FileID:           fileID,
		UserID:           userID,
		OriginalFileName: file.Filename,
		ObjectKey:        objectKey,
		PIILogKey:        logKey,
		ResumeText:       result.AnonymizedText,
		DetectedPII:      result.DetectedFields(),
	}
	if err := r.resumes.Save(resume); err != nil {
		return nil, err
	}

	log.Printf("💾 Resume %s stored (%d PII fields redacted)\n", fileID, len(resume.DetectedPII))

	return &models.ResumeUploadResponse{
		FileID:            fileID,
		ObjectKey:         objectKey,
		PIILogKey:         logKey,
		DetectedPIIFields: resume.DetectedPII,
	}, nil
}

// Anonymize implements ResumeIntake.
func (r *resumeIntake) Anonymize(userID, fileID, originalFilename, text string) (PIIResult, PIILogPayload) {
	result := r.detector.Detect(text)
	return result, NewPIILogPayload(userID, fileID, originalFilename, result, r.now())
}

// UploadPIILog implements ResumeIntake.
func (r *resumeIntake) UploadPIILog(ctx context.Context, payload PIILogPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode pii log: %w", err)
	}

	key := PIILogKey(payload.Data.FileID)
	if err := r.objects.PutBytes(ctx, key, body, "application/json"); err != nil {
		return "", err
	}

	return key, nil
}

func resumeObjectKey(fileID string) string {
	return "resumes/" + fileID + ".pdf"
}
