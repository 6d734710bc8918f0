package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
)

var errUpstream = errors.New("upstream unavailable")

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	opts     []GenerateOptions
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, opts GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.response, f.err
}

func (f *fakeGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerateOptions, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, opts)
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeReferenceStore struct {
	matches []ReferenceMatch
	docType string
}

func (f *fakeReferenceStore) InitCollection(context.Context) error { return nil }

func (f *fakeReferenceStore) UpsertChunk(context.Context, ReferenceChunk, []float32) error {
	return nil
}

func (f *fakeReferenceStore) Search(_ context.Context, _ []float32, docType string, limit int) ([]ReferenceMatch, error) {
	f.docType = docType
	if len(f.matches) > limit {
		return f.matches[:limit], nil
	}
	return f.matches, nil
}

func (f *fakeReferenceStore) DeleteSource(context.Context, string) error { return nil }

type fakeResumeRepo struct {
	resumes map[string]*models.Resume
	err     error
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: make(map[string]*models.Resume)}
}

func (f *fakeResumeRepo) Save(resume *models.Resume) error {
	if f.err != nil {
		return f.err
	}
	f.resumes[resume.FileID] = resume
	return nil
}

func (f *fakeResumeRepo) FindByFileID(fileID string) (*models.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.resumes[fileID]
	if !ok {
		return nil, fmt.Errorf("resume %s: %w", fileID, repositories.ErrNotFound)
	}
	return r, nil
}

type fakeInterviewRepo struct {
	interviews map[uint]*models.Interview
}

func (f *fakeInterviewRepo) FindByID(id uint) (*models.Interview, error) {
	i, ok := f.interviews[id]
	if !ok {
		return nil, fmt.Errorf("interview %d: %w", id, repositories.ErrNotFound)
	}
	return i, nil
}

type fakeAnalysisRepo struct {
	mu              sync.Mutex
	analyses        map[uuid.UUID]*models.AnswerAnalysis
	updateStatusErr error
	updateResultErr error
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: make(map[uuid.UUID]*models.AnswerAnalysis)}
}

func (f *fakeAnalysisRepo) Create(a *models.AnswerAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *a
	f.analyses[a.ID] = &copied
	return nil
}

func (f *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.AnswerAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return nil, fmt.Errorf("answer analysis %s: %w", id, repositories.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAnalysisRepo) UpdateResult(id uuid.UUID, data *repositories.AnalysisUpdateData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateResultErr != nil {
		return f.updateResultErr
	}
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	score := data.Score
	a.Status = models.StatusCompleted
	a.Score = &score
	a.Analysis = data.Analysis
	a.Tier = string(data.Tier)
	if data.UpstreamResponse != "" {
		upstream := data.UpstreamResponse
		a.UpstreamResponse = &upstream
	}
	return nil
}

func (f *fakeAnalysisRepo) UpdateError(id uuid.UUID, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &msg
	return nil
}

func (f *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.AnswerAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []models.AnswerAnalysis
	for _, a := range f.analyses {
		if a.Status == models.StatusQueued && len(pending) < limit {
			pending = append(pending, *a)
		}
	}
	return pending, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeObjectStore) PutBytes(_ context.Context, key string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeObjectStore) PutFile(context.Context, string, string) error { return f.err }
func (f *fakeObjectStore) EnsureBucket(context.Context) error { return f.err }
func (f *fakeObjectStore) HealthCheck(context.Context) error { return f.err }
func (f *fakeObjectStore) Bucket() string { return "test-bucket" }

type fakeStorage struct {
	data    []byte
	deleted []string
}

func (f *fakeStorage) SaveResume(*multipart.FileHeader) (string, string, error) {
	return "file-123", "/tmp/resume_file-123.pdf", nil
}

func (f *fakeStorage) ReadFile(string) ([]byte, error) { return f.data, nil }

func (f *fakeStorage) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error { return nil }

type fakeParser struct {
	text string
	err  error
}

func (f *fakeParser) ExtractText(string) (string, error) { return f.text, f.err }

func (f *fakeParser) ExtractTextFromBytes([]byte) (string, error) { return f.text, f.err }
