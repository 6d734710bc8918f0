package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jemyeonso/interview-ai/internal/models"
	"jemyeonso/interview-ai/internal/repositories"
	"jemyeonso/interview-ai/internal/scoring"
)

func newTestAnalyzer(llm TextGenerator) (AnswerAnalyzer, *fakeAnalysisRepo) {
	interviews := &fakeInterviewRepo{interviews: map[uint]*models.Interview{
		7: {ID: 7, JobType: "백엔드 개발자", QuestionLevel: "중급", QuestionType: "기술"},
	}}
	analyses := newFakeAnalysisRepo()
	return NewAnswerAnalyzer(llm, scoring.DefaultEngine(), interviews, analyses, 1), analyses
}

func TestAnswerAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()
	question := "트랜잭션 격리 수준에 대해 설명해주세요."
	answer := "첫째, READ COMMITTED는 커밋된 데이터만 읽습니다. 예를 들어 PostgreSQL의 기본값입니다."

	t.Run("structured model response is used", func(t *testing.T) {
		llm := &fakeGenerator{response: "```json\n{\"score\": 88, \"analysis\": [{\"errorText\": \"READ COMMITTED\", \"errorType\": \"깊이_부족\", \"feedback\": \"다른 수준 비교가 없습니다\", \"suggestion\": \"REPEATABLE READ와 비교하세요\"}]}\n```"}
		analyzer, analyses := newTestAnalyzer(llm)

		got, err := analyzer.Analyze(ctx, 7, question, answer)
		require.NoError(t, err)

		require.NotNil(t, got.Score)
		assert.Equal(t, 88, *got.Score)
		assert.Equal(t, string(scoring.TierStructured), got.Tier)
		require.Len(t, got.Analysis, 1)
		assert.Equal(t, "깊이_부족", got.Analysis[0].ErrorType)
		assert.Equal(t, models.StatusCompleted, got.Status)
		require.NotNil(t, got.UpstreamResponse)

		stored, err := analyses.FindByID(got.ID)
		require.NoError(t, err)
		assert.Equal(t, 88, *stored.Score)

		require.Len(t, llm.opts, 1)
		assert.Equal(t, float32(0.3), llm.opts[0].Temperature)
		assert.Equal(t, int32(512), llm.opts[0].MaxTokens)
		assert.Equal(t, analystRole, llm.opts[0].SystemRole)
		assert.Contains(t, llm.lastPrompt(), "백엔드 개발자")
		assert.Contains(t, llm.lastPrompt(), "중급")
	})

	t.Run("model failure falls back to heuristics", func(t *testing.T) {
		analyzer, _ := newTestAnalyzer(&fakeGenerator{err: errUpstream})

		got, err := analyzer.Analyze(ctx, 7, question, answer)
		require.NoError(t, err)

		want := scoring.DefaultEngine().Resolve(question, answer, "")
		assert.Equal(t, want.Score, *got.Score)
		assert.Equal(t, want.Analysis, got.Analysis)
		assert.Equal(t, string(scoring.TierHeuristic), got.Tier)
		assert.Nil(t, got.UpstreamResponse)
	})

	t.Run("unknown interview is an error", func(t *testing.T) {
		analyzer, _ := newTestAnalyzer(&fakeGenerator{response: `{"score": 90}`})

		_, err := analyzer.Analyze(ctx, 99, question, answer)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestAnswerAnalyzer_SubmitAndProcess(t *testing.T) {
	ctx := context.Background()
	analyzer, analyses := newTestAnalyzer(&fakeGenerator{response: "점수: 64"})

	queued, err := analyzer.Submit(7, "질문입니다?", "답변입니다.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, queued.Status)
	assert.Nil(t, queued.Score)

	require.NoError(t, analyzer.Process(ctx, queued.ID))

	done, err := analyzer.Get(queued.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, 64, *done.Score)
	assert.Equal(t, string(scoring.TierPattern), done.Tier)
	assert.Empty(t, done.Analysis)

	t.Run("processing twice is a no-op", func(t *testing.T) {
		require.NoError(t, analyzer.Process(ctx, queued.ID))
	})

	t.Run("submit rejects unknown interviews", func(t *testing.T) {
		_, err := analyzer.Submit(99, "q", "a")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("missing interview marks the analysis failed", func(t *testing.T) {
		orphan := &models.AnswerAnalysis{ID: uuid.New(), InterviewID: 42, Status: models.StatusQueued}
		require.NoError(t, analyses.Create(orphan))

		err := analyzer.Process(ctx, orphan.ID)
		assert.Error(t, err)

		got, _ := analyses.FindByID(orphan.ID)
		assert.Equal(t, models.StatusFailed, got.Status)
		require.NotNil(t, got.ErrorMessage)
	})

	t.Run("unknown analysis id", func(t *testing.T) {
		err := analyzer.Process(ctx, uuid.New())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestAnswerAnalyzer_ProcessRecordsStorageFailures(t *testing.T) {
	ctx := context.Background()
	errDB := errors.New("connection reset")

	t.Run("result write failure marks the analysis failed", func(t *testing.T) {
		analyzer, analyses := newTestAnalyzer(&fakeGenerator{response: `{"score": 80}`})
		queued, err := analyzer.Submit(7, "질문?", "답변.")
		require.NoError(t, err)

		analyses.updateResultErr = errDB
		err = analyzer.Process(ctx, queued.ID)
		assert.ErrorIs(t, err, errDB)

		got, err := analyses.FindByID(queued.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, got.Status)
		require.NotNil(t, got.ErrorMessage)
		assert.Contains(t, *got.ErrorMessage, "connection reset")
		assert.Nil(t, got.Score)
	})

	t.Run("status write failure marks the analysis failed", func(t *testing.T) {
		llm := &fakeGenerator{response: `{"score": 80}`}
		analyzer, analyses := newTestAnalyzer(llm)
		queued, err := analyzer.Submit(7, "질문?", "답변.")
		require.NoError(t, err)

		analyses.updateStatusErr = errDB
		err = analyzer.Process(ctx, queued.ID)
		assert.ErrorIs(t, err, errDB)

		got, err := analyses.FindByID(queued.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, got.Status)
		assert.Empty(t, llm.opts)
	})
}
