package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextChunker_ChunkText(t *testing.T) {
	chunker := NewTextChunker()

	t.Run("short paragraphs share a chunk", func(t *testing.T) {
		got := chunker.ChunkText("짧은 문단입니다.\n\n두 번째 문단.", 1000, 200)

		assert.Equal(t, []string{"짧은 문단입니다.\n\n두 번째 문단."}, got)
	})

	t.Run("long paragraph splits on sentences", func(t *testing.T) {
		got := chunker.ChunkText("가나다라마. 바사아자차. 카타파하.", 10, 0)

		assert.Equal(t, []string{"가나다라마", "바사아자차 카타파하"}, got)
	})

	t.Run("overlap carries the previous tail", func(t *testing.T) {
		got := chunker.ChunkText("가나다라마. 바사아자차. 카타파하.", 10, 3)

		assert.Equal(t, []string{"가나다라마", "다라마 바사아자차", "아자차 카타파하"}, got)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, chunker.ChunkText("  \n\n  ", 100, 10))
	})
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "abc", truncateUTF8("abc", 10))
	assert.Equal(t, "ab", truncateUTF8("abc", 2))
	assert.Equal(t, "가", truncateUTF8("가나다", 4))
	assert.Equal(t, "가나", truncateUTF8("가나다", 6))
	assert.Equal(t, "", truncateUTF8("가", 2))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "첫 줄\n둘째 줄", CleanText("  첫 줄  \n\n\n   \n둘째 줄\n"))
}
