package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Sizes are measured in runes; paragraphs
// longer than maxChunkSize are split on sentence terminators, and each new
// chunk starts with the last overlap runes of the previous one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	b := &chunkBuilder{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			b.add(sentence, " ")
		}
	}

	return b.finish()
}

type chunkBuilder struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
	size    int
}

func (b *chunkBuilder) add(piece, sep string) {
	pieceSize := utf8.RuneCountInString(piece)
	if b.size > 0 && b.size+pieceSize+utf8.RuneCountInString(sep) > b.max {
		prev := b.current.String()
		b.chunks = append(b.chunks, prev)
		b.current.Reset()
		b.size = 0
		if tail := lastNRunes(prev, b.overlap); tail != "" {
			b.write(tail)
		}
	}

	if b.size > 0 {
		b.write(sep)
	}
	b.write(piece)
}

func (b *chunkBuilder) write(s string) {
	b.current.WriteString(s)
	b.size += utf8.RuneCountInString(s)
}

func (b *chunkBuilder) finish() []string {
	if b.size > 0 {
		b.chunks = append(b.chunks, b.current.String())
	}
	return b.chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
