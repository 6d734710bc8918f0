package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"jemyeonso/interview-ai/internal/config"
	"jemyeonso/interview-ai/internal/services"
)

// Reference PDFs are read from one directory per doc type.
var referenceDirs = []struct {
	Dir     string
	DocType string
}{
	{Dir: "./reference_docs/culture_fit", DocType: services.DocTypeCultureFit},
	{Dir: "./reference_docs/job_guides", DocType: services.DocTypeJobGuide},
}

func main() {
	log.Println("🚀 Starting reference document ingestion...")

	cfg := config.Load()

	gemini, err := services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	store, err := services.NewReferenceStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := store.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	parser := services.NewPDFParser()
	chunker := services.NewTextChunker()

	successCount := 0
	failCount := 0

	for _, ref := range referenceDirs {
		paths, err := filepath.Glob(filepath.Join(ref.Dir, "*.pdf"))
		if err != nil || len(paths) == 0 {
			log.Printf("⚠️  No PDFs in %s, skipping", ref.Dir)
			continue
		}

		for _, path := range paths {
			source := filepath.Base(path)
			log.Printf("\n📄 Processing: %s (%s)", source, ref.DocType)

			text, err := parser.ExtractText(path)
			if err != nil {
				log.Printf("   ❌ Failed to extract text: %v", err)
				failCount++
				continue
			}

			chunks := chunker.ChunkText(text, 1000, 200)
			log.Printf("   ✂️  %d characters, %d chunks", len([]rune(text)), len(chunks))

			// Re-ingesting a file replaces its previous chunks.
			if err := store.DeleteSource(ctx, source); err != nil {
				log.Printf("   ⚠️  Failed to clear previous chunks: %v", err)
			}

			stored := 0
			for i, chunk := range chunks {
				embedding, err := gemini.GenerateEmbedding(ctx, chunk)
				if err != nil {
					log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
					continue
				}

				err = store.UpsertChunk(ctx, services.ReferenceChunk{
					Source:  source,
					DocType: ref.DocType,
					Index:   i,
					Text:    chunk,
				}, embedding)
				if err != nil {
					log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
					continue
				}
				stored++
			}

			log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
			if stored == 0 {
				failCount++
				continue
			}
			successCount++
		}
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
