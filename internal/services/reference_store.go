package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const (
	DocTypeCultureFit = "culture_fit"
	DocTypeJobGuide   = "job_guide"
)

// ReferenceStore indexes reference material (culture-fit guides, job guides)
// that question generation retrieves as context.
type ReferenceStore interface {
	InitCollection(ctx context.Context) error
	UpsertChunk(ctx context.Context, chunk ReferenceChunk, embedding []float32) error
	Search(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]ReferenceMatch, error)
	DeleteSource(ctx context.Context, source string) error
}

type ReferenceChunk struct {
	Source  string
	DocType string
	Index   int
	Text    string
}

type ReferenceMatch struct {
	Source  string
	DocType string
	Score   float32
	Text    string
}

type referenceStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewReferenceStore(urlStr, apiKey, collectionName string) (ReferenceStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// The go client speaks gRPC, which listens on 6334 by default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &referenceStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements ReferenceStore.
func (r *referenceStore) InitCollection(ctx context.Context) error {
	exists, err := r.client.CollectionExists(ctx, r.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     r.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", r.collectionName)
	return nil
}

// UpsertChunk implements ReferenceStore. Point ids derive from source and
// chunk index, so re-ingesting a document overwrites its chunks.
func (r *referenceStore) UpsertChunk(ctx context.Context, chunk ReferenceChunk, embedding []float32) error {
	pointID := chunkPointID(chunk.Source, chunk.Index)

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collectionName,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(pointID.String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"source":   chunk.Source,
				"doc_type": chunk.DocType,
				"chunk":    chunk.Index,
				"text":     chunk.Text,
			}),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Search implements ReferenceStore.
func (r *referenceStore) Search(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]ReferenceMatch, error) {
	var filter *qdrant.Filter
	if docType != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", docType),
			},
		}
	}

	points, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]ReferenceMatch, 0, len(points))
	for _, point := range points {
		matches = append(matches, ReferenceMatch{
			Source:  payloadString(point.Payload, "source"),
			DocType: payloadString(point.Payload, "doc_type"),
			Text:    payloadString(point.Payload, "text"),
			Score:   point.Score,
		})
	}

	return matches, nil
}

// DeleteSource implements ReferenceStore.
func (r *referenceStore) DeleteSource(ctx context.Context, source string) error {
	_, err := r.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: r.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("source", source),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}

	return nil
}

func chunkPointID(source string, index int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, index)))
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
