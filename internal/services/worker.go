package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"jemyeonso/interview-ai/internal/repositories"
)

const (
	analysisQueueSize = 100
	pendingBatchSize  = 10
)

// Worker scores queued answer analyses in the background. Analyses are
// persisted as queued before they reach the worker, so the in-memory queue is
// only a fast path: anything it drops is recovered from the database.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     AnswerAnalyzer
	queue        chan uuid.UUID
	scorers      int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analyzer AnswerAnalyzer,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		queue:        make(chan uuid.UUID, analysisQueueSize),
		scorers:      concurrency,
		pollInterval: 10 * time.Second,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting %d answer scorers\n", w.scorers)

	for i := 0; i < w.scorers; i++ {
		w.wg.Add(1)
		go w.score(ctx, i+1)
	}

	w.wg.Add(1)
	go w.recoverQueued(ctx)

	log.Println("✅ Answer analysis worker started")
}

// Stop implements Worker. Analyses still queued stay queued in the database
// and are picked up after the next start.
func (w *worker) Stop() {
	log.Println("🛑 Stopping answer analysis worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Answer analysis worker stopped")
}

// EnqueueJob implements Worker. It never blocks the caller.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, analysis %s stays queued\n", analysisID)
		return
	default:
	}

	select {
	case w.queue <- analysisID:
		log.Printf("📥 Analysis %s queued for scoring\n", analysisID)
	default:
		log.Printf("⚠️  Scoring queue full, analysis %s left for the poller\n", analysisID)
	}
}

func (w *worker) score(ctx context.Context, scorerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Scorer #%d stopped\n", scorerID)
			return
		case analysisID := <-w.queue:
			start := time.Now()
			if err := w.analyzer.Process(ctx, analysisID); err != nil {
				log.Printf("❌ Scorer #%d failed analysis %s: %v\n", scorerID, analysisID, err)
				continue
			}
			log.Printf("✅ Scorer #%d finished analysis %s in %s\n", scorerID, analysisID, time.Since(start).Round(time.Millisecond))
		}
	}
}

// recoverQueued feeds analyses that are queued in the database but missed
// the in-memory queue (full queue, restart) back to the scorers.
func (w *worker) recoverQueued(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Queued analysis poller stopped")
			return
		case <-ticker.C:
			pending, err := w.analysisRepo.FindPendingJobs(pendingBatchSize)
			if err != nil {
				log.Printf("⚠️  Failed to fetch queued analyses: %v\n", err)
				continue
			}

			requeued := 0
			for _, analysis := range pending {
				select {
				case w.queue <- analysis.ID:
					requeued++
				case <-w.stopChan:
					return
				default:
				}
			}
			if requeued > 0 {
				log.Printf("📋 Requeued %d of %d queued analyses\n", requeued, len(pending))
			}
		}
	}
}
