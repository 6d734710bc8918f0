package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jemyeonso/interview-ai/internal/config"
	"jemyeonso/interview-ai/internal/handlers"
	"jemyeonso/interview-ai/internal/repositories"
	"jemyeonso/interview-ai/internal/scoring"
	"jemyeonso/interview-ai/internal/services"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	objectStore, err := services.NewObjectStore(services.ObjectStoreConfig{
		Endpoint:  cfg.ObjectStorage.Endpoint,
		AccessKey: cfg.ObjectStorage.AccessKey,
		SecretKey: cfg.ObjectStorage.SecretKey,
		Bucket:    cfg.ObjectStorage.Bucket,
		Region:    cfg.ObjectStorage.Region,
		UseSSL:    cfg.ObjectStorage.UseSSL,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize object storage: %v", err)
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		log.Printf("⚠️  Object storage bucket not ready: %v\n", err)
	}

	textGenerator, err := services.NewTextGenerator(
		cfg.LLM.Provider,
		cfg.LLM.GeminiAPIKey,
		cfg.LLM.OpenAIAPIKey,
		cfg.LLM.Model,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM client: %v", err)
	}
	log.Printf("✅ LLM client initialized (%s)\n", cfg.LLM.Provider)

	// Reference retrieval is optional; question generation works without it.
	var embedder services.Embedder
	var referenceStore services.ReferenceStore
	if cfg.LLM.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.EmbedModel)
		if err != nil {
			log.Printf("⚠️  Embeddings unavailable: %v\n", err)
		} else {
			embedder = gemini
		}

		store, err := services.NewReferenceStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Printf("⚠️  Qdrant unavailable: %v\n", err)
		} else if err := store.InitCollection(ctx); err != nil {
			log.Printf("⚠️  Qdrant collection unavailable: %v\n", err)
		} else {
			referenceStore = store
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	questionCache, err := services.NewQuestionCache(ctx, cfg.Cache.RedisURL, services.QuestionCacheOptions{
		TTL:                cfg.Cache.TTL,
		MaxQuestionsPerKey: cfg.Cache.MaxQuestionsPerKey,
		CleanupInterval:    cfg.Cache.CleanupInterval,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize question cache: %v", err)
	}
	cacheJanitor := services.NewCacheJanitor(questionCache, cfg.Cache.CleanupInterval)

	piiDetector := services.NewPIIDetector()
	resumeIntake := services.NewResumeIntake(
		storageService,
		services.NewPDFParser(),
		piiDetector,
		objectStore,
		resumeRepo,
	)

	questionGenerator := services.NewQuestionGenerator(
		textGenerator,
		embedder,
		referenceStore,
		resumeRepo,
		questionCache,
		cfg.LLM.MaxRetries,
	)
	followUpGenerator := services.NewFollowUpGenerator(textGenerator, cfg.LLM.MaxRetries)
	answerAnalyzer := services.NewAnswerAnalyzer(
		textGenerator,
		scoring.DefaultEngine(),
		interviewRepo,
		analysisRepo,
		cfg.LLM.MaxRetries,
	)
	log.Println("✅ Services initialized successfully")

	worker := services.NewWorker(analysisRepo, answerAnalyzer, cfg.Worker.Concurrency)
	worker.Start(ctx)
	cacheJanitor.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Jemyeonso Interview AI",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Question: handlers.NewQuestionHandler(questionGenerator, followUpGenerator, interviewRepo, questionCache),
		Answer:   handlers.NewAnswerHandler(answerAnalyzer, worker),
		Resume:   handlers.NewResumeHandler(resumeIntake, piiDetector),
		Health:   handlers.NewHealthHandler(objectStore),
	})
	log.Println("✅ Handlers initialized")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cacheJanitor.Stop()
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
