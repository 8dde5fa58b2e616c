package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kidquest/internal/ai"
	"kidquest/internal/config"
	"kidquest/internal/database"
	"kidquest/internal/handlers"
	"kidquest/internal/repository"
	"kidquest/internal/security"
	"kidquest/internal/service"
)

func main() {
	cfg := config.Load()

	// Database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Content generator
	provider, err := ai.NewProvider(context.Background(), ai.Config{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
		Retry: ai.RetryConfig{
			MaxAttempts: cfg.AIMaxAttempts,
			InitialWait: cfg.AIInitialWait,
			MaxWait:     cfg.AIMaxWait,
			Multiplier:  2.0,
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	log.Printf("Content generator ready (provider: %s, model: %s)", cfg.AIProvider, provider.ModelID())

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Repositories and services
	parentRepo := repository.NewParentRepository(db)
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)

	authService := service.NewAuthService(parentRepo, tokens, emailService)
	parentService := service.NewParentService(parentRepo)
	quizService := service.NewQuizService(parentRepo, provider, cfg.QuizQuestions)
	questService := service.NewQuestService(parentRepo)
	giftService := service.NewGiftService(parentRepo)
	puzzleService := service.NewPuzzleService(parentRepo)
	reportService := service.NewReportService(parentRepo, provider, emailService)
	scheduleService := service.NewScheduleService(parentRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	parentHandler := handlers.NewParentHandler(parentService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questHandler := handlers.NewQuestHandler(questService)
	giftHandler := handlers.NewGiftHandler(giftService)
	puzzleHandler := handlers.NewPuzzleHandler(puzzleService)
	reportHandler := handlers.NewReportHandler(reportService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	// 10 auth attempts per IP per minute
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokens, limiter)

	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.RateLimit(authHandler.Login))

	// Parent routes
	mux.HandleFunc("POST /parents", middleware.RequireAuth(parentHandler.CreateParent))
	mux.HandleFunc("GET /parents", middleware.RequireAuth(parentHandler.ListParents))
	mux.HandleFunc("GET /parents/{parentId}", middleware.RequireAuth(parentHandler.GetParent))
	mux.HandleFunc("PATCH /parents/{parentId}", middleware.RequireAuth(parentHandler.UpdateParent))
	mux.HandleFunc("DELETE /parents/{parentId}", middleware.RequireAuth(parentHandler.DeleteParent))

	// Child routes
	mux.HandleFunc("POST /parents/{parentId}/kids", middleware.RequireAuth(parentHandler.AddChild))
	mux.HandleFunc("PATCH /parents/{parentId}/kids/{kidId}", middleware.RequireAuth(parentHandler.UpdateChild))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}", middleware.RequireAuth(parentHandler.DeleteChild))
	mux.HandleFunc("GET /parents/child/{childId}", parentHandler.FindChild)

	// Quiz routes
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/quizzes", middleware.RequireAuth(quizHandler.GenerateQuiz))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/quizzes", middleware.RequireAuth(quizHandler.ListQuizzes))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/quizzes/{quizId}", middleware.RequireAuth(quizHandler.GetQuiz))
	mux.HandleFunc("PATCH /parents/{parentId}/kids/{kidId}/quizzes/{quizId}", middleware.RequireAuth(quizHandler.UpdateQuiz))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}/quizzes/{quizId}", middleware.RequireAuth(quizHandler.DeleteQuiz))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/quizzes/{quizId}/submit", middleware.RequireAuth(quizHandler.SubmitQuiz))

	// Question routes
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/quizzes/{quizId}/questions", middleware.RequireAuth(quizHandler.AddQuestion))
	mux.HandleFunc("PATCH /parents/{parentId}/kids/{kidId}/quizzes/{quizId}/questions/{questionId}", middleware.RequireAuth(quizHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}/quizzes/{quizId}/questions/{questionId}", middleware.RequireAuth(quizHandler.DeleteQuestion))

	// Quest routes
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/quests", middleware.RequireAuth(questHandler.GetQuests))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/quests/{questId}/claim", middleware.RequireAuth(questHandler.ClaimQuest))

	// Gift routes
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/gifts", middleware.RequireAuth(giftHandler.AddGift))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/gifts", middleware.RequireAuth(giftHandler.ListGifts))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}/gifts/{giftId}", middleware.RequireAuth(giftHandler.DeleteGift))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/gifts/{giftId}/buy", middleware.RequireAuth(giftHandler.BuyGift))

	// Puzzle routes
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/puzzles", middleware.RequireAuth(puzzleHandler.AddPuzzle))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/puzzles", middleware.RequireAuth(puzzleHandler.ListPuzzles))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/puzzles/{puzzleId}", middleware.RequireAuth(puzzleHandler.GetPuzzle))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}/puzzles/{puzzleId}", middleware.RequireAuth(puzzleHandler.DeletePuzzle))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/puzzles/{puzzleId}/submit", middleware.RequireAuth(puzzleHandler.SubmitPuzzle))

	// Report routes
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/review", middleware.RequireAuth(reportHandler.GenerateReview))

	// Schedule routes
	mux.HandleFunc("GET /parents/{parentId}/schedules", middleware.RequireAuth(scheduleHandler.ListParentSchedules))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/schedules", middleware.RequireAuth(scheduleHandler.AddSchedule))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules", middleware.RequireAuth(scheduleHandler.ListSchedules))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules/available", middleware.RequireAuth(scheduleHandler.ListAvailable))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules/upcoming", middleware.RequireAuth(scheduleHandler.ListUpcoming))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules/completed", middleware.RequireAuth(scheduleHandler.ListCompleted))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules/stats", middleware.RequireAuth(scheduleHandler.GetStats))
	mux.HandleFunc("GET /parents/{parentId}/kids/{kidId}/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.GetSchedule))
	mux.HandleFunc("PATCH /parents/{parentId}/kids/{kidId}/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.UpdateSchedule))
	mux.HandleFunc("DELETE /parents/{parentId}/kids/{kidId}/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.DeleteSchedule))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/schedules/{scheduleId}/complete", middleware.RequireAuth(scheduleHandler.CompleteSchedule))
	mux.HandleFunc("POST /parents/{parentId}/kids/{kidId}/schedules/sync", middleware.RequireAuth(scheduleHandler.SyncSchedules))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
