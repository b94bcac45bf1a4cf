package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"learndeck/internal/api"
	"learndeck/internal/app/service"
	"learndeck/internal/common/security"
	"learndeck/internal/domain/repository"
	"learndeck/internal/markdown"
	"learndeck/internal/platform/cache"
	"learndeck/internal/platform/config"
	"learndeck/internal/platform/database"
	"learndeck/internal/platform/logger"
	"learndeck/internal/sandbox"
)

func main() {
	config.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	security.InitJWT()

	database.Connect()
	defer database.Close()
	log.Info("database connected")

	summaryCache, err := cache.Connect()
	if err != nil {
		log.Fatal("could not connect to redis", zap.Error(err))
	}
	defer summaryCache.Close()
	log.Info("redis connected")

	// Repositories
	courseRepo := repository.NewPgCourseRepository(database.DB)
	lessonRepo := repository.NewPgLessonRepository(database.DB)
	noteRepo := repository.NewPgNoteRepository(database.DB)
	bookmarkRepo := repository.NewPgBookmarkRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)
	taskRepo := repository.NewPgSandboxTaskRepository(database.DB)
	submissionRepo := repository.NewPgSandboxSubmissionRepository(database.DB)
	settingsRepo := repository.NewPgSettingsRepository(database.DB)

	// The runner gets its own pool: raw user SQL over the simple protocol.
	runner := sandbox.NewSQLRunner(database.SandboxDB)
	renderer := markdown.NewRenderer()

	// Services
	svc := api.Services{
		Auth:     service.NewAuthService(settingsRepo),
		Course:   service.NewCourseService(courseRepo, lessonRepo, summaryCache, log),
		Lesson:   service.NewLessonService(lessonRepo, courseRepo, renderer, summaryCache, log),
		Note:     service.NewNoteService(noteRepo, lessonRepo, summaryCache),
		Bookmark: service.NewBookmarkService(bookmarkRepo, lessonRepo, summaryCache),
		Progress: service.NewProgressService(progressRepo, lessonRepo, noteRepo, bookmarkRepo, summaryCache, log),
		Sandbox:  service.NewSandboxService(taskRepo, submissionRepo, runner, log),
		Chat:     service.NewChatService(log),
		Data:     service.NewDataService(courseRepo, lessonRepo, noteRepo, bookmarkRepo, progressRepo, taskRepo, summaryCache, log),
	}

	router := api.NewRouter(svc)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-stop

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}
