package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/layout"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfgPath := os.Getenv("RESUME_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.FromEnvironment(cfgPath)
	if err != nil {
		slog.Error("Invalid configuration", "path", cfgPath, "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// render log is optional
	pool, err := infra.NewRenderLogPool(ctx, cfg.Database.URL)
	if err != nil {
		slog.Warn("Render log DB not available", "error", err)
		pool = nil
	}
	if pool != nil {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Warn("Render log disabled after failed migrations", "error", err)
			pool.Close()
			pool = nil
		} else {
			defer pool.Close()
		}
	}
	jobsRepo := repo.NewJobsRepo(pool)

	created, _ := cfg.CreationDate()
	renderer := infra.NewFpdfRenderer(
		infra.WithCompression(cfg.Render.Compress),
		infra.WithCreationDate(created),
	)
	processor := usecase.NewProcessor(
		renderer,
		infra.NewQRGenerator(cfg.Assets.Dir),
		infra.NewFileExporter(cfg.Export.Dir),
		usecase.WithDefaultFont(cfg.Render.Font),
		usecase.WithDefaultTemplate(layout.ParseTemplate(cfg.Render.Template)),
		usecase.WithRenderLog(jobsRepo),
	)

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	h := httpadapter.NewHandler(processor, jobsRepo, cfg.Export.AllowSaveDir)
	h.Register(app)

	go func() {
		slog.Info("Resume server listening", "port", cfg.Server.Port, "render_log", jobsRepo.Enabled())
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func newLogger(c config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
