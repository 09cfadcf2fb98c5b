package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/po-classifier/internal/application/usecase"
	infraai "github.com/jhoicas/po-classifier/internal/infrastructure/ai"
	httpRouter "github.com/jhoicas/po-classifier/internal/interfaces/http"
	"github.com/jhoicas/po-classifier/pkg/config"
	"github.com/jhoicas/po-classifier/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("model", cfg.AI.DefaultModel).
		Float64("temperature", cfg.AI.DefaultTemperature).
		Msg("iniciando aplicación")

	if cfg.AI.APIKey == "" {
		log.Warn().Msg("GROQ_API_KEY vacío: las clasificaciones fallarán")
	}

	groqSvc := infraai.NewGroqService(infraai.GroqConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	})
	classifyUC := usecase.NewClassificationUseCase(groqSvc, usecase.ClassifierConfig{
		APIKey:             cfg.AI.APIKey,
		DefaultModel:       cfg.AI.DefaultModel,
		DefaultTemperature: cfg.AI.DefaultTemperature,
		SystemPrompt:       cfg.AI.SystemPrompt,
	})
	// Cache de resultados compartido por todas las sesiones, vive lo que vive el proceso.
	classifier := usecase.NewCachedClassifier(classifyUC, usecase.NewResultCache())

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: la llamada al modelo bloquea la respuesta todo su round-trip.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PO Classifier API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Classifier:         classifier,
		Sessions:           session.New(),
		Log:                log,
		DefaultModel:       cfg.AI.DefaultModel,
		DefaultTemperature: cfg.AI.DefaultTemperature,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
