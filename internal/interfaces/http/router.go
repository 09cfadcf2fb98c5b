package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/po-classifier/internal/application/usecase"
	"github.com/jhoicas/po-classifier/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Classifier         *usecase.CachedClassifier
	Sessions           *session.Store
	Log                *logger.Logger
	DefaultModel       string
	DefaultTemperature float64
}

// Router registra las rutas del formulario y de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Sessions == nil {
		deps.Sessions = session.New()
	}
	handler := NewClassificationHandler(deps)

	// Formulario HTML
	app.Get("/", handler.Form)
	app.Post("/classify", handler.SubmitForm)

	// API JSON
	api := app.Group("/api")
	api.Post("/classify", handler.Classify)
}
