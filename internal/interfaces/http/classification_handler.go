package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/jhoicas/po-classifier/internal/application/dto"
	"github.com/jhoicas/po-classifier/internal/application/usecase"
	"github.com/jhoicas/po-classifier/internal/domain"
	"github.com/jhoicas/po-classifier/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// sessionLastKey clave de sesión con la última tupla clasificada por el navegador.
const sessionLastKey = "last_inputs"

// Mensajes mostrados en el formulario.
const (
	msgEmptyDescription = "Please enter a PO description."
	msgReused           = "Reused the most recent result for these inputs."
)

// ClassificationHandler maneja el formulario y la API de clasificación de órdenes de compra.
type ClassificationHandler struct {
	classifier         *usecase.CachedClassifier
	sessions           *session.Store
	log                *logger.Logger
	defaultModel       string
	defaultTemperature float64
}

// NewClassificationHandler construye el handler.
func NewClassificationHandler(deps RouterDeps) *ClassificationHandler {
	return &ClassificationHandler{
		classifier:         deps.Classifier,
		sessions:           deps.Sessions,
		log:                deps.Log,
		defaultModel:       deps.DefaultModel,
		defaultTemperature: deps.DefaultTemperature,
	}
}

// pageData datos del template del formulario.
type pageData struct {
	Description string
	Supplier    string
	Model       string
	Temperature string
	Warning     string
	Info        string
	Error       string
	Result      *dto.ClassifyResponse
}

// Form muestra el formulario vacío con los valores por defecto.
func (h *ClassificationHandler) Form(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, h.emptyPage())
}

// SubmitForm procesa el POST del formulario HTML.
func (h *ClassificationHandler) SubmitForm(c *fiber.Ctx) error {
	page := h.emptyPage()
	page.Description = c.FormValue("po_description")
	page.Supplier = c.FormValue("supplier")
	if m := c.FormValue("model"); m != "" {
		page.Model = m
	}
	if t := c.FormValue("temperature"); t != "" {
		page.Temperature = t
	}

	if strings.TrimSpace(page.Description) == "" {
		page.Warning = msgEmptyDescription
		return h.render(c, fiber.StatusBadRequest, page)
	}

	in := dto.ClassifyRequest{
		Description: page.Description,
		Supplier:    page.Supplier,
		Model:       &page.Model,
	}
	temp, err := strconv.ParseFloat(strings.TrimSpace(page.Temperature), 64)
	if err != nil {
		page.Warning = "Temperature must be a number between 0 and 1."
		return h.render(c, fiber.StatusBadRequest, page)
	}
	in.Temperature = &temp

	result, err := h.classify(c, in)
	if err != nil {
		status, msg := mapError(err)
		if status == fiber.StatusBadRequest {
			page.Warning = msg
		} else {
			page.Error = msg
		}
		return h.render(c, status, page)
	}

	// La sesión solo recuerda la última tupla; un fallo aquí no invalida el resultado.
	if sess, err := h.sessions.Get(c); err != nil {
		h.log.Warn().Err(err).Msg("obtener sesión")
	} else {
		if last, ok := sess.Get(sessionLastKey).(string); ok && last == result.key {
			page.Info = msgReused
		}
		sess.Set(sessionLastKey, result.key)
		if err := sess.Save(); err != nil {
			h.log.Warn().Err(err).Msg("guardar sesión")
		}
	}

	page.Result = &result.resp
	return h.render(c, fiber.StatusOK, page)
}

// Classify godoc
// @Summary      Clasificar orden de compra (L1/L2/L3)
// @Description  Envía la descripción y el proveedor al modelo y devuelve el texto crudo
//               junto con el JSON parseado cuando es válido. Resultados idénticos se reutilizan.
// @Tags         classification
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClassifyRequest  true  "po_description (obligatorio), supplier, model y temperature (opcionales)"
// @Success      200   {object}  dto.ClassifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/classify [post]
func (h *ClassificationHandler) Classify(c *fiber.Ctx) error {
	var in dto.ClassifyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	result, err := h.classify(c, in)
	if err != nil {
		status, msg := mapError(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: errorCode(status), Message: msg})
	}
	return c.JSON(result.resp)
}

type classifyResult struct {
	resp dto.ClassifyResponse
	key  string
}

// classify ejecuta la clasificación medida y registra el resultado.
func (h *ClassificationHandler) classify(c *fiber.Ctx, in dto.ClassifyRequest) (classifyResult, error) {
	id := uuid.New().String()
	h.log.Debug().
		Str("id", id).
		Int("description_len", len(in.Description)).
		Str("supplier", in.Supplier).
		Bool("model_override", in.Model != nil).
		Bool("temperature_override", in.Temperature != nil).
		Msg("petición de clasificación recibida")

	start := time.Now()
	out, err := h.classifier.Classify(c.UserContext(), in)
	latency := time.Since(start)
	if err != nil {
		ev := h.log.Warn()
		if errors.Is(err, domain.ErrTransportFailure) {
			ev = h.log.Error()
		}
		ev.Err(err).Str("id", id).Dur("latency", latency).Msg("clasificación fallida")
		return classifyResult{}, err
	}

	resp := dto.NewClassifyResponse(id, out.Result)
	resp.Cached = out.Cached
	resp.Model = out.Model
	resp.Temperature = out.Temperature
	resp.LatencyMs = latency.Milliseconds()

	h.log.Info().
		Str("id", id).
		Str("model", out.Model).
		Float64("temperature", out.Temperature).
		Bool("cached", out.Cached).
		Bool("valid_json", resp.ValidJSON).
		Dur("latency", latency).
		Msg("clasificación completada")

	return classifyResult{resp: resp, key: out.Key}, nil
}

func (h *ClassificationHandler) emptyPage() pageData {
	return pageData{
		Model:       h.defaultModel,
		Temperature: strconv.FormatFloat(h.defaultTemperature, 'f', -1, 64),
	}
}

func (h *ClassificationHandler) render(c *fiber.Ctx, status int, page pageData) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// mapError traduce los errores de dominio a status HTTP y mensaje.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrTransportFailure):
		return fiber.StatusBadGateway, err.Error()
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION"
	case fiber.StatusBadGateway:
		return "AI_UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
