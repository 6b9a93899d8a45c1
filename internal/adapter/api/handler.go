package api

import (
	"github.com/gofiber/fiber/v2"

	"mindemotion-core/internal/domain/entity"
	"mindemotion-core/internal/domain/repository"
	"mindemotion-core/internal/usecase"
)

// Handler is the dispatch layer: it extracts the payload, delegates to
// exactly one collaborator, and maps the outcome to an HTTP status.
// Collaborators never choose status codes themselves.
type Handler struct {
	emotions  repository.EmotionClassifier
	scans     repository.ScanClassifier
	coping    *usecase.CopingService
	assistant *usecase.Assistant
	images    *usecase.ImageLink
}

func NewHandler(
	emotions repository.EmotionClassifier,
	scans repository.ScanClassifier,
	coping *usecase.CopingService,
	assistant *usecase.Assistant,
	images *usecase.ImageLink,
) *Handler {
	return &Handler{
		emotions:  emotions,
		scans:     scans,
		coping:    coping,
		assistant: assistant,
		images:    images,
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Home lists the available capabilities.
func (h *Handler) Home(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "MindEmotion API is running",
		"endpoints": []string{
			"POST /predict - Text emotion classification (JSON: { text })",
			"POST /predict-mri - MRI tumor screening (multipart form-data key: file)",
			"POST /generate-coping - Coping strategies (JSON: { text })",
			"POST /generate-image - Image URL generation (JSON: { prompt })",
			"POST /chat - Supportive chat (JSON: { message, session_id? })",
			"POST /chat/session - Create an isolated chat session",
		},
	})
}

// PredictEmotion tolerates malformed bodies: a body that does not parse
// behaves like an empty text and fails the downstream empty check.
func (h *Handler) PredictEmotion(c *fiber.Ctx) error {
	var req predictRequest
	_ = c.BodyParser(&req)

	result, err := h.emotions.Classify(req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// PredictMri requires a multipart file under the exact key "file". Once
// a file is present the classifier is trusted; decode failures surface
// as collaborator faults.
func (h *Handler) PredictMri(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, entity.ErrMissingFile)
	}
	if fh.Filename == "" {
		return respondError(c, entity.ErrNoFilename)
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	result, err := h.scans.Classify(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GenerateImage parses strictly: a malformed body is rejected outright.
func (h *Handler) GenerateImage(c *fiber.Ctx) error {
	var req promptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.images.Generate(req.Prompt)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GenerateCoping parses strictly, like GenerateImage.
func (h *Handler) GenerateCoping(c *fiber.Ctx) error {
	var req predictRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.coping.Generate(c.Context(), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Chat never returns 400: an empty message yields a gentle prompt for
// input, and a malformed body behaves like an empty message.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	_ = c.BodyParser(&req)

	result, err := h.assistant.Respond(c.Context(), req.SessionID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// NewSession hands out a fresh session id for an isolated conversation.
func (h *Handler) NewSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"session_id": h.assistant.NewSession()})
}

// respondError maps validation errors to 400 and everything else to a
// generic 500, keeping the uniform {error} envelope.
func respondError(c *fiber.Ctx, err error) error {
	if entity.IsInvalidInput(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
