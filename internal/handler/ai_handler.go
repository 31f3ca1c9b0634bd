package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "hirelink/internal/errors"
	"hirelink/internal/llm"
	"hirelink/internal/resume"
	"hirelink/internal/service"
)

// AIHandler serves the embedding, resume extraction and bio endpoints.
type AIHandler struct {
	ai service.AIService
}

// NewAIHandler creates an AI handler.
func NewAIHandler(ai service.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

// Embedding is one embedding vector.
type Embedding struct {
	Values []float32 `json:"values"`
}

// EmbeddingResponse is the body of a successful embedding request.
type EmbeddingResponse struct {
	Embeddings []Embedding `json:"embeddings"`
}

// ExtractResumeResponse is the body of a successful resume extraction.
type ExtractResumeResponse struct {
	Text string `json:"text"`
}

// GenerateBioRequest is the body of a bio request.
type GenerateBioRequest struct {
	ResumeText          string `json:"resumeText" validate:"required"`
	WorkStylePreference string `json:"workStylePreference,omitempty"`
	IndustryPreference  string `json:"industryPreference,omitempty"`
	LocationPreference  string `json:"locationPreference,omitempty"`
}

// GenerateBioResponse is the body of every bio response, success or not.
type GenerateBioResponse struct {
	Bio     string `json:"bio"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// GetEmbedding godoc
// @Summary Embed text
// @Description The body is a JSON string holding the raw text.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param text body string true "Text to embed"
// @Success 200 {object} EmbeddingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /get-embedding [post]
func (h *AIHandler) GetEmbedding(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, resume.MaxUploadSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "cannot read request body",
			Code:  "INVALID_INPUT",
		})
	}
	if int64(len(body)) > resume.MaxUploadSize {
		return domainError(apperrors.ErrFileTooLarge)
	}

	var text string
	if err := json.Unmarshal(body, &text); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "body must be a JSON string",
			Code:  "INVALID_INPUT",
		})
	}

	vec, err := h.ai.Embed(c.Request().Context(), text)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, EmbeddingResponse{Embeddings: []Embedding{{Values: vec}}})
}

// ExtractResume godoc
// @Summary Extract resume text
// @Description Accepts plain text, markdown, PDF or DOCX up to 5 MiB.
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume file"
// @Success 200 {object} ExtractResumeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /extract-resume [post]
func (h *AIHandler) ExtractResume(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "multipart field \"file\" is required",
			Code:  "INVALID_INPUT",
		})
	}
	if fh.Size > resume.MaxUploadSize {
		return domainError(apperrors.ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "INVALID_INPUT",
		})
	}
	defer f.Close()

	text, err := h.ai.ExtractResume(c.Request().Context(), f)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ExtractResumeResponse{Text: text})
}

// GenerateBio godoc
// @Summary Generate a bio
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateBioRequest true "Resume and preferences"
// @Success 200 {object} GenerateBioResponse
// @Failure 400 {object} GenerateBioResponse
// @Failure 503 {object} GenerateBioResponse
// @Router /generate-bio [post]
func (h *AIHandler) GenerateBio(c echo.Context) error {
	var req GenerateBioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, GenerateBioResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil || strings.TrimSpace(req.ResumeText) == "" {
		return c.JSON(http.StatusBadRequest, GenerateBioResponse{Error: "resumeText is required"})
	}

	bio, err := h.ai.GenerateBio(c.Request().Context(), llm.BioInput{
		ResumeText:          req.ResumeText,
		WorkStylePreference: req.WorkStylePreference,
		IndustryPreference:  req.IndustryPreference,
		LocationPreference:  req.LocationPreference,
	})
	if err != nil {
		mapped := apperrors.MapErrorToHTTP(err)
		msg := mapped.Message
		if errors.Is(err, apperrors.ErrAIUnavailable) {
			msg = "bio generation is unavailable, please try again later"
		}
		return c.JSON(mapped.StatusCode, GenerateBioResponse{Error: msg})
	}

	return c.JSON(http.StatusOK, GenerateBioResponse{Bio: bio, Success: true})
}
