package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oshilens/backend/internal/domain"
	"github.com/oshilens/backend/internal/usecase"
	"github.com/rs/zerolog/log"
)

const (
	serviceName    = "oshilens-backend"
	serviceVersion = "1.0.0"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	classifier    *usecase.ClassificationService
	maxImageBytes int64
}

// NewHandler creates a new HTTP handler. Nil services make their endpoints
// report that they are not configured.
func NewHandler(
	searchService *usecase.SearchService,
	classifier *usecase.ClassificationService,
	maxImageBytes int64,
) *Handler {
	return &Handler{
		searchService: searchService,
		classifier:    classifier,
		maxImageBytes: maxImageBytes,
	}
}

func abortWithError(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Analyze identifies the anime character and merchandise in a base64 image
func (h *Handler) Analyze(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "image" {
			abortWithError(c, http.StatusBadRequest, "Invalid image format", "Image must be a base64 encoded string")
			return
		}
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if req.Image == nil || strings.TrimSpace(*req.Image) == "" {
		abortWithError(c, http.StatusBadRequest, "No image provided", "Request body must include a base64 encoded image")
		return
	}

	if !h.classifier.Configured() {
		abortWithError(c, http.StatusInternalServerError, "API configuration error", "Vision API key is not configured")
		return
	}

	image, err := usecase.DecodeImage(*req.Image, req.MimeType, h.maxImageBytes)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid image format", err.Error())
		return
	}

	result, err := h.classifier.Classify(c.Request.Context(), image)
	if err != nil {
		h.handleAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleAnalyzeError(c *gin.Context, err error) {
	var validationErr *domain.ImageValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Info().Str("reason", validationErr.Reason).Msg("image rejected")
		abortWithError(c, http.StatusBadRequest, "Image validation failed", validationErr.Reason)
	case errors.Is(err, domain.ErrContentBlocked):
		log.Warn().Err(err).Msg("image blocked by content policy")
		abortWithError(c, http.StatusBadRequest, "Content policy violation", "The image was flagged by the provider's content policy")
	case errors.Is(err, domain.ErrInvalidRequest):
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, domain.ErrProviderNotConfigured):
		log.Error().Err(err).Msg("vision provider not configured")
		abortWithError(c, http.StatusInternalServerError, "API configuration error", "Vision API key is missing or invalid")
	case errors.Is(err, domain.ErrMalformedResponse):
		log.Error().Err(err).Msg("could not parse vision response")
		abortWithError(c, http.StatusInternalServerError, "Analysis parsing error", err.Error())
	default:
		log.Error().Err(err).Msg("image analysis failed")
		abortWithError(c, http.StatusInternalServerError, "Image analysis failed", err.Error())
	}
}

// Search finds Mercari and Suruga-ya listings for a keyword
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if h.searchService == nil {
		abortWithError(c, http.StatusInternalServerError, "Search service not configured", "Search API key is not configured")
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			abortWithError(c, http.StatusBadRequest, "Invalid request", "keyword is required")
		case errors.Is(err, domain.ErrProviderNotConfigured):
			log.Error().Err(err).Msg("search provider not configured")
			abortWithError(c, http.StatusInternalServerError, "Search service not configured", "Search API key is not configured")
		case errors.Is(err, domain.ErrSearchProviderFailure):
			log.Error().Err(err).Str("keyword", req.Keyword).Msg("search provider failed")
			abortWithError(c, http.StatusBadGateway, "Search provider unavailable", err.Error())
		default:
			log.Error().Err(err).Str("keyword", req.Keyword).Msg("search failed")
			abortWithError(c, http.StatusInternalServerError, "Search failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Upload accepts a multipart image and returns a receipt. No analysis is performed.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "No file uploaded", "Multipart form field 'file' is required")
		return
	}

	if h.maxImageBytes > 0 && file.Size > h.maxImageBytes {
		abortWithError(c, http.StatusBadRequest, "File too large", "Image size must be less than the configured limit")
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		f, err := file.Open()
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid file", err.Error())
			return
		}
		defer f.Close()
		if detected, err := mimetype.DetectReader(f); err == nil {
			mimeType = detected.String()
		}
	}

	receipt := domain.UploadReceipt{
		Success:    true,
		Message:    "File uploaded successfully",
		FileSize:   file.Size,
		FileName:   file.Filename,
		MimeType:   mimeType,
		AnalysisID: "analysis_" + uuid.NewString(),
	}

	log.Info().
		Str("fileName", receipt.FileName).
		Int64("fileSize", receipt.FileSize).
		Str("analysisId", receipt.AnalysisID).
		Msg("file uploaded")

	c.JSON(http.StatusOK, receipt)
}
