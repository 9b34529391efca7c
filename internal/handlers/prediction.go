package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/services"
	"github.com/agrisight/agrisight-backend/internal/types"
)

const maxImageUploadBytes = 5 * 1024 * 1024

type PredictionHandler struct {
	log               *logger.Logger
	predictionService services.PredictionService
	uploadsDir        string
}

func NewPredictionHandler(log *logger.Logger, predictionService services.PredictionService, uploadsDir string) *PredictionHandler {
	return &PredictionHandler{
		log:               log.With("handler", "PredictionHandler"),
		predictionService: predictionService,
		uploadsDir:        uploadsDir,
	}
}

// POST /api/predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("image file is required"))
		return
	}
	if file.Size > maxImageUploadBytes {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("image exceeds %d bytes", maxImageUploadBytes))
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("only image uploads are allowed"))
		return
	}

	imagePath := filepath.Join(h.uploadsDir, uuid.New().String()+"-"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, fmt.Errorf("store uploaded image: %w", err))
		return
	}

	user := &types.User{ID: rd.UserID, Email: rd.Email, Name: rd.Name, Role: rd.Role}
	result, err := h.predictionService.PredictAndStore(c.Request.Context(), user, imagePath)
	if err != nil {
		if errors.Is(err, services.ErrInferenceUnavailable) {
			RespondError(c, http.StatusBadGateway, CodeUpstreamUnavailable, err)
			return
		}
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}

	RespondOK(c, gin.H{
		"predictionId": result.Prediction.ID,
		"result":       result.Enriched,
	})
}

// GET /api/predict/history
func (h *PredictionHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	predictions, err := h.predictionService.History(c.Request.Context(), rd.UserID, rd.Role, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, predictions)
}
