package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/services"
)

const maxDatasetUploadBytes = 200 * 1024 * 1024

var allowedZipContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"multipart/x-zip":              true,
}

type AdminHandler struct {
	log               *logger.Logger
	adminService      services.AdminService
	datasetService    services.DatasetService
	predictionService services.PredictionService
	uploadsDir        string
}

func NewAdminHandler(
	log *logger.Logger,
	adminService services.AdminService,
	datasetService services.DatasetService,
	predictionService services.PredictionService,
	uploadsDir string,
) *AdminHandler {
	return &AdminHandler{
		log:               log.With("handler", "AdminHandler"),
		adminService:      adminService,
		datasetService:    datasetService,
		predictionService: predictionService,
		uploadsDir:        uploadsDir,
	}
}

// GET /api/admin/predictions
func (h *AdminHandler) ListPredictions(c *gin.Context) {
	predictions, err := h.predictionService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, predictions)
}

// POST /api/admin/disease
func (h *AdminHandler) CreateDisease(c *gin.Context) {
	var input services.DiseaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}
	disease, err := h.adminService.CreateDisease(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondCreated(c, disease)
}

// PUT /api/admin/disease/:id
func (h *AdminHandler) UpdateDisease(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("invalid disease id"))
		return
	}
	var input services.DiseaseUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}
	disease, err := h.adminService.UpdateDisease(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	RespondOK(c, disease)
}

// DELETE /api/admin/disease/:id
func (h *AdminHandler) DeleteDisease(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("invalid disease id"))
		return
	}
	if err := h.adminService.DeleteDisease(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/admin/market-price
func (h *AdminHandler) UpsertMarketPrice(c *gin.Context) {
	var input services.MarketPriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}
	price, err := h.adminService.UpsertMarketPrice(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondCreated(c, price)
}

// POST /api/admin/dataset/upload
func (h *AdminHandler) UploadDataset(c *gin.Context) {
	file, err := c.FormFile("datasetZip")
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("datasetZip file is required"))
		return
	}
	if file.Size > maxDatasetUploadBytes {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("archive exceeds %d bytes", maxDatasetUploadBytes))
		return
	}
	if !allowedZipContentTypes[file.Header.Get("Content-Type")] && !strings.HasSuffix(strings.ToLower(file.Filename), ".zip") {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("only ZIP uploads are allowed"))
		return
	}

	meta := services.DatasetMeta{Name: c.PostForm("name")}
	if meta.Name == "" {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("name is required"))
		return
	}
	if v := c.PostForm("description"); v != "" {
		meta.Description = &v
	}
	if v := c.PostForm("source"); v != "" {
		meta.Source = &v
	}

	zipPath := filepath.Join(h.uploadsDir, "datasets", uuid.New().String()+"-"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, zipPath); err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, fmt.Errorf("stage uploaded archive: %w", err))
		return
	}

	dataset, err := h.datasetService.Upload(c.Request.Context(), meta, zipPath)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeIngestionFailed, err)
		return
	}
	RespondCreated(c, dataset)
}

// GET /api/admin/dataset
func (h *AdminHandler) ListDatasets(c *gin.Context) {
	datasets, err := h.datasetService.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, datasets)
}

// GET /api/admin/dataset/:id
func (h *AdminHandler) GetDataset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("invalid dataset id"))
		return
	}
	detail, err := h.datasetService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	if detail == nil {
		RespondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("dataset not found"))
		return
	}
	RespondOK(c, detail)
}

// POST /api/admin/dataset/import-url
func (h *AdminHandler) ImportDatasetFromURL(c *gin.Context) {
	var body struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Source      *string `json:"source"`
		URL         string  `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, fmt.Errorf("url and name are required"))
		return
	}

	meta := services.DatasetMeta{Name: body.Name, Description: body.Description, Source: body.Source}
	dataset, err := h.datasetService.ImportFromURL(c.Request.Context(), meta, body.URL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeIngestionFailed, err)
		return
	}
	RespondCreated(c, dataset)
}
