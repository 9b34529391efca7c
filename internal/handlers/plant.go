package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisight/agrisight-backend/internal/services"
)

type PlantHandler struct {
	plantService services.PlantService
}

func NewPlantHandler(plantService services.PlantService) *PlantHandler {
	return &PlantHandler{plantService: plantService}
}

// GET /api/plant
func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.plantService.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, plants)
}

// GET /api/plant/:species
func (h *PlantHandler) Get(c *gin.Context) {
	species := c.Param("species")
	plant, err := h.plantService.GetBySpecies(c.Request.Context(), species)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	if plant == nil {
		RespondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("plant %q not found", species))
		return
	}
	RespondOK(c, plant)
}

// POST /api/plant (admin only)
func (h *PlantHandler) Upsert(c *gin.Context) {
	var input services.PlantUpsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}

	plant, err := h.plantService.Upsert(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondCreated(c, plant)
}
