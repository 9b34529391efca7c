package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/services"
)

type SensorHandler struct {
	sensorService services.SensorService
}

func NewSensorHandler(sensorService services.SensorService) *SensorHandler {
	return &SensorHandler{sensorService: sensorService}
}

// POST /api/sensor
func (h *SensorHandler) Record(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	var payload services.SensorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}

	reading, err := h.sensorService.Record(c.Request.Context(), rd.UserID, payload)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondCreated(c, reading)
}

// GET /api/sensor/history
func (h *SensorHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}

	readings, err := h.sensorService.History(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, readings)
}
