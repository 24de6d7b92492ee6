package measurement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type measurementHandler struct {
	measurementService MeasurementService
}

type MeasurementHandler interface {
	Create() gin.HandlerFunc
	ListByDevice() gin.HandlerFunc
}

func NewMeasurementHandler(measurementService MeasurementService) MeasurementHandler {
	return &measurementHandler{
		measurementService: measurementService,
	}
}

// RegisterRoutes monta as rotas de medições sob /api/mediciones.
func RegisterRoutes(r gin.IRouter, h MeasurementHandler) {
	group := r.Group("/api/mediciones")
	group.POST("", h.Create())
	group.GET("/dispositivo/:id_dispositivo", h.ListByDevice())
}

// Create recebe uma medição no formato
// {"id_dispositivo": int, "corriente": float, "voltaje": float, "potencia": float}.
// Responde 201 com a medição gravada, 400 se faltar algum campo e 500 se o Redis falhar.
func (h *measurementHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MeasurementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err)
			measurementsRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ErrMissingFields.Error()})
			return
		}

		m, err := h.measurementService.Record(c.Request.Context(), req)
		if errors.Is(err, ErrMissingFields) {
			measurementsRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error al crear medición",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": m})
	}
}

func (h *measurementHandler) ListByDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, err := strconv.Atoi(c.Param("id_dispositivo"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "id_dispositivo inválido"})
			return
		}

		measurements, err := h.measurementService.ListByDevice(c.Request.Context(), deviceID)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error al obtener las mediciones",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": measurements})
	}
}
