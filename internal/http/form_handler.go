package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wellness-planner/internal/domain"
)

// FormHandler sirve la definición del formulario y valida cada paso.
type FormHandler struct {
	logger *zap.Logger
}

func NewFormHandler(logger *zap.Logger) *FormHandler {
	return &FormHandler{logger: logger}
}

// Options maneja GET /form.
func (h *FormHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, domain.DefaultFormOptions())
}

// ValidateStep maneja POST /form/steps/:step/validate.
func (h *FormHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown form step"})
		return
	}

	var profile domain.ClientProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("invalid step validation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err = profile.Normalize().ValidateStep(step)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true})
	case errors.Is(err, domain.ErrUnknownStep):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown form step"})
	default:
		writeValidationError(c, err)
	}
}

// writeValidationError responde 400 con el mapa de campos cuando err es un ValidationError.
func writeValidationError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "invalid profile", "fields": verr.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "invalid profile"})
}
