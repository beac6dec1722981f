package http

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wellness-planner/internal/domain"
	"wellness-planner/internal/email"
	"wellness-planner/internal/report"
	"wellness-planner/internal/service"
)

// Planner es lo que el handler necesita de service.PlannerService.
type Planner interface {
	CreateRecommendation(ctx context.Context, profile domain.ClientProfile) (domain.Recommendation, error)
	Get(ctx context.Context, id string) (domain.Recommendation, error)
	Discard(ctx context.Context, id string) error
	Document(ctx context.Context, id string) (report.Document, error)
	Share(ctx context.Context, id string) (service.ShareLink, error)
	ResolveShare(ctx context.Context, token string) (domain.Recommendation, error)
	EmailPlan(ctx context.Context, id string) error
	Contact() domain.AdminContact
}

// RecommendationHandler mantiene dependencias para los endpoints del plan.
type RecommendationHandler struct {
	logger  *zap.Logger
	planner Planner
}

func NewRecommendationHandler(logger *zap.Logger, planner Planner) *RecommendationHandler {
	return &RecommendationHandler{logger: logger, planner: planner}
}

// Create maneja POST /recommendations.
func (h *RecommendationHandler) Create(c *gin.Context) {
	var profile domain.ClientProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("invalid recommendation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		writeValidationError(c, err)
		return
	}

	rec, err := h.planner.CreateRecommendation(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No hay productos disponibles para recomendar en este momento. Inténtalo más tarde."})
			return
		}
		h.logger.Error("create recommendation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create recommendation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recommendation": rec, "advisor": h.planner.Contact()})
}

// Get maneja GET /recommendations/:id.
func (h *RecommendationHandler) Get(c *gin.Context) {
	rec, err := h.planner.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get recommendation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec, "advisor": h.planner.Contact()})
}

// Discard maneja DELETE /recommendations/:id ("empezar de nuevo").
func (h *RecommendationHandler) Discard(c *gin.Context) {
	if err := h.planner.Discard(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "discard recommendation", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Document maneja GET /recommendations/:id/document.
func (h *RecommendationHandler) Document(c *gin.Context) {
	doc, err := h.planner.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "render document", err)
		return
	}
	writeDocument(c, doc)
}

// Share maneja POST /recommendations/:id/share.
func (h *RecommendationHandler) Share(c *gin.Context) {
	link, err := h.planner.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "share recommendation", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":      link.Token,
		"expires_at": link.ExpiresAt,
		"path":       "/shared/" + link.Token,
	})
}

// GetShared maneja GET /shared/:token.
func (h *RecommendationHandler) GetShared(c *gin.Context) {
	rec, err := h.planner.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeError(c, "resolve share", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec, "advisor": h.planner.Contact()})
}

// SharedDocument maneja GET /shared/:token/document.
func (h *RecommendationHandler) SharedDocument(c *gin.Context) {
	rec, err := h.planner.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeError(c, "resolve share", err)
		return
	}
	doc, err := report.Render(rec, h.planner.Contact())
	if err != nil {
		h.writeError(c, "render shared document", err)
		return
	}
	writeDocument(c, doc)
}

// Email maneja POST /recommendations/:id/email.
func (h *RecommendationHandler) Email(c *gin.Context) {
	if err := h.planner.EmailPlan(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "email plan", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func writeDocument(c *gin.Context, doc report.Document) {
	c.Header("Content-Disposition", contentDisposition(doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// contentDisposition deja que mime cite o codifique (RFC 2231) el nombre del archivo.
func contentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

func (h *RecommendationHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRecommendationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
	case errors.Is(err, service.ErrShareTokenExpired):
		c.JSON(http.StatusGone, gin.H{"error": "share link expired"})
	case errors.Is(err, service.ErrShareTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid share link"})
	case errors.Is(err, service.ErrShareDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "share links unavailable"})
	case errors.Is(err, email.ErrEmailDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
	case errors.Is(err, service.ErrNoClientEmail):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recommendation has no email"})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
