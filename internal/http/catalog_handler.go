package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wellness-planner/internal/catalog"
)

// CatalogHandler expone el catálogo para la pantalla de productos.
type CatalogHandler struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
}

func NewCatalogHandler(logger *zap.Logger, c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: c}
}

// ListProducts maneja GET /catalog.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.catalog.Version(),
		"categories": h.catalog.Categories(),
		"products":   h.catalog.Products(),
	})
}

// GetProduct maneja GET /catalog/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("get product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}
