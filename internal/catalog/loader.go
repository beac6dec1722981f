package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"wellness-planner/internal/domain"
)

//go:embed data/default_catalog.json
var defaultCatalogJSON []byte

type document struct {
	Version          string           `json:"version"`
	DefaultProductID string           `json:"default_product_id"`
	Products         []domain.Product `json:"products"`
}

// ProductSource entrega los productos desde un almacenamiento externo (p.ej. Postgres).
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// LoadDefault carga el catálogo embebido en el binario.
func LoadDefault(defaultProductID string) (*Catalog, error) {
	return Parse(defaultCatalogJSON, defaultProductID)
}

// LoadFile lee un documento de catálogo JSON desde disco.
func LoadFile(path, defaultProductID string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(b, defaultProductID)
}

// Parse decodifica un documento de catálogo. Un defaultProductID no vacío
// reemplaza al declarado en el documento.
func Parse(data []byte, defaultProductID string) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if defaultProductID == "" {
		defaultProductID = doc.DefaultProductID
	}
	return New(doc.Version, defaultProductID, doc.Products)
}

// LoadFromSource arma el catálogo a partir de un ProductSource.
func LoadFromSource(ctx context.Context, src ProductSource, version, defaultProductID string) (*Catalog, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return New(version, defaultProductID, products)
}
