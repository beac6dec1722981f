package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"wellness-planner/internal/domain"
)

var (
	ErrNoProducts      = errors.New("catalog has no products")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
)

// Catalog es la lista ordenada de productos. Es inmutable después de New,
// por lo que puede compartirse entre requests sin locks.
type Catalog struct {
	version          string
	defaultProductID string
	products         []domain.Product
	byID             map[string]int
}

// New valida y normaliza los productos, conservando el orden recibido.
func New(version, defaultProductID string, products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	c := &Catalog{
		version:          strings.TrimSpace(version),
		defaultProductID: strings.TrimSpace(defaultProductID),
		products:         make([]domain.Product, 0, len(products)),
		byID:             make(map[string]int, len(products)),
	}
	for i, p := range products {
		np, err := normalizeProduct(p)
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		if _, dup := c.byID[np.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProduct, np.ID)
		}
		c.byID[np.ID] = len(c.products)
		c.products = append(c.products, np)
	}
	return c, nil
}

func normalizeProduct(p domain.Product) (domain.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.ID == "" {
		return p, fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if p.Name == "" {
		return p, fmt.Errorf("%w: %s has no name", ErrInvalidProduct, p.ID)
	}
	if p.Category == "" {
		return p, fmt.Errorf("%w: %s has no category", ErrInvalidProduct, p.ID)
	}
	if p.Price < 0 {
		return p, fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, p.ID)
	}
	if p.Points != nil && *p.Points < 0 {
		return p, fmt.Errorf("%w: %s has negative points", ErrInvalidProduct, p.ID)
	}

	tags := make([]string, 0, len(p.Tags))
	seen := make(map[string]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return p, fmt.Errorf("%w: %s has an empty tag", ErrInvalidProduct, p.ID)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	p.Tags = tags
	p.Benefits = slices.Clone(p.Benefits)
	p.KeyIngredients = slices.Clone(p.KeyIngredients)
	return p, nil
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) DefaultProductID() string { return c.defaultProductID }

func (c *Catalog) Len() int { return len(c.products) }

// Products devuelve una copia en el orden del catálogo.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// Categories lista las categorías distintas en orden de aparición.
func (c *Catalog) Categories() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
