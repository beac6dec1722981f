package service

import (
	"errors"
	"sort"

	"wellness-planner/internal/domain"
)

// ErrEmptyCatalog es el único error que devuelve el motor.
var ErrEmptyCatalog = errors.New("no products available to recommend")

const (
	maxComplementary      = 2
	minComplementaryScore = 10
)

// RecommendationEngine puntúa el catálogo contra un perfil. No guarda estado
// entre llamadas, así que un mismo valor se comparte entre goroutines.
type RecommendationEngine struct {
	defaultProductID string
	rules            []scoringRule
}

// NewRecommendationEngine usa defaultProductID cuando ninguna regla suma puntos.
func NewRecommendationEngine(defaultProductID string) RecommendationEngine {
	return RecommendationEngine{
		defaultProductID: defaultProductID,
		rules:            defaultScoringRules,
	}
}

// Score devuelve todos los productos con su puntaje, de mayor a menor.
// Los empates conservan el orden del catálogo.
func (e RecommendationEngine) Score(profile domain.ClientProfile, products []domain.Product) []domain.ScoredProduct {
	in := newScoringInput(profile)
	scored := make([]domain.ScoredProduct, len(products))
	for i, p := range products {
		sp := domain.ScoredProduct{Product: p}
		for _, r := range e.rules {
			n := r.hits(in, p)
			if n == 0 {
				continue
			}
			delta := r.delta * n
			sp.Score += delta
			sp.Reasons = append(sp.Reasons, domain.ScoreReason{Rule: r.name, Delta: delta})
		}
		scored[i] = sp
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

// Recommend elige el producto principal y hasta dos complementarios.
func (e RecommendationEngine) Recommend(profile domain.ClientProfile, products []domain.Product) (domain.RankedRecommendation, error) {
	if len(products) == 0 {
		return domain.RankedRecommendation{}, ErrEmptyCatalog
	}

	ranked := e.Score(profile, products)
	if ranked[0].Score == 0 {
		return e.fallback(products), nil
	}

	complementary := make([]domain.Product, 0, maxComplementary)
	for _, sp := range ranked[1:] {
		if len(complementary) == maxComplementary {
			break
		}
		if sp.Score > minComplementaryScore {
			complementary = append(complementary, sp.Product)
		}
	}
	return domain.RankedRecommendation{
		MainProduct:           ranked[0].Product,
		ComplementaryProducts: complementary,
	}, nil
}

// fallback se usa cuando ninguna regla aportó puntaje: producto por defecto
// (o el primero del catálogo) y los dos siguientes en orden de catálogo.
func (e RecommendationEngine) fallback(products []domain.Product) domain.RankedRecommendation {
	main := products[0]
	for _, p := range products {
		if p.ID == e.defaultProductID {
			main = p
			break
		}
	}
	complementary := make([]domain.Product, 0, maxComplementary)
	for _, p := range products {
		if len(complementary) == maxComplementary {
			break
		}
		if p.ID != main.ID {
			complementary = append(complementary, p)
		}
	}
	return domain.RankedRecommendation{
		MainProduct:           main,
		ComplementaryProducts: complementary,
	}
}
