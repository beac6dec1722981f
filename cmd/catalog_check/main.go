package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"wellness-planner/internal/catalog"
	"wellness-planner/internal/config"
	"wellness-planner/internal/domain"
	"wellness-planner/internal/service"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

type coverage int

const (
	coverageOK coverage = iota
	coverageFallback
	coveragePenalized
)

// goalCoverage clasifica el mejor puntaje de un objetivo. Solo un puntaje 0
// cae en el producto por defecto; uno negativo se recomienda igual.
func goalCoverage(top int) coverage {
	switch {
	case top == 0:
		return coverageFallback
	case top < 0:
		return coveragePenalized
	default:
		return coverageOK
	}
}

// catalog_check recorre cada objetivo del formulario y muestra qué recomendaría
// el motor. Un objetivo que cae en el producto por defecto no tiene cobertura.
func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cat, err := catalog.Load(ctx, cfg.CatalogSource())
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	fmt.Printf("Catalogo %s: %d productos, categorias: %s\n\n", cat.Version(), cat.Len(), strings.Join(cat.Categories(), ", "))

	engine := service.NewRecommendationEngine(cat.DefaultProductID())
	products := cat.Products()

	uncovered := 0
	for _, goal := range domain.HealthGoals {
		profile := domain.ClientProfile{MainGoal: goal}
		rec, err := engine.Recommend(profile, products)
		if err != nil {
			log.Fatalf("recommend %q: %v", goal, err)
		}
		ranked := engine.Score(profile, products)

		switch goalCoverage(ranked[0].Score) {
		case coverageFallback:
			uncovered++
			fmt.Printf("%s[SIN COBERTURA]%s %s -> %s (por defecto)\n", colorYellow, colorReset, goal, rec.MainProduct.Name)
			continue
		case coveragePenalized:
			uncovered++
			fmt.Printf("%s[SOLO PENALIZACIONES]%s %s -> %s (%d)\n", colorYellow, colorReset, goal, rec.MainProduct.Name, ranked[0].Score)
			continue
		}
		comp := make([]string, 0, len(rec.ComplementaryProducts))
		for _, p := range rec.ComplementaryProducts {
			comp = append(comp, p.Name)
		}
		fmt.Printf("%s[OK]%s %s -> %s (%d) + [%s]\n", colorGreen, colorReset, goal, rec.MainProduct.Name, ranked[0].Score, strings.Join(comp, ", "))
	}

	fmt.Printf("\nObjetivos sin cobertura: %d/%d\n", uncovered, len(domain.HealthGoals))
	if uncovered > 0 {
		os.Exit(1)
	}
}
