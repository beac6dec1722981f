package main

import (
	"testing"

	"wellness-planner/internal/domain"
	"wellness-planner/internal/service"
)

func TestGoalCoverage(t *testing.T) {
	cases := map[int]coverage{
		50:  coverageOK,
		0:   coverageFallback,
		-10: coveragePenalized,
	}
	for score, want := range cases {
		if got := goalCoverage(score); got != want {
			t.Fatalf("goalCoverage(%d) = %v, want %v", score, got, want)
		}
	}
}

func TestGoalCoverage_NegativeTopIsNotDefault(t *testing.T) {
	products := []domain.Product{
		{ID: "s1", Name: "Sport 1", Category: "Rendimiento Deportivo"},
		{ID: "s2", Name: "Sport 2", Category: "Rendimiento Deportivo"},
	}
	engine := service.NewRecommendationEngine("s2")
	profile := domain.ClientProfile{MainGoal: "Sueño"}

	ranked := engine.Score(profile, products)
	if goalCoverage(ranked[0].Score) != coveragePenalized {
		t.Fatalf("expected penalized coverage, got score %d", ranked[0].Score)
	}
	rec, err := engine.Recommend(profile, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "s1" {
		t.Fatalf("negative top score must not fall back, got %s", rec.MainProduct.ID)
	}
}
