package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"wellness-planner/internal/domain"
	"wellness-planner/internal/llm"
)

type denyLimiter struct{ keys []string }

func (d *denyLimiter) Allow(key string) bool {
	d.keys = append(d.keys, key)
	return false
}

type blockingLLM struct{}

func (blockingLLM) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func tipsProfile() domain.ClientProfile {
	age, sleep := 34, 6
	return domain.ClientProfile{
		Name:              "Ana",
		Age:               &age,
		Gender:            domain.GenderFemenino,
		Email:             "ana@example.com",
		ActivityLevel:     domain.ActivityModerado,
		MainGoal:          "Sueño",
		DietType:          domain.DietOtra,
		CustomDietType:    "Keto",
		MealRegularity:    domain.MealIrregular,
		WaterIntake:       domain.WaterBajo,
		ExerciseFrequency: domain.ExerciseUnoDos,
		SleepHours:        &sleep,
		SleepQuality:      domain.SleepMala,
		CommonSymptoms:    []string{"Dificultad para dormir", "Estrés o ansiedad"},
	}
}

func TestBuildTipsPrompt(t *testing.T) {
	prompt := buildTipsPrompt(tipsProfile())
	for _, want := range []string{
		"**Objetivo Principal:** Sueño",
		"**Detalles del Objetivo:** No especificado",
		"**Edad:** 34",
		"Dieta Keto, comidas de forma Irregular.",
		"Consumo de agua Bajo (<1L).",
		"tipo: No especificado.",
		"Duerme 6 horas, calidad de sueño Mala.",
		"**Síntomas Comunes:** Dificultad para dormir, Estrés o ansiedad.",
		`objetivo de **"Sueño"**`,
		"Tu foco es 100% en hábitos.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q\n%s", want, prompt)
		}
	}

	empty := buildTipsPrompt(domain.ClientProfile{MainGoal: "Energía"})
	if !strings.Contains(empty, "**Síntomas Comunes:** Ninguno reportado.") {
		t.Fatalf("expected no-symptom marker")
	}
}

func TestTipsService_Generated(t *testing.T) {
	mock := &llm.MockClient{Response: "```markdown\n- **Prioriza** tu descanso\n```"}
	svc := NewTipsService(mock, nil, time.Second, []string{"Rexet"}, zap.NewNop())

	res := svc.Generate(context.Background(), tipsProfile())
	if res.Fallback || res.Reason != TipsGenerated {
		t.Fatalf("expected generated tips, got %+v", res)
	}
	if res.Text != "- **Prioriza** tu descanso" {
		t.Fatalf("expected fences stripped, got %q", res.Text)
	}
	if mock.CallCount() != 1 || !strings.Contains(mock.Prompts[0], "Sueño") {
		t.Fatalf("expected one call with the profile prompt")
	}
}

func TestTipsService_Fallbacks(t *testing.T) {
	cases := []struct {
		name   string
		client llm.LLMClient
		reason TipsReason
		text   string
	}{
		{"not configured", llm.DisabledClient{}, TipsNotConfigured, tipsNotConfiguredText},
		{"blank answer", &llm.MockClient{Response: "  \n "}, TipsEmpty, tipsEmptyText},
		{"empty error", &llm.MockClient{Err: llm.ErrEmptyResponse}, TipsEmpty, tipsEmptyText},
		{"invalid key", &llm.MockClient{Err: &llm.APIError{StatusCode: http.StatusBadRequest, Message: "API key not valid"}}, TipsInvalidKey, tipsInvalidKeyText},
		{"quota", &llm.MockClient{Err: &llm.APIError{StatusCode: http.StatusTooManyRequests, Message: "Resource exhausted"}}, TipsQuotaExceeded, tipsQuotaText},
		{"network", &llm.MockClient{Err: errors.New("connection refused")}, TipsFailed, tipsGenericText},
		{"product mention", &llm.MockClient{Response: "- Toma Rexet cada noche"}, TipsProductMention, tipsGenericText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTipsService(tc.client, nil, time.Second, []string{"Rexet", "Vita Xtra T+"}, zap.NewNop())
			res := svc.Generate(context.Background(), tipsProfile())
			if !res.Fallback || res.Reason != tc.reason || res.Text != tc.text {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

func TestTipsService_RateLimitedSkipsLLM(t *testing.T) {
	mock := &llm.MockClient{Response: "- Camina"}
	limiter := &denyLimiter{}
	svc := NewTipsService(mock, limiter, time.Second, nil, zap.NewNop())

	res := svc.Generate(context.Background(), tipsProfile())
	if res.Reason != TipsRateLimited || res.Text != tipsQuotaText {
		t.Fatalf("expected rate limited fallback, got %+v", res)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("llm must not be called when rate limited")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "ana@example.com" {
		t.Fatalf("expected contact key, got %+v", limiter.keys)
	}
}

func TestTipsService_Timeout(t *testing.T) {
	svc := NewTipsService(blockingLLM{}, nil, 20*time.Millisecond, nil, zap.NewNop())

	start := time.Now()
	res := svc.Generate(context.Background(), tipsProfile())
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced")
	}
	if res.Reason != TipsFailed || res.Text != tipsGenericText {
		t.Fatalf("expected generic fallback on timeout, got %+v", res)
	}
}

func TestTipsService_NilClientIsNotConfigured(t *testing.T) {
	res := NewTipsService(nil, nil, 0, nil, nil).Generate(context.Background(), tipsProfile())
	if res.Reason != TipsNotConfigured {
		t.Fatalf("expected not configured, got %+v", res)
	}
}
