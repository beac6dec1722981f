package main

import (
	"bufio"
	"strings"
	"testing"

	"wellness-planner/internal/domain"
)

func readerOf(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestChooseOne(t *testing.T) {
	options := toStrings(domain.SleepQualities)
	if got := chooseOne(readerOf("9", "x", "2"), "Sueno", options); got != string(domain.SleepRegular) {
		t.Fatalf("expected retry until a valid option, got %q", got)
	}
	if got := chooseOne(readerOf(""), "Sueno", options); got != "" {
		t.Fatalf("expected empty answer to leave field unset, got %q", got)
	}
}

func TestChooseMany(t *testing.T) {
	got := chooseMany(readerOf("1, 3,99,abc"), "Sintomas", domain.SymptomOptions)
	if len(got) != 2 || got[0] != domain.SymptomOptions[0] || got[1] != domain.SymptomOptions[2] {
		t.Fatalf("unexpected selection %q", got)
	}
	if got := chooseMany(readerOf(""), "Sintomas", domain.SymptomOptions); len(got) != 0 {
		t.Fatalf("expected no symptoms, got %q", got)
	}
}

func TestAskOptionalInt(t *testing.T) {
	if v := askOptionalInt(readerOf("34"), "Edad: "); v == nil || *v != 34 {
		t.Fatalf("expected 34, got %v", v)
	}
	if v := askOptionalInt(readerOf("treinta"), "Edad: "); v != nil {
		t.Fatalf("expected nil for invalid number, got %d", *v)
	}
}

func TestRunWizard_RepeatsInvalidStep(t *testing.T) {
	answers := []string{
		// paso 1: falta el email, se repite
		"Ana Torres", "34", "2", "+51 999 888 777", "", "", "3",
		"Ana Torres", "34", "2", "+51 999 888 777", "ana@example.com", "", "3",
		// paso 2
		"2", "",
		// paso 3
		"1", "1", "2", "2", "", "7", "3",
		// paso 4
		"1", "", "", "",
	}
	p, err := runWizard(readerOf(answers...))
	if err != nil {
		t.Fatalf("wizard: %v", err)
	}
	if p.Email != "ana@example.com" || p.MainGoal != domain.HealthGoals[1] {
		t.Fatalf("unexpected profile %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("wizard must produce a valid profile: %v", err)
	}
	if len(p.CommonSymptoms) != 1 || p.CommonSymptoms[0] != domain.SymptomOptions[0] {
		t.Fatalf("unexpected symptoms %q", p.CommonSymptoms)
	}
}
