package service

import (
	"strings"

	"wellness-planner/internal/domain"
)

const sportCategory = "Rendimiento Deportivo"

// scoringInput precalcula, una vez por request, las vistas del perfil que usan las reglas.
type scoringInput struct {
	profile       domain.ClientProfile
	goalLower     string
	symptomsLower []string
	freeText      string
}

func newScoringInput(p domain.ClientProfile) scoringInput {
	lowered := make([]string, len(p.CommonSymptoms))
	for i, s := range p.CommonSymptoms {
		lowered[i] = strings.ToLower(s)
	}
	return scoringInput{
		profile:       p,
		goalLower:     strings.ToLower(p.MainGoal),
		symptomsLower: lowered,
		freeText:      strings.ToLower(p.PriorityGoalDetails) + " " + strings.ToLower(p.AdditionalInfo),
	}
}

// scoringRule suma delta por cada coincidencia que reporta hits. Las reglas son
// independientes entre sí: el orden de evaluación no altera el puntaje.
type scoringRule struct {
	name  string
	delta int
	hits  func(in scoringInput, p domain.Product) int
}

func boolHit(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// symptomRule dispara una vez por síntoma que contiene keyword cuando el producto tiene tag.
func symptomRule(name, keyword, tag string, delta int) scoringRule {
	return scoringRule{
		name:  name,
		delta: delta,
		hits: func(in scoringInput, p domain.Product) int {
			if !p.HasTag(tag) {
				return 0
			}
			n := 0
			for _, s := range in.profile.CommonSymptoms {
				if strings.Contains(s, keyword) {
					n++
				}
			}
			return n
		},
	}
}

var defaultScoringRules = []scoringRule{
	{
		name:  "goal_match",
		delta: 50,
		hits: func(in scoringInput, p domain.Product) int {
			return boolHit(strings.ToLower(p.Category) == in.goalLower)
		},
	},
	{
		name:  "symptom_tag",
		delta: 20,
		hits: func(in scoringInput, p domain.Product) int {
			n := 0
			for _, s := range in.symptomsLower {
				for _, tag := range p.Tags {
					if strings.Contains(s, tag) {
						n++
						break
					}
				}
			}
			return n
		},
	},
	symptomRule("digestive_symptom", "digestivo", "digestión", 25),
	symptomRule("joint_symptom", "articular", "articulaciones", 25),
	symptomRule("menstrual_symptom", "menstrual", "salud femenina", 30),
	{
		name:  "free_text_tag",
		delta: 10,
		hits: func(in scoringInput, p domain.Product) int {
			n := 0
			for _, tag := range p.Tags {
				if strings.Contains(in.freeText, tag) {
					n++
				}
			}
			return n
		},
	},
	{
		name:  "active_sport",
		delta: 30,
		hits: func(in scoringInput, p domain.Product) int {
			level := in.profile.ActivityLevel
			active := level == domain.ActivityActivo || level == domain.ActivityMuyActivo
			return boolHit(active && p.Category == sportCategory)
		},
	},
	{
		name:  "female_health",
		delta: 30,
		hits: func(in scoringInput, p domain.Product) int {
			return boolHit(in.profile.Gender == domain.GenderFemenino && p.Category == "Salud Femenina")
		},
	},
	{
		name:  "poor_sleep",
		delta: 25,
		hits: func(in scoringInput, p domain.Product) int {
			return boolHit(in.profile.SleepQuality == domain.SleepMala && p.HasTag("sueño"))
		},
	},
	{
		name:  "processed_diet",
		delta: 15,
		hits: func(in scoringInput, p domain.Product) int {
			detox := p.HasTag("desintoxicación") || p.HasTag("control de peso")
			return boolHit(in.profile.DietType == domain.DietProcesadosDulces && detox)
		},
	},
	{
		name:  "off_goal_sport",
		delta: -10,
		hits: func(in scoringInput, p domain.Product) int {
			return boolHit(in.profile.MainGoal != sportCategory && p.Category == sportCategory)
		},
	},
}
