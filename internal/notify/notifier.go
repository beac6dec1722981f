package notify

import (
	"context"
	"strings"

	"wellness-planner/internal/domain"
)

// Notifier avisa a un sistema externo que llegó un formulario nuevo.
type Notifier interface {
	NotifySubmission(ctx context.Context, profile domain.ClientProfile) error
}

type disabledNotifier struct{}

// NewDisabledNotifier se usa cuando no hay WEBHOOK_URL.
func NewDisabledNotifier() Notifier {
	return disabledNotifier{}
}

func (disabledNotifier) NotifySubmission(context.Context, domain.ClientProfile) error {
	return nil
}

// SubmissionPayload es el cuerpo que recibe el webhook: el perfil tal cual, con
// los síntomas aplanados en un solo texto.
type SubmissionPayload struct {
	Name                string `json:"name"`
	Age                 *int   `json:"age,omitempty"`
	Gender              string `json:"gender"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Occupation          string `json:"occupation,omitempty"`
	ActivityLevel       string `json:"activity_level"`
	MainGoal            string `json:"main_goal"`
	PriorityGoalDetails string `json:"priority_goal_details,omitempty"`
	DietType            string `json:"diet_type,omitempty"`
	CustomDietType      string `json:"custom_diet_type,omitempty"`
	MealRegularity      string `json:"meal_regularity,omitempty"`
	WaterIntake         string `json:"water_intake,omitempty"`
	ExerciseFrequency   string `json:"exercise_frequency,omitempty"`
	ExerciseType        string `json:"exercise_type,omitempty"`
	SleepHours          *int   `json:"sleep_hours,omitempty"`
	SleepQuality        string `json:"sleep_quality,omitempty"`
	CommonSymptoms      string `json:"common_symptoms"`
	MedicalConditions   string `json:"medical_conditions,omitempty"`
	CurrentMedications  string `json:"current_medications,omitempty"`
	AdditionalInfo      string `json:"additional_info,omitempty"`
}

func NewSubmissionPayload(p domain.ClientProfile) SubmissionPayload {
	return SubmissionPayload{
		Name:                p.Name,
		Age:                 p.Age,
		Gender:              string(p.Gender),
		Phone:               p.Phone,
		Email:               p.Email,
		Occupation:          p.Occupation,
		ActivityLevel:       string(p.ActivityLevel),
		MainGoal:            p.MainGoal,
		PriorityGoalDetails: p.PriorityGoalDetails,
		DietType:            string(p.DietType),
		CustomDietType:      p.CustomDietType,
		MealRegularity:      string(p.MealRegularity),
		WaterIntake:         string(p.WaterIntake),
		ExerciseFrequency:   string(p.ExerciseFrequency),
		ExerciseType:        p.ExerciseType,
		SleepHours:          p.SleepHours,
		SleepQuality:        string(p.SleepQuality),
		CommonSymptoms:      strings.Join(p.CommonSymptoms, ", "),
		MedicalConditions:   p.MedicalConditions,
		CurrentMedications:  p.CurrentMedications,
		AdditionalInfo:      p.AdditionalInfo,
	}
}
