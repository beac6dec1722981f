package domain

import "strings"

type Gender string

const (
	GenderMasculino Gender = "Masculino"
	GenderFemenino  Gender = "Femenino"
	GenderOtro      Gender = "Otro"
)

type ActivityLevel string

const (
	ActivitySedentario ActivityLevel = "Sedentario"
	ActivityLigero     ActivityLevel = "Ligero"
	ActivityModerado   ActivityLevel = "Moderado"
	ActivityActivo     ActivityLevel = "Activo"
	ActivityMuyActivo  ActivityLevel = "Muy Activo"
)

type DietType string

const (
	DietEquilibrada      DietType = "Equilibrada"
	DietFrutasVerduras   DietType = "Rica en frutas/verduras"
	DietProcesadosDulces DietType = "Rica en procesados/dulces"
	DietVegetariana      DietType = "Vegetariana"
	DietVegana           DietType = "Vegana"
	DietOtra             DietType = "Otra"
)

type MealRegularity string

const (
	MealRegular   MealRegularity = "Regular"
	MealIrregular MealRegularity = "Irregular"
)

type WaterIntake string

const (
	WaterBajo     WaterIntake = "Bajo (<1L)"
	WaterModerado WaterIntake = "Moderado (1-2L)"
	WaterAlto     WaterIntake = "Alto (>2L)"
)

type ExerciseFrequency string

const (
	ExerciseNunca      ExerciseFrequency = "Nunca"
	ExerciseUnoDos     ExerciseFrequency = "1-2 veces/sem"
	ExerciseTresCuatro ExerciseFrequency = "3-4 veces/sem"
	ExerciseCincoOMas  ExerciseFrequency = "5+ veces/sem"
)

type SleepQuality string

const (
	SleepMala    SleepQuality = "Mala"
	SleepRegular SleepQuality = "Regular"
	SleepBuena   SleepQuality = "Buena"
)

// ClientProfile es la foto de las respuestas del cliente al momento de puntuar.
// Los campos enumerados vacíos significan "sin responder".
type ClientProfile struct {
	Name          string        `json:"name" validate:"required,max=120"`
	Age           *int          `json:"age,omitempty" validate:"required,gte=1,lte=120"`
	Gender        Gender        `json:"gender" validate:"required,enum=gender"`
	Phone         string        `json:"phone" validate:"required,phone"`
	Email         string        `json:"email" validate:"required,email"`
	Occupation    string        `json:"occupation,omitempty" validate:"max=120"`
	ActivityLevel ActivityLevel `json:"activity_level" validate:"required,enum=activity"`

	MainGoal            string `json:"main_goal" validate:"required,enum=goal"`
	PriorityGoalDetails string `json:"priority_goal_details,omitempty" validate:"max=2000"`

	DietType          DietType          `json:"diet_type,omitempty" validate:"omitempty,enum=diet"`
	CustomDietType    string            `json:"custom_diet_type,omitempty" validate:"required_if=DietType Otra,max=200"`
	MealRegularity    MealRegularity    `json:"meal_regularity,omitempty" validate:"omitempty,enum=meal"`
	WaterIntake       WaterIntake       `json:"water_intake,omitempty" validate:"omitempty,enum=water"`
	ExerciseFrequency ExerciseFrequency `json:"exercise_frequency,omitempty" validate:"omitempty,enum=exercise"`
	ExerciseType      string            `json:"exercise_type,omitempty" validate:"max=200"`
	SleepHours        *int              `json:"sleep_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	SleepQuality      SleepQuality      `json:"sleep_quality,omitempty" validate:"omitempty,enum=sleep"`

	CommonSymptoms     []string `json:"common_symptoms,omitempty" validate:"dive,enum=symptom"`
	MedicalConditions  string   `json:"medical_conditions,omitempty" validate:"max=2000"`
	CurrentMedications string   `json:"current_medications,omitempty" validate:"max=2000"`
	AdditionalInfo     string   `json:"additional_info,omitempty" validate:"max=2000"`
}

// Normalize limpia espacios, deduplica síntomas y descarta la dieta libre si no aplica.
func (p ClientProfile) Normalize() ClientProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Occupation = strings.TrimSpace(p.Occupation)
	p.MainGoal = strings.TrimSpace(p.MainGoal)
	p.PriorityGoalDetails = strings.TrimSpace(p.PriorityGoalDetails)
	p.ExerciseType = strings.TrimSpace(p.ExerciseType)
	p.MedicalConditions = strings.TrimSpace(p.MedicalConditions)
	p.CurrentMedications = strings.TrimSpace(p.CurrentMedications)
	p.AdditionalInfo = strings.TrimSpace(p.AdditionalInfo)

	if p.DietType == DietOtra {
		p.CustomDietType = strings.TrimSpace(p.CustomDietType)
	} else {
		p.CustomDietType = ""
	}

	if len(p.CommonSymptoms) > 0 {
		seen := make(map[string]struct{}, len(p.CommonSymptoms))
		symptoms := make([]string, 0, len(p.CommonSymptoms))
		for _, s := range p.CommonSymptoms {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			symptoms = append(symptoms, s)
		}
		p.CommonSymptoms = symptoms
	}
	return p
}

// DietDescription devuelve la dieta declarada, usando el texto libre cuando es "Otra".
func (p ClientProfile) DietDescription() string {
	if p.DietType == DietOtra && p.CustomDietType != "" {
		return p.CustomDietType
	}
	return string(p.DietType)
}

// ContactKey identifica al cliente para limitar solicitudes externas.
func (p ClientProfile) ContactKey() string {
	if email := strings.ToLower(strings.TrimSpace(p.Email)); email != "" {
		return email
	}
	return strings.TrimSpace(p.Phone)
}
