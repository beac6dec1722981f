package domain

// Listas de opciones que ofrece el formulario. El orden es el de presentación.
var (
	HealthGoals = []string{
		"Control de Peso",
		"Energía",
		"Digestión",
		"Sistema Inmunológico",
		"Estrés/Ánimo",
		"Sueño",
		"Salud Articular/Muscular",
		"Rendimiento Deportivo",
		"Belleza",
		"Desintoxicación",
		"Salud Femenina",
	}

	SymptomOptions = []string{
		"Cansancio o fatiga constante",
		"Problemas digestivos (hinchazón, estreñimiento)",
		"Dolor articular o muscular",
		"Estrés o ansiedad",
		"Dificultad para dormir",
		"Antojos de dulce",
		"Defensas bajas / resfriados frecuentes",
		"Piel, cabello o uñas débiles",
		"Molestias menstruales",
		"Retención de líquidos",
		"Falta de concentración",
	}

	Genders = []Gender{GenderMasculino, GenderFemenino, GenderOtro}

	ActivityLevels = []ActivityLevel{
		ActivitySedentario, ActivityLigero, ActivityModerado, ActivityActivo, ActivityMuyActivo,
	}

	DietTypes = []DietType{
		DietEquilibrada, DietFrutasVerduras, DietProcesadosDulces, DietVegetariana, DietVegana, DietOtra,
	}

	MealRegularities = []MealRegularity{MealRegular, MealIrregular}

	WaterIntakes = []WaterIntake{WaterBajo, WaterModerado, WaterAlto}

	ExerciseFrequencies = []ExerciseFrequency{
		ExerciseNunca, ExerciseUnoDos, ExerciseTresCuatro, ExerciseCincoOMas,
	}

	SleepQualities = []SleepQuality{SleepMala, SleepRegular, SleepBuena}
)

// FormStep agrupa los campos que se piden en cada paso del asistente.
type FormStep struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`

	structFields []string
}

var FormSteps = []FormStep{
	{
		ID:           1,
		Name:         "Datos Personales",
		Fields:       []string{"name", "age", "gender", "phone", "email", "occupation", "activity_level"},
		structFields: []string{"Name", "Age", "Gender", "Phone", "Email", "Occupation", "ActivityLevel"},
	},
	{
		ID:           2,
		Name:         "Objetivo de Salud",
		Fields:       []string{"main_goal", "priority_goal_details"},
		structFields: []string{"MainGoal", "PriorityGoalDetails"},
	},
	{
		ID:           3,
		Name:         "Estilo de Vida",
		Fields:       []string{"diet_type", "custom_diet_type", "meal_regularity", "water_intake", "exercise_frequency", "exercise_type", "sleep_hours", "sleep_quality"},
		structFields: []string{"DietType", "CustomDietType", "MealRegularity", "WaterIntake", "ExerciseFrequency", "ExerciseType", "SleepHours", "SleepQuality"},
	},
	{
		ID:           4,
		Name:         "Salud General",
		Fields:       []string{"common_symptoms", "medical_conditions", "current_medications", "additional_info"},
		structFields: []string{"CommonSymptoms", "MedicalConditions", "CurrentMedications", "AdditionalInfo"},
	},
}

// StepByID busca un paso del formulario.
func StepByID(id int) (FormStep, bool) {
	for _, s := range FormSteps {
		if s.ID == id {
			return s, true
		}
	}
	return FormStep{}, false
}

// FormOptions expone todas las enumeraciones para clientes del formulario.
type FormOptions struct {
	Steps               []FormStep          `json:"steps"`
	HealthGoals         []string            `json:"health_goals"`
	Symptoms            []string            `json:"symptoms"`
	Genders             []Gender            `json:"genders"`
	ActivityLevels      []ActivityLevel     `json:"activity_levels"`
	DietTypes           []DietType          `json:"diet_types"`
	MealRegularities    []MealRegularity    `json:"meal_regularities"`
	WaterIntakes        []WaterIntake       `json:"water_intakes"`
	ExerciseFrequencies []ExerciseFrequency `json:"exercise_frequencies"`
	SleepQualities      []SleepQuality      `json:"sleep_qualities"`
}

func DefaultFormOptions() FormOptions {
	return FormOptions{
		Steps:               FormSteps,
		HealthGoals:         HealthGoals,
		Symptoms:            SymptomOptions,
		Genders:             Genders,
		ActivityLevels:      ActivityLevels,
		DietTypes:           DietTypes,
		MealRegularities:    MealRegularities,
		WaterIntakes:        WaterIntakes,
		ExerciseFrequencies: ExerciseFrequencies,
		SleepQualities:      SleepQualities,
	}
}
