package service

import (
	"fmt"
	"strconv"
	"strings"

	"wellness-planner/internal/domain"
)

const tipsPromptTemplate = `
Eres un coach de bienestar y nutrición, experto y empático. Tu rol es complementar una recomendación de productos nutracéuticos con consejos de estilo de vida.
Basándote en la siguiente información de un cliente, proporciona entre 3 y 5 consejos de estilo de vida personalizados, breves, accionables y motivadores.
Estos consejos deben ayudarle a alcanzar su objetivo principal de salud.

**Reglas Estrictas:**
1.  **NO menciones, sugieras ni hagas alusión a ningún producto comercial, suplemento, vitamina o nutracéutico específico** (ni de Fuxion ni de otras marcas). Tu foco es 100%% en hábitos.
2.  Enfócate únicamente en cambios de hábitos (alimentación, ejercicio, sueño, manejo de estrés, hidratación).
3.  Usa un lenguaje positivo y de apoyo. Formatea cada consejo como un punto separado. Utiliza markdown para resaltar palabras clave con negritas (**ejemplo**).
4.  Comienza cada consejo con un verbo de acción (Ej: **Prioriza**, **Incorpora**, **Intenta**, **Asegúrate**).
5.  Finaliza con una frase motivadora corta y original.

**Información del Cliente:**
- **Objetivo Principal:** %[1]s
- **Detalles del Objetivo:** %[2]s
- **Edad:** %[3]s
- **Género:** %[4]s
- **Nivel de Actividad:** %[5]s
- **Hábitos Alimenticios:** Dieta %[6]s, comidas de forma %[7]s.
- **Hidratación:** Consumo de agua %[8]s.
- **Ejercicio:** %[9]s, tipo: %[10]s.
- **Descanso:** Duerme %[11]s horas, calidad de sueño %[12]s.
- **Síntomas Comunes:** %[13]s.

Analiza cómo sus hábitos actuales impactan su objetivo de **"%[1]s"** y ofrece consejos prácticos para mejorar.
`

const notSpecified = "No especificado"

// buildTipsPrompt arma el prompt de coaching a partir del perfil normalizado.
func buildTipsPrompt(p domain.ClientProfile) string {
	symptoms := "Ninguno reportado"
	if len(p.CommonSymptoms) > 0 {
		symptoms = strings.Join(p.CommonSymptoms, ", ")
	}
	return strings.TrimSpace(fmt.Sprintf(tipsPromptTemplate,
		p.MainGoal,
		orNotSpecified(p.PriorityGoalDetails),
		intOrNotSpecified(p.Age),
		orNotSpecified(string(p.Gender)),
		orNotSpecified(string(p.ActivityLevel)),
		orNotSpecified(p.DietDescription()),
		orNotSpecified(string(p.MealRegularity)),
		orNotSpecified(string(p.WaterIntake)),
		orNotSpecified(string(p.ExerciseFrequency)),
		orNotSpecified(p.ExerciseType),
		intOrNotSpecified(p.SleepHours),
		orNotSpecified(string(p.SleepQuality)),
		symptoms,
	))
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func intOrNotSpecified(v *int) string {
	if v == nil {
		return notSpecified
	}
	return strconv.Itoa(*v)
}
