package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError reúne los mensajes de error por campo (nombre JSON).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

var ErrUnknownStep = errors.New("unknown form step")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func profileValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("enum", validateEnum)
		_ = v.RegisterValidation("phone", validatePhone)
		validate = v
	})
	return validate
}

var enumValues = map[string]map[string]struct{}{
	"goal":     setOf(HealthGoals),
	"symptom":  setOf(SymptomOptions),
	"gender":   setOf(Genders),
	"activity": setOf(ActivityLevels),
	"diet":     setOf(DietTypes),
	"meal":     setOf(MealRegularities),
	"water":    setOf(WaterIntakes),
	"exercise": setOf(ExerciseFrequencies),
	"sleep":    setOf(SleepQualities),
}

func setOf[T ~string](values []T) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[string(v)] = struct{}{}
	}
	return out
}

func validateEnum(fl validator.FieldLevel) bool {
	allowed, ok := enumValues[fl.Param()]
	if !ok {
		return false
	}
	_, ok = allowed[fl.Field().String()]
	return ok
}

func validatePhone(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}
	digits := 0
	for i, r := range raw {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// Validate revisa el perfil completo tal como lo haría el formulario al enviar.
func (p ClientProfile) Validate() error {
	return toValidationError(profileValidator().Struct(p))
}

// ValidateStep revisa solo los campos del paso indicado.
func (p ClientProfile) ValidateStep(stepID int) error {
	step, ok := StepByID(stepID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, stepID)
	}
	return toValidationError(profileValidator().StructPartial(p, step.structFields...))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe)
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = fieldMessage(name, fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

// fieldName quita el prefijo del struct y el índice en slices ("common_symptoms[1]").
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.Index(name, "["); i > 0 {
		name = name[:i]
	}
	return name
}

var requiredMessages = map[string]string{
	"name":             "El nombre es requerido.",
	"age":              "La edad es requerida.",
	"gender":           "Selecciona un género.",
	"phone":            "El teléfono es requerido.",
	"email":            "El email es requerido.",
	"activity_level":   "Selecciona tu nivel de actividad.",
	"main_goal":        "Selecciona tu objetivo principal.",
	"custom_diet_type": "Describe tu tipo de dieta.",
}

func fieldMessage(field, tag string) string {
	switch tag {
	case "required", "required_if":
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
		return "Este campo es requerido."
	case "email":
		return "El email no es válido."
	case "phone":
		return "El teléfono no es válido."
	case "gte", "lte":
		if field == "age" {
			return "La edad debe estar entre 1 y 120 años."
		}
		if field == "sleep_hours" {
			return "Las horas de sueño deben estar entre 0 y 24."
		}
		return "Valor fuera de rango."
	case "max":
		return "El texto es demasiado largo."
	case "enum":
		return "Selecciona una opción válida."
	default:
		return "Valor inválido."
	}
}
