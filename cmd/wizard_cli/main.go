package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wellness-planner/internal/catalog"
	"wellness-planner/internal/config"
	"wellness-planner/internal/domain"
	"wellness-planner/internal/email"
	"wellness-planner/internal/llm"
	"wellness-planner/internal/notify"
	"wellness-planner/internal/report"
	"wellness-planner/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	cat, err := catalog.Load(ctx, cfg.CatalogSource())
	if err != nil {
		log.Fatal(err)
	}

	llmClient, err := llm.NewClient(cfg.LLMProviderConfig(), logger)
	if err != nil {
		log.Fatal(err)
	}

	names := make([]string, 0, cat.Len())
	for _, p := range cat.Products() {
		names = append(names, p.Name)
	}
	tipsSvc := service.NewTipsService(llmClient, service.NewMemoryTipsRateLimiter(cfg.TipsRateWindow, cfg.TipsRateMax), cfg.TipsTimeout, names, logger)

	planner := service.NewPlannerService(
		cat,
		tipsSvc,
		service.NewMemoryRecommendationStore(),
		notify.NewDisabledNotifier(),
		service.NewShareTokenService("", 0),
		email.NewDisabledSender("cli"),
		service.PlannerConfig{SessionTTL: cfg.SessionTTL, Contact: cfg.AdvisorContact()},
		logger,
	)

	for {
		fmt.Println("===== Plan de Bienestar =====")
		profile, err := runWizard(reader)
		if err != nil {
			log.Fatalf("wizard: %v", err)
		}

		rec, err := planner.CreateRecommendation(ctx, profile)
		if err != nil {
			fmt.Printf("Error generando recomendacion: %v\n", err)
		} else if doc, err := report.Render(rec, planner.Contact()); err != nil {
			fmt.Printf("Error generando documento: %v\n", err)
		} else {
			fmt.Println()
			fmt.Println(doc.Text)
			prompt := fmt.Sprintf("Guardar PDF? (ruta, Enter para omitir, sugerido %s): ", doc.FileName)
			if path := askLine(reader, prompt); path != "" {
				if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
					fmt.Printf("Error guardando archivo: %v\n", err)
				} else {
					fmt.Printf("Plan guardado en %s\n", path)
				}
			}
		}

		if !strings.EqualFold(askLine(reader, "Crear otro plan? [s/N]: "), "s") {
			break
		}
	}
	planner.Wait()
}

// runWizard recorre los pasos del formulario y repite cada paso hasta que valide.
func runWizard(reader *bufio.Reader) (domain.ClientProfile, error) {
	var p domain.ClientProfile
	for _, step := range domain.FormSteps {
		for {
			fmt.Printf("\n--- Paso %d/%d: %s ---\n", step.ID, len(domain.FormSteps), step.Name)
			switch step.ID {
			case 1:
				askPersonal(reader, &p)
			case 2:
				askGoal(reader, &p)
			case 3:
				askLifestyle(reader, &p)
			case 4:
				askHealth(reader, &p)
			}
			p = p.Normalize()

			err := p.ValidateStep(step.ID)
			if err == nil {
				break
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				return p, err
			}
			fmt.Println("Revisa los siguientes campos:")
			for field, msg := range verr.Fields {
				fmt.Printf("  - %s: %s\n", field, msg)
			}
		}
	}
	return p, nil
}

func askPersonal(reader *bufio.Reader, p *domain.ClientProfile) {
	p.Name = askLine(reader, "Nombre completo: ")
	p.Age = askOptionalInt(reader, "Edad: ")
	p.Gender = domain.Gender(chooseOne(reader, "Genero", toStrings(domain.Genders)))
	p.Phone = askLine(reader, "Telefono (WhatsApp): ")
	p.Email = askLine(reader, "Email: ")
	p.Occupation = askLine(reader, "Ocupacion (opcional): ")
	p.ActivityLevel = domain.ActivityLevel(chooseOne(reader, "Nivel de actividad", toStrings(domain.ActivityLevels)))
}

func askGoal(reader *bufio.Reader, p *domain.ClientProfile) {
	p.MainGoal = chooseOne(reader, "Objetivo principal", domain.HealthGoals)
	p.PriorityGoalDetails = askLine(reader, "Cuentanos mas sobre tu objetivo (opcional): ")
}

func askLifestyle(reader *bufio.Reader, p *domain.ClientProfile) {
	p.DietType = domain.DietType(chooseOne(reader, "Tipo de alimentacion", toStrings(domain.DietTypes)))
	if p.DietType == domain.DietOtra {
		p.CustomDietType = askLine(reader, "Describe tu alimentacion: ")
	}
	p.MealRegularity = domain.MealRegularity(chooseOne(reader, "Horarios de comida", toStrings(domain.MealRegularities)))
	p.WaterIntake = domain.WaterIntake(chooseOne(reader, "Consumo de agua", toStrings(domain.WaterIntakes)))
	p.ExerciseFrequency = domain.ExerciseFrequency(chooseOne(reader, "Frecuencia de ejercicio", toStrings(domain.ExerciseFrequencies)))
	p.ExerciseType = askLine(reader, "Tipo de ejercicio (opcional): ")
	p.SleepHours = askOptionalInt(reader, "Horas de sueno (opcional): ")
	p.SleepQuality = domain.SleepQuality(chooseOne(reader, "Calidad del sueno", toStrings(domain.SleepQualities)))
}

func askHealth(reader *bufio.Reader, p *domain.ClientProfile) {
	p.CommonSymptoms = chooseMany(reader, "Sintomas frecuentes", domain.SymptomOptions)
	p.MedicalConditions = askLine(reader, "Condiciones medicas (opcional): ")
	p.CurrentMedications = askLine(reader, "Medicamentos actuales (opcional): ")
	p.AdditionalInfo = askLine(reader, "Informacion adicional (opcional): ")
}

func askLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

func askOptionalInt(reader *bufio.Reader, prompt string) *int {
	text := askLine(reader, prompt)
	if text == "" {
		return nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		fmt.Println("Numero invalido, se deja vacio.")
		return nil
	}
	return &v
}

// chooseOne muestra opciones numeradas. Enter deja el campo sin responder.
func chooseOne(reader *bufio.Reader, label string, options []string) string {
	fmt.Printf("%s:\n", label)
	for i, o := range options {
		fmt.Printf("[%d] %s\n", i+1, o)
	}
	for {
		text := askLine(reader, "Selecciona una opcion: ")
		if text == "" {
			return ""
		}
		idx, err := strconv.Atoi(text)
		if err == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1]
		}
		fmt.Println("Seleccion invalida.")
	}
}

// chooseMany acepta indices separados por coma.
func chooseMany(reader *bufio.Reader, label string, options []string) []string {
	fmt.Printf("%s (separados por coma, Enter para ninguno):\n", label)
	for i, o := range options {
		fmt.Printf("[%d] %s\n", i+1, o)
	}
	text := askLine(reader, "Selecciona: ")
	var out []string
	for _, part := range strings.Split(text, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(options) {
			continue
		}
		out = append(out, options[idx-1])
	}
	return out
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
