package service

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"wellness-planner/internal/catalog"
	"wellness-planner/internal/domain"
)

func product(id, category string, tags ...string) domain.Product {
	return domain.Product{ID: id, Name: id, Category: category, Tags: tags}
}

func scoreOf(t *testing.T, scored []domain.ScoredProduct, id string) int {
	t.Helper()
	for _, sp := range scored {
		if sp.ID == id {
			return sp.Score
		}
	}
	t.Fatalf("product %s not scored", id)
	return 0
}

func productIDs(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	engine := NewRecommendationEngine("default")
	_, err := engine.Recommend(domain.ClientProfile{MainGoal: "Energía"}, nil)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestRecommend_GoalMatchOnly(t *testing.T) {
	engine := NewRecommendationEngine("none")
	products := []domain.Product{
		product("sleep", "Sueño"),
		product("energy", "Energía"),
		product("sport", "Rendimiento Deportivo"),
	}
	profile := domain.ClientProfile{MainGoal: "Energía"}

	scored := engine.Score(profile, products)
	if got := scoreOf(t, scored, "energy"); got != 50 {
		t.Fatalf("expected goal match score 50, got %d", got)
	}
	if got := scoreOf(t, scored, "sleep"); got != 0 {
		t.Fatalf("expected 0 for unrelated product, got %d", got)
	}
	if got := scoreOf(t, scored, "sport"); got != -10 {
		t.Fatalf("expected off-goal sport penalty -10, got %d", got)
	}

	rec, err := engine.Recommend(profile, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "energy" {
		t.Fatalf("expected energy as main, got %s", rec.MainProduct.ID)
	}
	if len(rec.ComplementaryProducts) != 0 {
		t.Fatalf("expected no complementary products, got %v", productIDs(rec.ComplementaryProducts))
	}
}

func TestRecommend_GoalMatchIsCaseInsensitive(t *testing.T) {
	engine := NewRecommendationEngine("")
	scored := engine.Score(domain.ClientProfile{MainGoal: "energía"}, []domain.Product{product("e", "ENERGÍA")})
	if scored[0].Score != 50 {
		t.Fatalf("expected case-insensitive goal match, got %d", scored[0].Score)
	}
}

func TestRecommend_FallbackToDefaultProduct(t *testing.T) {
	engine := NewRecommendationEngine("dflt")
	products := []domain.Product{
		product("a", "X", "foo"),
		product("b", "Y", "bar"),
		product("dflt", "Z"),
		product("c", "W"),
	}
	rec, err := engine.Recommend(domain.ClientProfile{}, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "dflt" {
		t.Fatalf("expected default product, got %s", rec.MainProduct.ID)
	}
	if got := productIDs(rec.ComplementaryProducts); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected first two remaining catalog products, got %v", got)
	}
}

func TestRecommend_FallbackToFirstProductWhenDefaultMissing(t *testing.T) {
	engine := NewRecommendationEngine("missing")
	products := []domain.Product{
		product("a", "X"),
		product("b", "Y"),
		product("c", "Z"),
		product("d", "W"),
	}
	rec, err := engine.Recommend(domain.ClientProfile{}, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "a" {
		t.Fatalf("expected first product, got %s", rec.MainProduct.ID)
	}
	if got := productIDs(rec.ComplementaryProducts); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("unexpected complementary %v", got)
	}
}

func TestRecommend_NegativeTopScoreUsesRanking(t *testing.T) {
	engine := NewRecommendationEngine("s2")
	products := []domain.Product{
		product("s1", "Rendimiento Deportivo"),
		product("s2", "Rendimiento Deportivo"),
	}
	rec, err := engine.Recommend(domain.ClientProfile{MainGoal: "Sueño"}, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "s1" {
		t.Fatalf("negative top score is not the zero fallback; expected s1, got %s", rec.MainProduct.ID)
	}
	if len(rec.ComplementaryProducts) != 0 {
		t.Fatalf("expected no complementary products")
	}
}

func TestRecommend_JointSymptomStacking(t *testing.T) {
	engine := NewRecommendationEngine("")
	goal := "Salud Articular/Muscular"
	products := []domain.Product{product("flx", goal, "articulaciones")}
	profile := domain.ClientProfile{MainGoal: goal, CommonSymptoms: []string{"dolor articular"}}

	scored := engine.Score(profile, products)
	if scored[0].Score != 75 {
		t.Fatalf("expected 50 goal + 25 joint = 75, got %d (%+v)", scored[0].Score, scored[0].Reasons)
	}
}

func TestRecommend_SpecificSymptomRules(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{
		product("dig", "Digestión", "digestión"),
		product("fem", "Salud Femenina", "salud femenina"),
	}
	profile := domain.ClientProfile{
		CommonSymptoms: []string{"Problemas digestivos (hinchazón, estreñimiento)", "Molestias menstruales"},
	}
	scored := engine.Score(profile, products)
	if got := scoreOf(t, scored, "dig"); got != 25 {
		t.Fatalf("expected digestive bonus 25, got %d", got)
	}
	if got := scoreOf(t, scored, "fem"); got != 30 {
		t.Fatalf("expected menstrual bonus 30, got %d", got)
	}
}

func TestRecommend_GenericSymptomTagCountsOncePerSymptom(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{product("p", "X", "cansancio", "fatiga", "sueño")}
	profile := domain.ClientProfile{CommonSymptoms: []string{"Cansancio o fatiga constante", "Dificultad para dormir"}}

	scored := engine.Score(profile, products)
	if scored[0].Score != 20 {
		t.Fatalf("expected one +20 for the matching symptom, got %d", scored[0].Score)
	}
}

func TestRecommend_FreeTextKeywords(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{product("p", "X", "estrés", "ánimo", "sueño")}
	profile := domain.ClientProfile{
		PriorityGoalDetails: "Quiero manejar el ESTRÉS del trabajo",
		AdditionalInfo:      "mi ánimo está bajo",
	}
	scored := engine.Score(profile, products)
	if scored[0].Score != 20 {
		t.Fatalf("expected two free-text matches (+20), got %d", scored[0].Score)
	}
}

func TestRecommend_LifestyleAdjustments(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{
		product("sport", "Rendimiento Deportivo"),
		product("fem", "Salud Femenina"),
		product("sleep", "Sueño", "sueño"),
		product("detox", "Desintoxicación", "desintoxicación"),
		product("weight", "Control de Peso", "control de peso"),
	}
	profile := domain.ClientProfile{
		MainGoal:      "Rendimiento Deportivo",
		ActivityLevel: domain.ActivityMuyActivo,
		Gender:        domain.GenderFemenino,
		SleepQuality:  domain.SleepMala,
		DietType:      domain.DietProcesadosDulces,
	}
	scored := engine.Score(profile, products)

	want := map[string]int{
		"sport":  50 + 30,
		"fem":    30,
		"sleep":  25,
		"detox":  15,
		"weight": 15,
	}
	for id, score := range want {
		if got := scoreOf(t, scored, id); got != score {
			t.Fatalf("%s: expected %d, got %d", id, score, got)
		}
	}
}

func TestRecommend_UnknownEnumsScoreZero(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{product("sport", "Rendimiento Deportivo"), product("sleep", "Sueño", "sueño")}
	profile := domain.ClientProfile{
		MainGoal:      "Rendimiento Deportivo",
		ActivityLevel: "Hiperactivo",
		SleepQuality:  "Pésima",
	}
	scored := engine.Score(profile, products)
	if got := scoreOf(t, scored, "sport"); got != 50 {
		t.Fatalf("unknown activity must not add, got %d", got)
	}
	if got := scoreOf(t, scored, "sleep"); got != 0 {
		t.Fatalf("unknown sleep quality must not add, got %d", got)
	}
}

func TestRecommend_ComplementaryFilterAndCap(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{
		product("low", "X", "fatiga"),             // 10
		product("main", "Energía", "fatiga"),      // 60
		product("c1", "Y", "fatiga", "cansancio"), // 20
		product("c2", "Z", "cansancio", "fatiga"), // 20
		product("c3", "W", "fatiga", "cansancio"), // 20
	}
	profile := domain.ClientProfile{MainGoal: "Energía", AdditionalInfo: "siento fatiga y cansancio"}

	rec, err := engine.Recommend(profile, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "main" {
		t.Fatalf("expected main, got %s", rec.MainProduct.ID)
	}
	if got := productIDs(rec.ComplementaryProducts); !reflect.DeepEqual(got, []string{"c1", "c2"}) {
		t.Fatalf("expected stable top two above 10, got %v", got)
	}
}

func TestRecommend_TieWithMainIsNotDuplicated(t *testing.T) {
	engine := NewRecommendationEngine("")
	products := []domain.Product{
		product("first", "Energía"),
		product("second", "Energía"),
		product("third", "Energía"),
		product("fourth", "Energía"),
	}
	rec, err := engine.Recommend(domain.ClientProfile{MainGoal: "Energía"}, products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "first" {
		t.Fatalf("expected first by catalog order, got %s", rec.MainProduct.ID)
	}
	if got := productIDs(rec.ComplementaryProducts); !reflect.DeepEqual(got, []string{"second", "third"}) {
		t.Fatalf("unexpected complementary %v", got)
	}
}

func TestRecommend_SingleProductCatalog(t *testing.T) {
	engine := NewRecommendationEngine("")
	only := []domain.Product{product("only", "Energía")}
	for _, profile := range []domain.ClientProfile{
		{},
		{MainGoal: "Energía"},
		{MainGoal: "Sueño"},
	} {
		rec, err := engine.Recommend(profile, only)
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		if rec.MainProduct.ID != "only" || len(rec.ComplementaryProducts) != 0 {
			t.Fatalf("unexpected result for %+v: %+v", profile, rec)
		}
	}
}

func richProfile() domain.ClientProfile {
	return domain.ClientProfile{
		Name:                "Lucía",
		Gender:              domain.GenderFemenino,
		ActivityLevel:       domain.ActivityActivo,
		MainGoal:            "Energía",
		PriorityGoalDetails: "Me falta energía y concentración por las tardes",
		DietType:            domain.DietProcesadosDulces,
		SleepQuality:        domain.SleepMala,
		CommonSymptoms: []string{
			"Cansancio o fatiga constante",
			"Antojos de dulce",
			"Molestias menstruales",
		},
	}
}

func TestRecommend_PropertiesOnDefaultCatalog(t *testing.T) {
	c, err := catalog.LoadDefault("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := NewRecommendationEngine(c.DefaultProductID())
	products := c.Products()

	profiles := []domain.ClientProfile{
		{},
		richProfile(),
		{MainGoal: "Rendimiento Deportivo", ActivityLevel: domain.ActivityMuyActivo},
		{MainGoal: "Digestión", CommonSymptoms: []string{"Problemas digestivos (hinchazón, estreñimiento)"}},
		{MainGoal: "Salud Articular/Muscular", CommonSymptoms: []string{"Dolor articular o muscular"}},
	}
	for _, profile := range profiles {
		rec, err := engine.Recommend(profile, products)
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		if len(rec.ComplementaryProducts) > 2 {
			t.Fatalf("too many complementary products: %d", len(rec.ComplementaryProducts))
		}
		for _, p := range rec.ComplementaryProducts {
			if p.ID == rec.MainProduct.ID {
				t.Fatalf("main product %s duplicated in complementary", p.ID)
			}
		}

		scored := engine.Score(profile, products)
		if scored[0].Score != 0 {
			pos := make(map[string]int, len(products))
			for i, p := range products {
				pos[p.ID] = i
			}
			prevScore, prevPos := int(^uint(0)>>1), -1
			for _, p := range rec.ComplementaryProducts {
				s := scoreOf(t, scored, p.ID)
				if s > prevScore || (s == prevScore && pos[p.ID] < prevPos) {
					t.Fatalf("complementary not sorted by score then catalog order")
				}
				prevScore, prevPos = s, pos[p.ID]
			}
		}

		again, _ := engine.Recommend(profile, products)
		if !reflect.DeepEqual(rec, again) {
			t.Fatalf("engine must be idempotent")
		}
	}
}

func TestRecommend_ScenarioOnDefaultCatalog(t *testing.T) {
	c, err := catalog.LoadDefault("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := NewRecommendationEngine(c.DefaultProductID())

	rec, err := engine.Recommend(richProfile(), c.Products())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.MainProduct.ID != "vita_xtra_t" {
		t.Fatalf("expected vita_xtra_t as main, got %s", rec.MainProduct.ID)
	}
	if got := productIDs(rec.ComplementaryProducts); !reflect.DeepEqual(got, []string{"alpha_balance", "xtra_mile"}) {
		t.Fatalf("unexpected complementary %v", got)
	}
}

func TestScore_MonotonicInSymptoms(t *testing.T) {
	c, err := catalog.LoadDefault("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := NewRecommendationEngine(c.DefaultProductID())
	products := c.Products()

	base := domain.ClientProfile{MainGoal: "Sueño"}
	before := engine.Score(base, products)
	for _, symptom := range domain.SymptomOptions {
		with := base
		with.CommonSymptoms = []string{symptom}
		after := engine.Score(with, products)
		for _, p := range products {
			if scoreOf(t, after, p.ID) < scoreOf(t, before, p.ID) {
				t.Fatalf("adding %q decreased score of %s", symptom, p.ID)
			}
		}
	}
}

func TestScore_ReasonsSumToScore(t *testing.T) {
	c, err := catalog.LoadDefault("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := NewRecommendationEngine(c.DefaultProductID())
	for _, sp := range engine.Score(richProfile(), c.Products()) {
		sum := 0
		for _, r := range sp.Reasons {
			sum += r.Delta
		}
		if sum != sp.Score {
			t.Fatalf("%s: reasons sum %d != score %d", sp.ID, sum, sp.Score)
		}
	}
}

func TestRecommend_ConcurrentCallsAgree(t *testing.T) {
	c, err := catalog.LoadDefault("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := NewRecommendationEngine(c.DefaultProductID())
	products := c.Products()
	want, err := engine.Recommend(richProfile(), products)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Recommend(richProfile(), products)
			if err != nil || !reflect.DeepEqual(got, want) {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}
