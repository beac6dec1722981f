package domain

// Product es una entrada del catálogo. Es dato de referencia: no se modifica en runtime.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Points          *int     `json:"points,omitempty"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Benefits        []string `json:"benefits"`
	KeyIngredients  []string `json:"key_ingredients"`
	SuggestedUsage  string   `json:"suggested_usage"`
	ExpectedResults string   `json:"expected_results"`
	ImageURL        string   `json:"image_url"`
	VideoURL        string   `json:"video_url,omitempty"`
	Tags            []string `json:"tags"`
}

// HasTag compara de forma exacta; los tags del catálogo ya vienen en minúsculas.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoreReason describe el aporte de una regla al puntaje de un producto.
type ScoreReason struct {
	Rule  string `json:"rule"`
	Delta int    `json:"delta"`
}

// ScoredProduct existe solo durante una recomendación.
type ScoredProduct struct {
	Product
	Score   int           `json:"score"`
	Reasons []ScoreReason `json:"reasons,omitempty"`
}
