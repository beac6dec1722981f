package domain

import "time"

// RankedRecommendation es la salida del motor: un producto principal y hasta dos complementarios.
type RankedRecommendation struct {
	MainProduct           Product   `json:"main_product"`
	ComplementaryProducts []Product `json:"complementary_products"`
}

// Recommendation es el registro que se muestra y exporta al cliente.
type Recommendation struct {
	ID                    string        `json:"id"`
	ClientName            string        `json:"client_name"`
	MainGoal              string        `json:"main_goal"`
	MainProduct           Product       `json:"main_product"`
	ComplementaryProducts []Product     `json:"complementary_products"`
	LifestyleTips         string        `json:"lifestyle_tips"`
	TipsFallback          bool          `json:"tips_fallback"`
	CatalogVersion        string        `json:"catalog_version,omitempty"`
	Profile               ClientProfile `json:"profile"`
	CreatedAt             time.Time     `json:"created_at"`
}

// AdminContact es la asesora de bienestar que aparece en el plan.
type AdminContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
