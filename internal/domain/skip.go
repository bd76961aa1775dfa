package domain

import "math"

// Skip is a skip hire option as returned by the skip listing API.
// Records are displayed as received; nothing here validates or normalizes them.
type Skip struct {
	ID               int64    `json:"id"`
	Size             int      `json:"size"`
	HirePeriodDays   int      `json:"hire_period_days"`
	PriceBeforeVAT   float64  `json:"price_before_vat"`
	VAT              float64  `json:"vat"`
	AllowedOnRoad    bool     `json:"allowed_on_road"`
	AllowsHeavyWaste bool     `json:"allows_heavy_waste"`
	Postcode         string   `json:"postcode,omitempty"`
	Area             string   `json:"area,omitempty"`
	TransportCost    *float64 `json:"transport_cost"`
	PerTonneCost     *float64 `json:"per_tonne_cost"`
	Forbidden        bool     `json:"forbidden"`
}

// FinalPrice returns the VAT-inclusive price rounded to whole pounds.
func (s Skip) FinalPrice() int {
	return FinalPrice(s.PriceBeforeVAT, s.VAT)
}

// FinalPrice computes round(priceBeforeVAT * (1 + vat/100)).
// Halves round away from zero, which is half-up for non-negative prices.
func FinalPrice(priceBeforeVAT, vat float64) int {
	return int(math.Round(priceBeforeVAT * (1 + vat/100)))
}
