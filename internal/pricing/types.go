package pricing

import "time"

// ProductCost describes the cost structure of the product being priced.
type ProductCost struct {
	Name               string    `json:"name"`
	SKU                string    `json:"sku"`
	Category           string    `json:"category"`
	CurrentPrice       float64   `json:"current_price"`
	UnitCost           float64   `json:"unit_cost"`
	FixedCosts         float64   `json:"fixed_costs"`
	VariableCosts      float64   `json:"variable_costs"`
	TariffRate         float64   `json:"tariff_rate"`
	ShippingCost       float64   `json:"shipping_cost"`
	MinimumViablePrice float64   `json:"minimum_viable_price"`
	CompetitorPrices   []float64 `json:"competitor_prices,omitempty"`
	PriceElasticity    *float64  `json:"price_elasticity,omitempty"`
	SalesVolumeCurrent int       `json:"sales_volume_current"`
	MarketShareCurrent *float64  `json:"market_share_current,omitempty"`
}

// ScenarioParameter is a named set of percentage perturbations applied to
// the baseline cost model. Absent fields default to zero.
type ScenarioParameter struct {
	Name                  string  `json:"name"`
	TariffIncrease        float64 `json:"tariff_increase,omitempty"`
	MaterialCostChange    float64 `json:"material_cost_change,omitempty"`
	ShippingCostChange    float64 `json:"shipping_cost_change,omitempty"`
	CompetitorPriceChange float64 `json:"competitor_price_change,omitempty"`
	CurrencyFluctuation   float64 `json:"currency_fluctuation,omitempty"`
	DemandChange          float64 `json:"demand_change,omitempty"`
	MarketingSpendChange  float64 `json:"marketing_spend_change,omitempty"`
}

// PriceRange bounds the candidate price sweep, inclusive of both ends.
type PriceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Request is the optimizer input contract.
type Request struct {
	Product      ProductCost         `json:"product"`
	TargetMargin *float64            `json:"target_margin,omitempty"`
	Scenarios    []ScenarioParameter `json:"scenarios"`
	PriceRange   *PriceRange         `json:"price_range,omitempty"`
	Strategies   []string            `json:"strategies,omitempty"`
}

// PricePoint is one candidate price evaluated within a scenario.
type PricePoint struct {
	Price                 float64 `json:"price"`
	MarginPercentage      float64 `json:"margin_percentage"`
	Profit                float64 `json:"profit"`
	Revenue               float64 `json:"revenue"`
	VolumeProjection      float64 `json:"volume_projection"`
	MarketShareProjection float64 `json:"market_share_projection,omitempty"`
	PriceChangePercentage float64 `json:"price_change_percentage"`
	IsRecommended         bool    `json:"is_recommended"`
}

// BaseCosts is the scenario-adjusted cost breakdown.
type BaseCosts struct {
	UnitCost      float64 `json:"unit_cost"`
	TariffCost    float64 `json:"tariff_cost"`
	ShippingCost  float64 `json:"shipping_cost"`
	TotalUnitCost float64 `json:"total_unit_cost"`
	FixedCosts    float64 `json:"fixed_costs"`
	VariableCosts float64 `json:"variable_costs"`
}

// Relative positions of the optimal price against the competitor average.
const (
	PositionLower   = "lower"
	PositionSimilar = "similar"
	PositionHigher  = "higher"
)

// CompetitorComparison relates the optimal price to the competitor average.
type CompetitorComparison struct {
	AverageCompetitorPrice    float64 `json:"average_competitor_price"`
	PriceDifferencePercentage float64 `json:"price_difference_percentage"`
	RelativePosition          string  `json:"relative_position"`
}

// Risk levels for a scenario's pricing move.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskAssessment is a qualitative rating with human-readable reasons.
type RiskAssessment struct {
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// ScenarioResult is the full evaluation of one scenario.
type ScenarioResult struct {
	ScenarioName         string                `json:"scenario_name"`
	BaseCosts            BaseCosts             `json:"base_costs"`
	PricePoints          []PricePoint          `json:"price_points"`
	OptimalPrice         float64               `json:"optimal_price"`
	OptimalMargin        float64               `json:"optimal_margin"`
	BreakEvenPrice       float64               `json:"break_even_price"`
	CompetitorComparison *CompetitorComparison `json:"competitor_comparison,omitempty"`
	RiskAssessment       RiskAssessment        `json:"risk_assessment"`
}

// Recommendations aggregates the scenario set into one suggested strategy.
type Recommendations struct {
	OptimalStrategy string   `json:"optimal_strategy"`
	PriceSuggestion float64  `json:"price_suggestion"`
	ExpectedMargin  float64  `json:"expected_margin"`
	ExpectedProfit  float64  `json:"expected_profit"`
	ExpectedRevenue float64  `json:"expected_revenue"`
	KeyInsights     []string `json:"key_insights"`
}

// SensitivityPoint maps one swept price to a derived value.
type SensitivityPoint struct {
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}

// SensitivityAnalysis restates the base scenario's sweep as three parallel
// series for charting.
type SensitivityAnalysis struct {
	PriceVsMargin []SensitivityPoint `json:"price_vs_margin"`
	PriceVsVolume []SensitivityPoint `json:"price_vs_volume"`
	PriceVsProfit []SensitivityPoint `json:"price_vs_profit"`
}

// OptimizationResult is the top-level optimizer output. ID and CreatedAt are
// side-channel metadata; everything else is deterministic for a given input.
type OptimizationResult struct {
	ID                  string              `json:"id"`
	Product             ProductCost         `json:"product"`
	TargetMargin        float64             `json:"target_margin"`
	Scenarios           []ScenarioResult    `json:"scenarios"`
	Recommendations     Recommendations     `json:"recommendations"`
	SensitivityAnalysis SensitivityAnalysis `json:"sensitivity_analysis"`
	CreatedAt           time.Time           `json:"created_at"`
}
