// Package pricing implements the scenario-based price optimizer: a pure
// sweep over candidate prices under named cost perturbations, with an
// optimal-price pick, risk rating, and cross-scenario recommendation.
package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JulesSitpach/tradenavigatorpro/internal/calc"
)

// DefaultTargetMargin applies when the request omits target_margin.
const DefaultTargetMargin = 20.0

const (
	defaultRangeSpread = 0.30
	defaultStep        = 1.0
	maxSweepPoints     = 5000

	// Competitor average within this band counts as a similar position.
	positionBandPercent = 2.0

	highRiskPriceChangePercent   = 15.0
	mediumRiskPriceChangePercent = 8.0
	highRiskMarginShortfall      = 10.0
	mediumRiskMarginShortfall    = 5.0
)

// Optimize evaluates every scenario against the product's cost structure and
// returns the full optimization result. It performs no I/O and, apart from
// the id/created_at stamp, is deterministic for identical inputs.
func Optimize(req Request) (*OptimizationResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	targetMargin := DefaultTargetMargin
	if req.TargetMargin != nil {
		targetMargin = *req.TargetMargin
	}

	prices, err := sweep(req)
	if err != nil {
		return nil, err
	}

	scenarios := make([]ScenarioResult, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		scenarios = append(scenarios, evaluateScenario(req.Product, sc, targetMargin, prices))
	}

	return &OptimizationResult{
		ID:                  uuid.NewString(),
		Product:             req.Product,
		TargetMargin:        targetMargin,
		Scenarios:           scenarios,
		Recommendations:     recommend(req.Product, scenarios, targetMargin),
		SensitivityAnalysis: sensitivity(scenarios[0]),
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func validate(req Request) error {
	p := req.Product
	if strings.TrimSpace(p.Name) == "" {
		return calc.Invalidf("product name is required")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return calc.Invalidf("product sku is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return calc.Invalidf("product category is required")
	}
	if p.CurrentPrice <= 0 {
		return calc.Invalidf("current_price must be positive")
	}
	if p.UnitCost < 0 {
		return calc.Invalidf("unit_cost must be non-negative")
	}
	if p.FixedCosts < 0 || p.VariableCosts < 0 || p.TariffRate < 0 ||
		p.ShippingCost < 0 || p.MinimumViablePrice < 0 {
		return calc.Invalidf("cost fields must be non-negative")
	}
	if p.SalesVolumeCurrent <= 0 {
		return calc.Invalidf("sales_volume_current must be positive")
	}
	for _, c := range p.CompetitorPrices {
		if c <= 0 {
			return calc.Invalidf("competitor_prices must be positive")
		}
	}
	if p.MarketShareCurrent != nil && (*p.MarketShareCurrent < 0 || *p.MarketShareCurrent > 100) {
		return calc.Invalidf("market_share_current must be between 0 and 100")
	}
	if req.TargetMargin != nil && (*req.TargetMargin < 0 || *req.TargetMargin >= 100) {
		return calc.Invalidf("target_margin must be between 0 and 100")
	}
	if len(req.Scenarios) == 0 {
		return calc.Invalidf("at least one scenario is required")
	}
	for _, sc := range req.Scenarios {
		if strings.TrimSpace(sc.Name) == "" {
			return calc.Invalidf("scenario name is required")
		}
	}
	if r := req.PriceRange; r != nil {
		if r.Min <= 0 || r.Max < r.Min {
			return calc.Invalidf("price_range bounds are invalid")
		}
		if r.Step <= 0 {
			return calc.Invalidf("price_range step must be positive")
		}
	}
	return nil
}

// sweep resolves the candidate price list, deriving a band around the
// current price when the request does not supply one. Both bands are
// guaranteed non-empty: validate enforces min > 0 and max >= min on explicit
// ranges, and the derived band inherits positivity from current_price.
func sweep(req Request) ([]float64, error) {
	rng := PriceRange{
		Min:  req.Product.CurrentPrice * (1 - defaultRangeSpread),
		Max:  req.Product.CurrentPrice * (1 + defaultRangeSpread),
		Step: defaultStep,
	}
	if req.PriceRange != nil {
		rng = *req.PriceRange
	}

	count := (rng.Max-rng.Min)/rng.Step + 1
	if count > maxSweepPoints {
		return nil, calc.Invalidf("price_range produces too many price points")
	}

	prices := make([]float64, 0, int(count))
	for p := rng.Min; p <= rng.Max+1e-9; p += rng.Step {
		price := calc.Round2(p)
		if price <= 0 {
			// sub-cent candidates collapse to zero at two decimals; keep
			// the raw value so margins stay finite
			price = p
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func evaluateScenario(p ProductCost, sc ScenarioParameter, targetMargin float64, prices []float64) ScenarioResult {
	adjustedUnit := p.UnitCost * (1 + sc.MaterialCostChange/100)
	tariffCost := adjustedUnit * (p.TariffRate + sc.TariffIncrease) / 100
	shipping := p.ShippingCost * (1 + sc.ShippingCostChange/100)
	totalUnit := (adjustedUnit + tariffCost + shipping) * (1 + sc.CurrencyFluctuation/100)

	baseVolume := float64(p.SalesVolumeCurrent)
	points := make([]PricePoint, len(prices))
	for i, price := range prices {
		priceChange := (price - p.CurrentPrice) / p.CurrentPrice * 100

		volume := baseVolume * (1 + sc.DemandChange/100) * (1 + sc.MarketingSpendChange/100)
		if p.PriceElasticity != nil {
			volume *= 1 + *p.PriceElasticity*priceChange/100
		}
		if volume < 0 {
			volume = 0
		}

		pt := PricePoint{
			Price:                 price,
			MarginPercentage:      calc.Round2((price - totalUnit) / price * 100),
			Profit:                calc.Round2((price-totalUnit)*volume - p.FixedCosts),
			Revenue:               calc.Round2(price * volume),
			VolumeProjection:      math.Round(volume),
			PriceChangePercentage: calc.Round2(priceChange),
		}
		if p.MarketShareCurrent != nil {
			share := *p.MarketShareCurrent * (volume / baseVolume)
			pt.MarketShareProjection = calc.Round2(math.Min(share, 100))
		}
		points[i] = pt
	}

	best := selectOptimal(points, p, targetMargin)
	points[best].IsRecommended = true
	opt := points[best]

	breakEven := (totalUnit + p.FixedCosts/baseVolume) / (1 - targetMargin/100)

	result := ScenarioResult{
		ScenarioName: sc.Name,
		BaseCosts: BaseCosts{
			UnitCost:      calc.Round2(adjustedUnit),
			TariffCost:    calc.Round2(tariffCost),
			ShippingCost:  calc.Round2(shipping),
			TotalUnitCost: calc.Round2(totalUnit),
			FixedCosts:    p.FixedCosts,
			VariableCosts: p.VariableCosts,
		},
		PricePoints:    points,
		OptimalPrice:   opt.Price,
		OptimalMargin:  opt.MarginPercentage,
		BreakEvenPrice: calc.Round2(breakEven),
		RiskAssessment: assessRisk(p, opt, targetMargin),
	}
	if len(p.CompetitorPrices) > 0 {
		result.CompetitorComparison = compareCompetitors(p.CompetitorPrices, sc.CompetitorPriceChange, opt.Price)
	}
	return result
}

// selectOptimal picks the candidate meeting the target margin with the least
// disruption to the current price, ties broken toward higher profit.
// Candidates under the minimum viable price are never selected, though they
// remain in the sweep output. When no candidate reaches the target margin
// the highest-margin candidate wins.
func selectOptimal(points []PricePoint, p ProductCost, targetMargin float64) int {
	best, fallback := -1, -1
	for i, pt := range points {
		if pt.Price < p.MinimumViablePrice {
			continue
		}
		if fallback == -1 ||
			pt.MarginPercentage > points[fallback].MarginPercentage ||
			(pt.MarginPercentage == points[fallback].MarginPercentage && pt.Profit > points[fallback].Profit) {
			fallback = i
		}
		if pt.MarginPercentage < targetMargin {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		cur := math.Abs(pt.PriceChangePercentage)
		prev := math.Abs(points[best].PriceChangePercentage)
		if cur < prev || (cur == prev && pt.Profit > points[best].Profit) {
			best = i
		}
	}
	if best != -1 {
		return best
	}
	if fallback != -1 {
		return fallback
	}
	// Every candidate sits under the viable floor; the top of the band is
	// the least-bad answer.
	return len(points) - 1
}

func assessRisk(p ProductCost, opt PricePoint, targetMargin float64) RiskAssessment {
	level := RiskLow
	var factors []string

	change := math.Abs(opt.PriceChangePercentage)
	switch {
	case change > highRiskPriceChangePercent:
		level = RiskHigh
		factors = append(factors, "Required price change exceeds comfortable threshold")
	case change > mediumRiskPriceChangePercent:
		level = RiskMedium
		factors = append(factors, "Required price change is significant")
	}

	shortfall := targetMargin - opt.MarginPercentage
	switch {
	case shortfall > highRiskMarginShortfall:
		level = RiskHigh
		factors = append(factors, "Achievable margin falls well short of target")
	case shortfall > mediumRiskMarginShortfall:
		if level != RiskHigh {
			level = RiskMedium
		}
		factors = append(factors, "Achievable margin falls short of target")
	}

	if opt.Price < p.CurrentPrice {
		factors = append(factors, "Optimal price sits below the current market price")
	}
	if len(factors) == 0 {
		factors = append(factors, "Price position is stable at the target margin")
	}
	return RiskAssessment{Level: level, Factors: factors}
}

func compareCompetitors(competitorPrices []float64, changePercent, optimalPrice float64) *CompetitorComparison {
	var sum float64
	for _, c := range competitorPrices {
		sum += c
	}
	avg := sum / float64(len(competitorPrices)) * (1 + changePercent/100)
	diff := (optimalPrice - avg) / avg * 100

	position := PositionSimilar
	switch {
	case diff < -positionBandPercent:
		position = PositionLower
	case diff > positionBandPercent:
		position = PositionHigher
	}

	return &CompetitorComparison{
		AverageCompetitorPrice:    calc.Round2(avg),
		PriceDifferencePercentage: calc.Round2(diff),
		RelativePosition:          position,
	}
}

// recommend picks the scenario with the best margin-to-price-change balance
// and summarizes it.
func recommend(p ProductCost, scenarios []ScenarioResult, targetMargin float64) Recommendations {
	bestIdx := 0
	bestScore := math.Inf(-1)
	for i, sc := range scenarios {
		change := math.Abs((sc.OptimalPrice - p.CurrentPrice) / p.CurrentPrice * 100)
		if score := sc.OptimalMargin / (1 + change); score > bestScore {
			bestScore, bestIdx = score, i
		}
	}
	best := scenarios[bestIdx]

	var opt PricePoint
	for _, pt := range best.PricePoints {
		if pt.IsRecommended {
			opt = pt
			break
		}
	}

	insights := []string{
		fmt.Sprintf("%s achieves a %.1f%% margin at %.2f", best.ScenarioName, best.OptimalMargin, best.OptimalPrice),
	}
	if best.OptimalMargin >= targetMargin {
		insights = append(insights, fmt.Sprintf("Target margin of %.1f%% is attainable", targetMargin))
	} else {
		insights = append(insights, fmt.Sprintf("Target margin of %.1f%% is not attainable within the price range", targetMargin))
	}
	if cc := best.CompetitorComparison; cc != nil {
		insights = append(insights, fmt.Sprintf("Suggested price is %s relative to the competitor average", cc.RelativePosition))
	}
	if best.RiskAssessment.Level != RiskLow {
		insights = append(insights, fmt.Sprintf("Risk level is %s: %s", best.RiskAssessment.Level, best.RiskAssessment.Factors[0]))
	}

	return Recommendations{
		OptimalStrategy: best.ScenarioName,
		PriceSuggestion: best.OptimalPrice,
		ExpectedMargin:  best.OptimalMargin,
		ExpectedProfit:  opt.Profit,
		ExpectedRevenue: opt.Revenue,
		KeyInsights:     insights,
	}
}

// sensitivity restates the first scenario's sweep as chartable series.
func sensitivity(base ScenarioResult) SensitivityAnalysis {
	n := len(base.PricePoints)
	s := SensitivityAnalysis{
		PriceVsMargin: make([]SensitivityPoint, n),
		PriceVsVolume: make([]SensitivityPoint, n),
		PriceVsProfit: make([]SensitivityPoint, n),
	}
	for i, pt := range base.PricePoints {
		s.PriceVsMargin[i] = SensitivityPoint{Price: pt.Price, Value: pt.MarginPercentage}
		s.PriceVsVolume[i] = SensitivityPoint{Price: pt.Price, Value: pt.VolumeProjection}
		s.PriceVsProfit[i] = SensitivityPoint{Price: pt.Price, Value: pt.Profit}
	}
	return s
}
