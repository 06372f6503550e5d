// Package landedcost computes the total cost of getting a unit of product
// to its destination: manufacturing plus tariffs, shipping, insurance,
// customs, handling, and warehousing.
package landedcost

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JulesSitpach/tradenavigatorpro/internal/calc"
)

const defaultCurrency = "USD"

// Input is a validated cost-calculation request. Quantity is 0 when the
// caller did not ask for a per-unit figure.
type Input struct {
	Materials      float64
	Labor          float64
	Overhead       float64
	TariffRate     float64
	ShippingCost   float64
	InsuranceCost  float64
	CustomsFees    float64
	HandlingFees   float64
	WarehouseCosts float64
	Quantity       float64
	TargetCurrency string
}

// Breakdown echoes the components that went into the total. The three
// required costs are always present; optional ones only when non-zero.
type Breakdown struct {
	Materials      float64 `json:"materials"`
	Labor          float64 `json:"labor"`
	Overhead       float64 `json:"overhead"`
	TariffAmount   float64 `json:"tariffAmount,omitempty"`
	ShippingCost   float64 `json:"shippingCost,omitempty"`
	InsuranceCost  float64 `json:"insuranceCost,omitempty"`
	CustomsFees    float64 `json:"customsFees,omitempty"`
	HandlingFees   float64 `json:"handlingFees,omitempty"`
	WarehouseCosts float64 `json:"warehouseCosts,omitempty"`
}

// Result is the JSON response body of a cost calculation.
type Result struct {
	TotalCost            float64   `json:"totalCost"`
	PerUnitCost          *float64  `json:"perUnitCost,omitempty"`
	Breakdown            Breakdown `json:"breakdown"`
	FormattedTotalCost   string    `json:"formattedTotalCost"`
	FormattedPerUnitCost string    `json:"formattedPerUnitCost,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
	Currency             string    `json:"currency"`
}

type fieldSpec struct {
	field string
	label string
	dst   func(*Input) *float64
}

// Validation order is part of the contract: the first failing field wins and
// later fields are not checked.
var requiredFields = []fieldSpec{
	{"materials", "Materials", func(in *Input) *float64 { return &in.Materials }},
	{"labor", "Labor", func(in *Input) *float64 { return &in.Labor }},
	{"overhead", "Overhead", func(in *Input) *float64 { return &in.Overhead }},
}

var optionalFields = []fieldSpec{
	{"tariffRate", "Tariff rate", func(in *Input) *float64 { return &in.TariffRate }},
	{"shippingCost", "Shipping", func(in *Input) *float64 { return &in.ShippingCost }},
	{"insuranceCost", "Insurance", func(in *Input) *float64 { return &in.InsuranceCost }},
	{"customsFees", "Customs fees", func(in *Input) *float64 { return &in.CustomsFees }},
	{"handlingFees", "Handling fees", func(in *Input) *float64 { return &in.HandlingFees }},
	{"warehouseCosts", "Warehouse", func(in *Input) *float64 { return &in.WarehouseCosts }},
}

// ParseInput decodes and validates a request body. It returns
// calc.ErrMalformedRequest when the body is not a JSON object and a
// *calc.ValidationError for the first field that fails its check.
func ParseInput(body []byte) (Input, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Input{}, calc.ErrMalformedRequest
	}

	in := Input{TargetCurrency: defaultCurrency}
	for _, f := range requiredFields {
		v, ok := calc.NonNegativeNumber(raw, f.field)
		if !ok {
			return Input{}, calc.Invalidf("%s cost must be a valid non-negative number", f.label)
		}
		*f.dst(&in) = v
	}
	for _, f := range optionalFields {
		if _, present := raw[f.field]; !present {
			continue
		}
		v, ok := calc.NonNegativeNumber(raw, f.field)
		if !ok {
			return Input{}, calc.Invalidf("%s cost must be a valid non-negative number", f.label)
		}
		*f.dst(&in) = v
	}

	if rawQty, present := raw["quantity"]; present {
		v, ok := calc.Number(rawQty)
		if !ok || v <= 0 {
			return Input{}, calc.Invalidf("Quantity must be a positive number")
		}
		in.Quantity = v
	}
	if rawCur, present := raw["targetCurrency"]; present {
		s, ok := rawCur.(string)
		if !ok || s == "" {
			return Input{}, calc.Invalidf("Target currency must be a currency code")
		}
		in.TargetCurrency = s
	}

	return in, nil
}

// Calculate sums the cost components of a validated input. The tariff is
// levied on the materials cost basis; this intentionally differs from the
// pricing optimizer, where tariffs apply to the full unit cost.
func Calculate(in Input, now time.Time) Result {
	materials := decimal.NewFromFloat(in.Materials)
	tariffAmount := materials.Mul(decimal.NewFromFloat(in.TariffRate)).Div(decimal.NewFromInt(100))

	total := materials.
		Add(decimal.NewFromFloat(in.Labor)).
		Add(decimal.NewFromFloat(in.Overhead)).
		Add(tariffAmount).
		Add(decimal.NewFromFloat(in.ShippingCost)).
		Add(decimal.NewFromFloat(in.InsuranceCost)).
		Add(decimal.NewFromFloat(in.CustomsFees)).
		Add(decimal.NewFromFloat(in.HandlingFees)).
		Add(decimal.NewFromFloat(in.WarehouseCosts))

	res := Result{
		TotalCost: total.InexactFloat64(),
		Breakdown: Breakdown{
			Materials:      in.Materials,
			Labor:          in.Labor,
			Overhead:       in.Overhead,
			TariffAmount:   tariffAmount.InexactFloat64(),
			ShippingCost:   in.ShippingCost,
			InsuranceCost:  in.InsuranceCost,
			CustomsFees:    in.CustomsFees,
			HandlingFees:   in.HandlingFees,
			WarehouseCosts: in.WarehouseCosts,
		},
		FormattedTotalCost: formatAmount(total.InexactFloat64(), in.TargetCurrency),
		Timestamp:          now,
		Currency:           in.TargetCurrency,
	}

	if in.Quantity > 0 {
		perUnit := total.Div(decimal.NewFromFloat(in.Quantity)).Round(4).InexactFloat64()
		res.PerUnitCost = &perUnit
		res.FormattedPerUnitCost = formatAmount(perUnit, in.TargetCurrency)
	}

	return res
}

// formatAmount renders a value in the target currency. Unknown ISO codes
// fall back to a plain numeric display instead of failing the request.
func formatAmount(v float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(v)))
}
