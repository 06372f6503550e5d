package landedcost

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/JulesSitpach/tradenavigatorpro/internal/calc"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func parseValid(t *testing.T, body string) Input {
	t.Helper()
	in, err := ParseInput([]byte(body))
	if err != nil {
		t.Fatalf("ParseInput(%s) returned error: %v", body, err)
	}
	return in
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_RequiredFieldsOnly(t *testing.T) {
	in := parseValid(t, `{"materials": 100, "labor": 200, "overhead": 150}`)
	res := Calculate(in, testNow)

	nearlyEqual(t, "totalCost", res.TotalCost, 450)
	nearlyEqual(t, "breakdown.materials", res.Breakdown.Materials, 100)
	nearlyEqual(t, "breakdown.labor", res.Breakdown.Labor, 200)
	nearlyEqual(t, "breakdown.overhead", res.Breakdown.Overhead, 150)
	if res.PerUnitCost != nil {
		t.Fatalf("perUnitCost should be absent without quantity, got %v", *res.PerUnitCost)
	}
	if res.Currency != "USD" {
		t.Fatalf("currency = %q, want USD", res.Currency)
	}
	if !strings.Contains(res.FormattedTotalCost, "450") {
		t.Fatalf("formattedTotalCost = %q", res.FormattedTotalCost)
	}
}

func TestCalculate_AllZerosIsValid(t *testing.T) {
	in := parseValid(t, `{"materials": 0, "labor": 0, "overhead": 0}`)
	res := Calculate(in, testNow)
	nearlyEqual(t, "totalCost", res.TotalCost, 0)
}

func TestCalculate_TariffAppliesToMaterials(t *testing.T) {
	in := parseValid(t, `{"materials": 100, "labor": 50, "overhead": 25, "tariffRate": 10, "shippingCost": 20}`)
	res := Calculate(in, testNow)

	nearlyEqual(t, "tariffAmount", res.Breakdown.TariffAmount, 10)
	nearlyEqual(t, "totalCost", res.TotalCost, 205)
}

func TestCalculate_AllOptionalFeesSummed(t *testing.T) {
	in := parseValid(t, `{
		"materials": 100, "labor": 100, "overhead": 100,
		"tariffRate": 5, "shippingCost": 10, "insuranceCost": 5,
		"customsFees": 3, "handlingFees": 2, "warehouseCosts": 1
	}`)
	res := Calculate(in, testNow)

	// 300 + 5 tariff + 10 + 5 + 3 + 2 + 1
	nearlyEqual(t, "totalCost", res.TotalCost, 326)
}

func TestCalculate_PerUnitCost(t *testing.T) {
	in := parseValid(t, `{"materials": 60, "labor": 30, "overhead": 10, "quantity": 4}`)
	res := Calculate(in, testNow)

	if res.PerUnitCost == nil {
		t.Fatalf("expected perUnitCost")
	}
	nearlyEqual(t, "perUnitCost", *res.PerUnitCost, 25)
	if res.FormattedPerUnitCost == "" {
		t.Fatalf("expected formattedPerUnitCost")
	}
}

func TestParseInput_MissingFieldErrorOrder(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{}`, "Materials cost must be a valid non-negative number"},
		{`{"materials": 100}`, "Labor cost must be a valid non-negative number"},
		{`{"materials": 100, "labor": 200}`, "Overhead cost must be a valid non-negative number"},
		// materials wins even when everything else is missing too
		{`{"labor": 200, "overhead": 150}`, "Materials cost must be a valid non-negative number"},
	}

	for _, tc := range cases {
		_, err := ParseInput([]byte(tc.body))
		var verr *calc.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseInput(%s) error = %v, want ValidationError", tc.body, err)
		}
		if verr.Message != tc.want {
			t.Fatalf("ParseInput(%s) message = %q, want %q", tc.body, verr.Message, tc.want)
		}
	}
}

func TestParseInput_NegativeOverhead(t *testing.T) {
	_, err := ParseInput([]byte(`{"materials": 100, "labor": 200, "overhead": -1}`))
	var verr *calc.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Message, "Overhead") {
		t.Fatalf("message should reference overhead: %q", verr.Message)
	}
}

func TestParseInput_StringNumbersRejected(t *testing.T) {
	_, err := ParseInput([]byte(`{"materials": "100", "labor": 200, "overhead": 150}`))
	var verr *calc.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Message != "Materials cost must be a valid non-negative number" {
		t.Fatalf("unexpected message %q", verr.Message)
	}
}

func TestParseInput_MalformedBody(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2,3]`, `null`} {
		_, err := ParseInput([]byte(body))
		if !errors.Is(err, calc.ErrMalformedRequest) {
			t.Fatalf("ParseInput(%q) error = %v, want ErrMalformedRequest", body, err)
		}
	}
}

func TestParseInput_QuantityMustBePositive(t *testing.T) {
	for _, body := range []string{
		`{"materials": 1, "labor": 1, "overhead": 1, "quantity": 0}`,
		`{"materials": 1, "labor": 1, "overhead": 1, "quantity": -2}`,
		`{"materials": 1, "labor": 1, "overhead": 1, "quantity": "3"}`,
	} {
		if _, err := ParseInput([]byte(body)); err == nil {
			t.Fatalf("ParseInput(%s) should fail", body)
		}
	}
}

func TestFormatAmount_UnsupportedCurrencyFallsBack(t *testing.T) {
	in := parseValid(t, `{"materials": 10, "labor": 0, "overhead": 0, "targetCurrency": "ZZZ"}`)
	res := Calculate(in, testNow)

	if res.FormattedTotalCost != "10.00" {
		t.Fatalf("formattedTotalCost = %q, want plain numeric fallback", res.FormattedTotalCost)
	}
	if res.Currency != "ZZZ" {
		t.Fatalf("currency = %q", res.Currency)
	}
}

func TestFormatAmount_EuroFormatting(t *testing.T) {
	in := parseValid(t, `{"materials": 100, "labor": 0, "overhead": 0, "targetCurrency": "EUR"}`)
	res := Calculate(in, testNow)

	if !strings.Contains(res.FormattedTotalCost, "100") {
		t.Fatalf("formattedTotalCost = %q", res.FormattedTotalCost)
	}
	if res.FormattedTotalCost == "100.00" {
		t.Fatalf("expected a currency-decorated amount, got bare number")
	}
}
