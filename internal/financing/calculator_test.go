package financing

import (
	"math"
	"testing"

	"imogest_backend/platform/apperr"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestCalculateMortgageStandardLoan(t *testing.T) {
	result, err := CalculateMortgage(MortgageParams{
		PropertyValue: 200000,
		DownPayment:   40000,
		InterestRate:  3,
		Spread:        1,
		TermYears:     30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Principal != 160000 {
		t.Fatalf("expected principal 160000, got %f", result.Principal)
	}
	if len(result.Schedule) != 360 {
		t.Fatalf("expected 360 schedule entries, got %d", len(result.Schedule))
	}

	// 160000 at 4%/year over 30 years.
	if !almostEqual(result.MonthlyPayment, 763.86, 0.01) {
		t.Fatalf("expected monthly payment ~763.86, got %f", result.MonthlyPayment)
	}

	var principalSum float64
	for _, entry := range result.Schedule {
		principalSum += entry.Principal
	}
	if !almostEqual(principalSum, 160000, 0.01) {
		t.Fatalf("expected principal parts to sum to the loan, got %f", principalSum)
	}

	final := result.Schedule[len(result.Schedule)-1]
	if !almostEqual(final.Balance, 0, 0.01) {
		t.Fatalf("expected final balance ~0, got %f", final.Balance)
	}

	if !almostEqual(result.TotalPaid, result.Principal+result.TotalInterest, 0.01) {
		t.Fatalf("totals do not add up: paid %f, principal %f, interest %f",
			result.TotalPaid, result.Principal, result.TotalInterest)
	}
}

func TestCalculateMortgageZeroRate(t *testing.T) {
	result, err := CalculateMortgage(MortgageParams{
		PropertyValue: 120000,
		DownPayment:   0,
		InterestRate:  0,
		Spread:        0,
		TermYears:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 1000 {
		t.Fatalf("expected straight-line payment 1000, got %f", result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Fatalf("expected zero interest, got %f", result.TotalInterest)
	}
	for _, entry := range result.Schedule {
		if entry.Interest != 0 {
			t.Fatalf("expected zero interest in month %d, got %f", entry.Month, entry.Interest)
		}
	}
	if result.Schedule[len(result.Schedule)-1].Balance != 0 {
		t.Fatalf("expected zero final balance")
	}
}

func TestCalculateMortgageBalanceDecreasesMonotonically(t *testing.T) {
	result, err := CalculateMortgage(MortgageParams{
		PropertyValue: 300000,
		DownPayment:   60000,
		InterestRate:  3.5,
		Spread:        0.9,
		TermYears:     25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	previous := result.Principal
	for _, entry := range result.Schedule {
		if entry.Balance >= previous {
			t.Fatalf("balance did not decrease in month %d: %f >= %f", entry.Month, entry.Balance, previous)
		}
		previous = entry.Balance
	}
}

func TestCalculateMortgageValidation(t *testing.T) {
	cases := []struct {
		name   string
		params MortgageParams
	}{
		{"zero value", MortgageParams{PropertyValue: 0, TermYears: 30}},
		{"negative down payment", MortgageParams{PropertyValue: 100000, DownPayment: -1, TermYears: 30}},
		{"down payment at value", MortgageParams{PropertyValue: 100000, DownPayment: 100000, TermYears: 30}},
		{"zero term", MortgageParams{PropertyValue: 100000, TermYears: 0}},
		{"term too long", MortgageParams{PropertyValue: 100000, TermYears: 51}},
		{"negative rate", MortgageParams{PropertyValue: 100000, InterestRate: -1, TermYears: 30}},
		{"negative spread", MortgageParams{PropertyValue: 100000, Spread: -0.1, TermYears: 30}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CalculateMortgage(tc.params); !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCalculateExtraCostsFirstBracket(t *testing.T) {
	costs, err := CalculateExtraCosts(100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if costs.IMT != 0 {
		t.Fatalf("expected zero IMT below the first threshold, got %f", costs.IMT)
	}
	if !almostEqual(costs.StampDuty, 800, 0.01) {
		t.Fatalf("expected stamp duty 800, got %f", costs.StampDuty)
	}
	if !almostEqual(costs.Total, 800+375+250, 0.01) {
		t.Fatalf("expected total 1425, got %f", costs.Total)
	}
}

func TestCalculateExtraCostsMiddleBracket(t *testing.T) {
	costs, err := CalculateExtraCosts(150000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedIMT := 150000*0.05 - 6220.66
	if !almostEqual(costs.IMT, expectedIMT, 0.01) {
		t.Fatalf("expected IMT %f, got %f", expectedIMT, costs.IMT)
	}
}

func TestCalculateExtraCostsTopBracket(t *testing.T) {
	costs, err := CalculateExtraCosts(700000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(costs.IMT, 700000*0.06, 0.01) {
		t.Fatalf("expected flat 6%% IMT above top threshold, got %f", costs.IMT)
	}
}

func TestCalculateExtraCostsContinuousAtThreshold(t *testing.T) {
	// The deduction makes the table continuous, so IMT just above the
	// zero-rate threshold is near zero and never negative.
	costs, err := CalculateExtraCosts(101918)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if costs.IMT < 0 {
		t.Fatalf("IMT must not be negative, got %f", costs.IMT)
	}
	if costs.IMT > 1 {
		t.Fatalf("expected near-zero IMT just above the threshold, got %f", costs.IMT)
	}
}

func TestCalculateExtraCostsInvalidValue(t *testing.T) {
	if _, err := CalculateExtraCosts(0); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
