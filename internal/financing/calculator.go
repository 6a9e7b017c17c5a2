// Package financing simulates mortgage financing and the acquisition costs of
// a Portuguese property purchase.
package financing

import (
	"math"

	"imogest_backend/platform/apperr"
)

const (
	minTermYears = 1
	maxTermYears = 50
)

// MortgageParams are the inputs of a financing simulation.
type MortgageParams struct {
	PropertyValue float64 `json:"propertyValue"`
	DownPayment   float64 `json:"downPayment"`
	InterestRate  float64 `json:"interestRate"`
	Spread        float64 `json:"spread"`
	TermYears     int     `json:"termYears"`
}

// ScheduleEntry is one month of the amortization schedule.
type ScheduleEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// MortgageResult is the outcome of a financing simulation.
type MortgageResult struct {
	Principal      float64         `json:"principal"`
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalPaid      float64         `json:"totalPaid"`
	TotalInterest  float64         `json:"totalInterest"`
	Schedule       []ScheduleEntry `json:"schedule"`
}

// CalculateMortgage computes an annuity amortization schedule. The loan rate
// is the index rate plus the bank spread. A zero total rate degenerates to
// straight-line repayment.
func CalculateMortgage(params MortgageParams) (MortgageResult, error) {
	if err := validateParams(params); err != nil {
		return MortgageResult{}, err
	}

	principal := params.PropertyValue - params.DownPayment
	monthlyRate := (params.InterestRate + params.Spread) / 100 / 12
	months := params.TermYears * 12

	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = principal / float64(months)
	} else {
		factor := math.Pow(1+monthlyRate, float64(months))
		monthlyPayment = principal * monthlyRate * factor / (factor - 1)
	}

	schedule := make([]ScheduleEntry, 0, months)
	balance := principal
	totalInterest := 0.0

	for month := 1; month <= months; month++ {
		interest := balance * monthlyRate
		principalPart := monthlyPayment - interest
		balance -= principalPart
		if balance < 0 {
			balance = 0
		}
		totalInterest += interest

		schedule = append(schedule, ScheduleEntry{
			Month:     month,
			Payment:   monthlyPayment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}

	return MortgageResult{
		Principal:      principal,
		MonthlyPayment: monthlyPayment,
		TotalPaid:      monthlyPayment * float64(months),
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	}, nil
}

func validateParams(params MortgageParams) error {
	if params.PropertyValue <= 0 {
		return apperr.Validation("property value must be positive")
	}
	if params.DownPayment < 0 || params.DownPayment >= params.PropertyValue {
		return apperr.Validation("down payment must be at least 0 and below the property value")
	}
	if params.TermYears < minTermYears || params.TermYears > maxTermYears {
		return apperr.Validation("term must be between 1 and 50 years")
	}
	if params.InterestRate < 0 || params.Spread < 0 {
		return apperr.Validation("rates must not be negative")
	}
	return nil
}
