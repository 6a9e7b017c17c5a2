package financing

import "imogest_backend/platform/apperr"

// 2024 mainland IMT table for a primary-residence urban dwelling. Each bracket
// applies a marginal rate with a fixed deduction.
var imtBrackets = []struct {
	upTo      float64
	rate      float64
	deduction float64
}{
	{101917, 0, 0},
	{139412, 0.02, 2038.34},
	{190086, 0.05, 6220.66},
	{316772, 0.07, 10021.54},
	{633453, 0.08, 13189.26},
}

const (
	imtTopRate    = 0.06
	stampDutyRate = 0.008
	notaryFee     = 375.0
	registryFee   = 250.0
)

// ExtraCosts are the one-off acquisition costs on top of the purchase price.
type ExtraCosts struct {
	IMT       float64 `json:"imt"`
	StampDuty float64 `json:"stampDuty"`
	Notary    float64 `json:"notary"`
	Registry  float64 `json:"registry"`
	Total     float64 `json:"total"`
}

// CalculateExtraCosts computes IMT, stamp duty, and flat notary and registry
// fees for a property purchase.
func CalculateExtraCosts(propertyValue float64) (ExtraCosts, error) {
	if propertyValue <= 0 {
		return ExtraCosts{}, apperr.Validation("property value must be positive")
	}

	imt := calculateIMT(propertyValue)
	stampDuty := propertyValue * stampDutyRate

	return ExtraCosts{
		IMT:       imt,
		StampDuty: stampDuty,
		Notary:    notaryFee,
		Registry:  registryFee,
		Total:     imt + stampDuty + notaryFee + registryFee,
	}, nil
}

func calculateIMT(value float64) float64 {
	for _, bracket := range imtBrackets {
		if value <= bracket.upTo {
			imt := value*bracket.rate - bracket.deduction
			if imt < 0 {
				imt = 0
			}
			return imt
		}
	}
	return value * imtTopRate
}
