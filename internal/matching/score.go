// Package matching ranks available listings against a lead's stated
// preferences.
package matching

import (
	"fmt"
	"strings"

	leadrepo "imogest_backend/internal/leads/repository"
	proprepo "imogest_backend/internal/properties/repository"
	proptransport "imogest_backend/internal/properties/transport"
)

const (
	pointsBudgetFit     = 40
	pointsBudgetStretch = 30
	pointsLocation      = 30
	pointsType          = 30
	pointsBuyerHouse    = 10
	maxScore            = 100

	// Stretch factors over the lead's stated budget.
	budgetStretchFactor   = 1.10
	budgetToleranceFactor = 1.20
)

// Match pairs a listing with its score against a lead.
type Match struct {
	Property proptransport.PropertyResponse `json:"property"`
	Score    int                            `json:"score"`
	Reasons  []string                       `json:"reasons"`
}

// scoreProperty computes the weighted match score for one candidate.
// Budget contributes 40 within budget and 30 up to a 10% stretch, location 30
// on substring match, type 30 on exact match with a 10 point bonus for buyers
// looking at houses. The sum is clamped to 100.
func scoreProperty(lead leadrepo.Lead, property proprepo.Property) (int, []string) {
	score := 0
	var reasons []string

	if lead.Budget != nil {
		switch {
		case property.Price <= *lead.Budget:
			score += pointsBudgetFit
			reasons = append(reasons, "within budget")
		case property.Price <= *lead.Budget*budgetStretchFactor:
			score += pointsBudgetStretch
			reasons = append(reasons, "slightly above budget")
		}
	}

	if lead.LocationPreference != nil && *lead.LocationPreference != "" &&
		strings.Contains(property.Location, *lead.LocationPreference) {
		score += pointsLocation
		reasons = append(reasons, fmt.Sprintf("matches location %q", *lead.LocationPreference))
	}

	if lead.PropertyType != nil && *lead.PropertyType == property.PropertyType {
		score += pointsType
		reasons = append(reasons, fmt.Sprintf("matches type %q", property.PropertyType))

		if lead.Intent == "buyer" && property.PropertyType == "house" {
			score += pointsBuyerHouse
			reasons = append(reasons, "buyer looking at a house")
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score, reasons
}
