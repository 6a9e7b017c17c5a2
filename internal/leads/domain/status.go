// Package domain holds the leads bounded context's core types.
package domain

import "imogest_backend/platform/apperr"

// Status is a lead's pipeline stage.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusQualified   Status = "qualified"
	StatusProposal    Status = "proposal"
	StatusNegotiation Status = "negotiation"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
)

// AllStatuses lists the pipeline stages in funnel order.
var AllStatuses = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusProposal,
	StatusNegotiation,
	StatusWon,
	StatusLost,
}

// statusPoints is the score contribution of each pipeline stage.
// Lost contributes nothing regardless of profile completeness signals.
var statusPoints = map[Status]int{
	StatusNew:         10,
	StatusContacted:   20,
	StatusQualified:   40,
	StatusProposal:    60,
	StatusNegotiation: 80,
	StatusWon:         100,
	StatusLost:        0,
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", apperr.Validation("invalid lead status: " + raw)
	}
	return s, nil
}

// Valid reports whether the status is a known pipeline stage.
func (s Status) Valid() bool {
	_, ok := statusPoints[s]
	return ok
}

// Points returns the stage's scoring contribution. Unknown stages score 0.
func (s Status) Points() int {
	return statusPoints[s]
}

func (s Status) String() string { return string(s) }

// Intent describes what the lead wants to do.
type Intent string

const (
	IntentBuyer    Intent = "buyer"
	IntentTenant   Intent = "tenant"
	IntentInvestor Intent = "investor"
)

// ParseIntent validates a raw intent string. Empty defaults to buyer.
func ParseIntent(raw string) (Intent, error) {
	switch Intent(raw) {
	case IntentBuyer, IntentTenant, IntentInvestor:
		return Intent(raw), nil
	case "":
		return IntentBuyer, nil
	}
	return "", apperr.Validation("invalid lead intent: " + raw)
}

func (i Intent) String() string { return string(i) }
