// Package scoring computes lead priority scores from profile completeness and
// pipeline stage.
package scoring

import (
	"context"

	"imogest_backend/internal/events"
	"imogest_backend/internal/leads/domain"
	"imogest_backend/internal/leads/repository"
	"imogest_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2026-v1"

	// Completeness points. A fully filled profile contributes 50.
	pointsEmail    = 10
	pointsPhone    = 10
	pointsBudget   = 15
	pointsLocation = 15

	maxScore = 100
)

// ScoreLead computes the 0-100 score for a lead record. Pure: no I/O.
// The breakdown maps factor names to their contribution for debugging.
func ScoreLead(lead repository.Lead) (int, map[string]int) {
	factors := map[string]int{}
	score := 0

	score += addFactor(factors, "email", boolPoints(lead.Email != nil && *lead.Email != "", pointsEmail))
	score += addFactor(factors, "phone", boolPoints(lead.Phone != nil && *lead.Phone != "", pointsPhone))
	score += addFactor(factors, "budget", boolPoints(lead.Budget != nil && *lead.Budget > 0, pointsBudget))
	score += addFactor(factors, "location", boolPoints(lead.LocationPreference != nil && *lead.LocationPreference != "", pointsLocation))
	score += addFactor(factors, "stage", domain.Status(lead.Status).Points())

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return score, factors
}

func boolPoints(present bool, points int) int {
	if present {
		return points
	}
	return 0
}

func addFactor(factors map[string]int, key string, value int) int {
	if value != 0 {
		factors[key] = value
	}
	return value
}

// Result reports a recomputed score and whether it reached storage.
// A false Persisted with a non-zero score means the write failed and the
// stored score is stale.
type Result struct {
	Score     int  `json:"score"`
	Persisted bool `json:"persisted"`
}

// Service recomputes and persists lead scores.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new scoring service. The bus may be nil (worker contexts).
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CalculateLeadScore recomputes a lead's score and writes it back.
// A lead that cannot be read scores 0 and nothing is written; a failed write
// is logged and reported through Result.Persisted rather than an error.
func (s *Service) CalculateLeadScore(ctx context.Context, leadID uuid.UUID) Result {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		s.log.Warn("lead score skipped, lead unavailable", "leadId", leadID, "error", err)
		return Result{Score: 0, Persisted: false}
	}

	score, factors := ScoreLead(lead)

	if err := s.repo.UpdateScore(ctx, leadID, score); err != nil {
		s.log.Error("lead score write failed", "leadId", leadID, "score", score, "error", err)
		return Result{Score: score, Persisted: false}
	}

	s.log.Debug("lead scored", "leadId", leadID, "score", score, "version", scoreVersion, "factors", factors)

	if s.bus != nil && score != lead.Score {
		s.bus.Publish(ctx, events.LeadScoreUpdated{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    leadID,
			OldScore:  lead.Score,
			NewScore:  score,
		})
	}

	return Result{Score: score, Persisted: true}
}
