package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	leadrepo "imogest_backend/internal/leads/repository"
	proprepo "imogest_backend/internal/properties/repository"
	proptransport "imogest_backend/internal/properties/transport"
	"imogest_backend/platform/logger"
)

const (
	candidateLimit = 10
	cacheTTL       = 5 * time.Minute
)

// Service computes ranked property matches for leads. Results are cached in
// Redis keyed by lead id and updated_at, so a lead edit invalidates naturally.
type Service struct {
	leads      leadrepo.Repository
	properties proprepo.Repository
	cache      *redis.Client
	log        *logger.Logger
}

// New creates a matching service. cache may be nil to disable caching.
func New(leads leadrepo.Repository, properties proprepo.Repository, cache *redis.Client, log *logger.Logger) *Service {
	return &Service{leads: leads, properties: properties, cache: cache, log: log}
}

// FindMatchesForLead scores available candidate listings against the lead and
// returns them ranked by score descending. Candidates are capped at 10 cheapest
// listings within 120% of the lead's budget before scoring. Cache failures are
// logged and bypassed, storage failures propagate.
func (s *Service) FindMatchesForLead(ctx context.Context, leadID uuid.UUID) ([]Match, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	cacheKey := s.matchCacheKey(lead)
	if cached, ok := s.cachedMatches(ctx, cacheKey); ok {
		return cached, nil
	}

	params := proprepo.CandidateParams{Limit: candidateLimit}
	if lead.Budget != nil {
		maxPrice := *lead.Budget * budgetToleranceFactor
		params.MaxPrice = &maxPrice
	}

	candidates, err := s.properties.ListCandidates(ctx, params)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		score, reasons := scoreProperty(lead, candidate)
		matches = append(matches, Match{
			Property: proptransport.ToPropertyResponse(candidate),
			Score:    score,
			Reasons:  reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	s.storeMatches(ctx, cacheKey, matches)
	return matches, nil
}

func (s *Service) matchCacheKey(lead leadrepo.Lead) string {
	return fmt.Sprintf("matches:%s:%d", lead.ID, lead.UpdatedAt.UnixNano())
}

func (s *Service) cachedMatches(ctx context.Context, key string) ([]Match, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("match cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var matches []Match
	if err := json.Unmarshal(payload, &matches); err != nil {
		s.log.Warn("match cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return matches, true
}

func (s *Service) storeMatches(ctx context.Context, key string, matches []Match) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(matches)
	if err != nil {
		s.log.Warn("match cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
		s.log.Warn("match cache write failed", "key", key, "error", err)
	}
}
