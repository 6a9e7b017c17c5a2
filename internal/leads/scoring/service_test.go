package scoring

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"imogest_backend/internal/leads/repository"
	"imogest_backend/platform/apperr"
	"imogest_backend/platform/logger"
)

type fakeRepo struct {
	lead     repository.Lead
	getErr   error
	writeErr error

	updatedID    uuid.UUID
	updatedScore int
	updates      int
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Lead, error) {
	return repository.Lead{}, nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return f.lead, f.getErr
}
func (f *fakeRepo) List(ctx context.Context, params repository.ListParams) ([]repository.Lead, int, error) {
	return nil, 0, nil
}
func (f *fakeRepo) Update(ctx context.Context, params repository.UpdateParams) (repository.Lead, error) {
	return repository.Lead{}, nil
}
func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repository.Lead, error) {
	return repository.Lead{}, nil
}
func (f *fakeRepo) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	f.updates++
	f.updatedID = id
	f.updatedScore = score
	return f.writeErr
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func fullLead() repository.Lead {
	return repository.Lead{
		ID:                 uuid.New(),
		Name:               "Rui Ferreira",
		Email:              strPtr("rui@example.com"),
		Phone:              strPtr("+351912345678"),
		Budget:             floatPtr(250000),
		LocationPreference: strPtr("Porto"),
		Intent:             "buyer",
		Status:             "qualified",
	}
}

func TestScoreLeadFullProfileWon(t *testing.T) {
	lead := fullLead()
	lead.Status = "won"

	// 10+10+15+15 completeness plus 100 stage points, clamped.
	score, factors := ScoreLead(lead)
	if score != 100 {
		t.Fatalf("expected clamped score 100, got %d", score)
	}
	if factors["stage"] != 100 {
		t.Fatalf("expected stage factor 100, got %v", factors)
	}
}

func TestScoreLeadEmptyProfileNew(t *testing.T) {
	lead := repository.Lead{ID: uuid.New(), Name: "Bare", Status: "new"}

	score, factors := ScoreLead(lead)
	if score != 10 {
		t.Fatalf("expected score 10 for a bare new lead, got %d", score)
	}
	if len(factors) != 1 {
		t.Fatalf("expected stage to be the only factor, got %v", factors)
	}
}

func TestScoreLeadLostStage(t *testing.T) {
	lead := fullLead()
	lead.Status = "lost"

	score, _ := ScoreLead(lead)
	if score != 50 {
		t.Fatalf("expected completeness-only score 50 for a lost lead, got %d", score)
	}
}

func TestScoreLeadEmptyStringsDoNotCount(t *testing.T) {
	lead := repository.Lead{
		ID:                 uuid.New(),
		Name:               "Blank",
		Email:              strPtr(""),
		Phone:              strPtr(""),
		LocationPreference: strPtr(""),
		Status:             "contacted",
	}

	score, _ := ScoreLead(lead)
	if score != 20 {
		t.Fatalf("expected empty strings to score as missing, got %d", score)
	}
}

func TestScoreLeadAlwaysInRange(t *testing.T) {
	statuses := []string{"new", "contacted", "qualified", "proposal", "negotiation", "won", "lost", "bogus"}
	for _, status := range statuses {
		lead := fullLead()
		lead.Status = status
		score, _ := ScoreLead(lead)
		if score < 0 || score > 100 {
			t.Fatalf("score out of range for status %q: %d", status, score)
		}
	}
}

func TestCalculateLeadScorePersists(t *testing.T) {
	repo := &fakeRepo{lead: fullLead()}
	svc := New(repo, nil, logger.New("test"))

	result := svc.CalculateLeadScore(context.Background(), repo.lead.ID)

	// 50 completeness + 40 qualified stage.
	if result.Score != 90 || !result.Persisted {
		t.Fatalf("expected persisted score 90, got %+v", result)
	}
	if repo.updates != 1 || repo.updatedScore != 90 {
		t.Fatalf("expected one score write of 90, got %d writes of %d", repo.updates, repo.updatedScore)
	}
	if repo.updatedID != repo.lead.ID {
		t.Fatalf("score written for the wrong lead")
	}
}

func TestCalculateLeadScoreLeadMissing(t *testing.T) {
	repo := &fakeRepo{getErr: apperr.NotFound("lead not found")}
	svc := New(repo, nil, logger.New("test"))

	result := svc.CalculateLeadScore(context.Background(), uuid.New())
	if result.Score != 0 || result.Persisted {
		t.Fatalf("expected zero unpersisted result, got %+v", result)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no write for a missing lead")
	}
}

func TestCalculateLeadScoreWriteFailure(t *testing.T) {
	repo := &fakeRepo{lead: fullLead(), writeErr: apperr.Internal("db down")}
	svc := New(repo, nil, logger.New("test"))

	result := svc.CalculateLeadScore(context.Background(), repo.lead.ID)
	if result.Score != 90 {
		t.Fatalf("expected computed score 90 despite write failure, got %d", result.Score)
	}
	if result.Persisted {
		t.Fatalf("expected Persisted=false after write failure")
	}
}
