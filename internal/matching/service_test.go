package matching

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	leadrepo "imogest_backend/internal/leads/repository"
	proprepo "imogest_backend/internal/properties/repository"
	"imogest_backend/platform/apperr"
	"imogest_backend/platform/logger"
)

type fakeLeadRepo struct {
	lead leadrepo.Lead
	err  error
}

func (f *fakeLeadRepo) Create(ctx context.Context, params leadrepo.CreateParams) (leadrepo.Lead, error) {
	return leadrepo.Lead{}, nil
}
func (f *fakeLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (leadrepo.Lead, error) {
	return f.lead, f.err
}
func (f *fakeLeadRepo) List(ctx context.Context, params leadrepo.ListParams) ([]leadrepo.Lead, int, error) {
	return nil, 0, nil
}
func (f *fakeLeadRepo) Update(ctx context.Context, params leadrepo.UpdateParams) (leadrepo.Lead, error) {
	return leadrepo.Lead{}, nil
}
func (f *fakeLeadRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeLeadRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (leadrepo.Lead, error) {
	return leadrepo.Lead{}, nil
}
func (f *fakeLeadRepo) UpdateScore(ctx context.Context, id uuid.UUID, score int) error { return nil }

type fakePropertyRepo struct {
	candidates []proprepo.Property
	calls      int
	lastParams proprepo.CandidateParams
}

func (f *fakePropertyRepo) Create(ctx context.Context, params proprepo.CreateParams) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) List(ctx context.Context, params proprepo.ListParams) ([]proprepo.Property, int, error) {
	return nil, 0, nil
}
func (f *fakePropertyRepo) Update(ctx context.Context, params proprepo.UpdateParams) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakePropertyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) AddPhotoKey(ctx context.Context, id uuid.UUID, key string) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) RemovePhotoKey(ctx context.Context, id uuid.UUID, key string) (proprepo.Property, error) {
	return proprepo.Property{}, nil
}
func (f *fakePropertyRepo) ListCandidates(ctx context.Context, params proprepo.CandidateParams) ([]proprepo.Property, error) {
	f.calls++
	f.lastParams = params
	return f.candidates, nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testLead() leadrepo.Lead {
	return leadrepo.Lead{
		ID:                 uuid.New(),
		Name:               "Ana Costa",
		Budget:             floatPtr(200000),
		LocationPreference: strPtr("Lisboa"),
		PropertyType:       strPtr("house"),
		Intent:             "buyer",
		UpdatedAt:          time.Now(),
	}
}

func testProperty(price float64, location, propertyType string) proprepo.Property {
	return proprepo.Property{
		ID:           uuid.New(),
		Title:        "Listing",
		Price:        price,
		City:         "Lisboa",
		Location:     location,
		PropertyType: propertyType,
		Status:       "available",
	}
}

func TestScorePropertyFullMatch(t *testing.T) {
	lead := testLead()
	property := testProperty(180000, "Lisboa, Benfica", "house")

	score, reasons := scoreProperty(lead, property)

	// 40 budget + 30 location + 30 type + 10 buyer/house bonus, clamped.
	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if len(reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", reasons)
	}
}

func TestScorePropertyBudgetStretch(t *testing.T) {
	lead := testLead()
	lead.PropertyType = strPtr("apartment")

	property := testProperty(210000, "Porto", "house")

	score, _ := scoreProperty(lead, property)

	// 210000 is within 110% of 200000, nothing else matches.
	if score != 30 {
		t.Fatalf("expected score 30, got %d", score)
	}
}

func TestScorePropertyNoPreferences(t *testing.T) {
	lead := leadrepo.Lead{ID: uuid.New(), Name: "Empty", Intent: "buyer"}
	property := testProperty(100000, "Faro", "apartment")

	score, reasons := scoreProperty(lead, property)
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
	if len(reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", reasons)
	}
}

func TestScorePropertyCaseSensitiveLocation(t *testing.T) {
	lead := testLead()
	lead.Budget = nil
	lead.PropertyType = nil

	property := testProperty(100000, "lisboa, benfica", "house")

	score, _ := scoreProperty(lead, property)
	if score != 0 {
		t.Fatalf("expected no location points for case mismatch, got %d", score)
	}
}

func TestFindMatchesForLeadRanking(t *testing.T) {
	lead := testLead()
	leads := &fakeLeadRepo{lead: lead}
	properties := &fakePropertyRepo{candidates: []proprepo.Property{
		testProperty(210000, "Porto", "apartment"),
		testProperty(150000, "Lisboa, Alvalade", "house"),
		testProperty(190000, "Coimbra", "house"),
	}}

	svc := New(leads, properties, nil, logger.New("test"))

	matches, err := svc.FindMatchesForLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	// Full match first, then type match, then stretch-budget only.
	if matches[0].Score != 100 || matches[0].Property.Location != "Lisboa, Alvalade" {
		t.Fatalf("expected full match first, got %+v", matches[0])
	}
	if matches[1].Score != 80 || matches[1].Property.Location != "Coimbra" {
		t.Fatalf("expected type match second, got %+v", matches[1])
	}
	if matches[2].Score != 30 {
		t.Fatalf("expected stretch-budget match last, got %+v", matches[2])
	}

	if properties.lastParams.MaxPrice == nil || *properties.lastParams.MaxPrice != 240000 {
		t.Fatalf("expected candidate price cap 240000, got %+v", properties.lastParams.MaxPrice)
	}
	if properties.lastParams.Limit != candidateLimit {
		t.Fatalf("expected candidate limit %d, got %d", candidateLimit, properties.lastParams.Limit)
	}
}

func TestFindMatchesForLeadStableOrderOnTies(t *testing.T) {
	lead := testLead()
	lead.Budget = nil
	lead.LocationPreference = nil

	first := testProperty(100000, "A", "house")
	second := testProperty(120000, "B", "house")

	leads := &fakeLeadRepo{lead: lead}
	properties := &fakePropertyRepo{candidates: []proprepo.Property{first, second}}

	svc := New(leads, properties, nil, logger.New("test"))

	matches, err := svc.FindMatchesForLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches[0].Property.ID != first.ID || matches[1].Property.ID != second.ID {
		t.Fatalf("expected candidate order preserved on equal scores")
	}
}

func TestFindMatchesForLeadNotFound(t *testing.T) {
	leads := &fakeLeadRepo{err: apperr.NotFound("lead not found")}
	properties := &fakePropertyRepo{}

	svc := New(leads, properties, nil, logger.New("test"))

	_, err := svc.FindMatchesForLead(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if properties.calls != 0 {
		t.Fatalf("expected no candidate query after lead lookup failure")
	}
}

func TestFindMatchesForLeadUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	lead := testLead()
	leads := &fakeLeadRepo{lead: lead}
	properties := &fakePropertyRepo{candidates: []proprepo.Property{
		testProperty(150000, "Lisboa", "house"),
	}}

	svc := New(leads, properties, cache, logger.New("test"))
	ctx := context.Background()

	first, err := svc.FindMatchesForLead(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.FindMatchesForLead(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if properties.calls != 1 {
		t.Fatalf("expected single candidate query, got %d", properties.calls)
	}
	if len(first) != len(second) || first[0].Score != second[0].Score {
		t.Fatalf("expected cached result to equal computed result")
	}
}

func TestFindMatchesForLeadCacheInvalidatedOnUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	lead := testLead()
	leads := &fakeLeadRepo{lead: lead}
	properties := &fakePropertyRepo{candidates: []proprepo.Property{
		testProperty(150000, "Lisboa", "house"),
	}}

	svc := New(leads, properties, cache, logger.New("test"))
	ctx := context.Background()

	if _, err := svc.FindMatchesForLead(ctx, lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leads.lead.UpdatedAt = lead.UpdatedAt.Add(time.Minute)

	if _, err := svc.FindMatchesForLead(ctx, lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if properties.calls != 2 {
		t.Fatalf("expected recompute after lead update, got %d calls", properties.calls)
	}
}

func TestFindMatchesForLeadCacheDownIsBypassed(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	mr.Close()

	lead := testLead()
	leads := &fakeLeadRepo{lead: lead}
	properties := &fakePropertyRepo{candidates: []proprepo.Property{
		testProperty(150000, "Lisboa", "house"),
	}}

	svc := New(leads, properties, cache, logger.New("test"))

	matches, err := svc.FindMatchesForLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("expected cache failure to be bypassed, got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}
