package domain

import (
	"testing"

	"imogest_backend/platform/apperr"
)

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, err := ParseStatus(string(status))
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", status, err)
		}
		if parsed != status {
			t.Fatalf("expected %q, got %q", status, parsed)
		}
	}

	if _, err := ParseStatus("archived"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestStatusPoints(t *testing.T) {
	cases := map[Status]int{
		StatusNew:         10,
		StatusContacted:   20,
		StatusQualified:   40,
		StatusProposal:    60,
		StatusNegotiation: 80,
		StatusWon:         100,
		StatusLost:        0,
	}
	for status, want := range cases {
		if got := status.Points(); got != want {
			t.Fatalf("expected %d points for %q, got %d", want, status, got)
		}
	}

	if Status("bogus").Points() != 0 {
		t.Fatalf("expected zero points for unknown status")
	}
}

func TestParseIntentDefaultsToBuyer(t *testing.T) {
	intent, err := ParseIntent("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent != IntentBuyer {
		t.Fatalf("expected empty intent to default to buyer, got %q", intent)
	}

	if _, err := ParseIntent("flipper"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown intent, got %v", err)
	}
}
