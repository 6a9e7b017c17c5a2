package service

import (
	"testing"
	"time"
)

func TestRemindAt(t *testing.T) {
	due := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)

	got := RemindAt(due, 30*time.Minute)
	want := time.Date(2026, 9, 15, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected reminder at %v, got %v", want, got)
	}

	if !RemindAt(due, 0).IsZero() {
		t.Fatalf("expected no reminder for zero offset")
	}
	if !RemindAt(due, -time.Minute).IsZero() {
		t.Fatalf("expected no reminder for negative offset")
	}
}
