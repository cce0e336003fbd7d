package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	w, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != (Window{Days: 7}) {
		t.Fatalf("expected one week, got %+v", w)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	w, label, err := ParseWindow("1y 2months 10d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != (Window{Years: 1, Months: 2, Days: 10}) {
		t.Fatalf("unexpected window %+v", w)
	}
	if label != "1y2m1w3d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 30, 0, 0, time.Local)
	tests := []struct {
		w    Window
		want time.Time
	}{
		{Window{Days: 7}, time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local)},
		{Window{Months: 1}, time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)},
		{Window{Years: 1, Days: 10}, time.Date(2023, 2, 28, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		if got := tt.w.Since(now); !got.Equal(tt.want) {
			t.Errorf("%s: got %v want %v", tt.w, got, tt.want)
		}
	}
}
