package slug

import (
	"context"
	"errors"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Software Engineer", "software-engineer"},
		{"  Senior   Analyst  ", "senior-analyst"},
		{"C++ / Go Developer!", "c-go-developer"},
		{"Bourse d'Étude au Québec", "bourse-d-etude-au-quebec"},
		{"Jobs & Internships 2026", "jobs-internships-2026"},
		{"---Already---Hyphenated---", "already-hyphenated"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Software Engineer",
		"Bourse d'Étude au Québec",
		"UX  Designer (Remote)",
		"data-analyst-2",
	}

	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestUniqueSuffixing(t *testing.T) {
	existing := map[string]bool{
		"software-engineer":   true,
		"software-engineer-1": true,
	}
	taken := func(_ context.Context, s string) (bool, error) {
		return existing[s], nil
	}

	got, err := Unique(context.Background(), "software-engineer", taken)
	if err != nil {
		t.Fatal(err)
	}
	if got != "software-engineer-2" {
		t.Errorf("expected software-engineer-2, got %s", got)
	}

	got, err = Unique(context.Background(), "ux-designer", taken)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ux-designer" {
		t.Errorf("free base must be returned unchanged, got %s", got)
	}
}

func TestUniquePropagatesProbeError(t *testing.T) {
	probeErr := errors.New("store down")
	taken := func(_ context.Context, _ string) (bool, error) {
		return false, probeErr
	}

	if _, err := Unique(context.Background(), "anything", taken); !errors.Is(err, probeErr) {
		t.Errorf("expected wrapped probe error, got %v", err)
	}
}
