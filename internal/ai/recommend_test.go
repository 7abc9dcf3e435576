package ai

import (
	"testing"

	"github.com/jobsyde/jobsyde/internal/models"
)

func TestMatchRecommendations(t *testing.T) {
	candidates := []models.Opportunity{
		{Title: "Data Analyst"},
		{Title: "UX Designer"},
	}

	got := MatchRecommendations("Here you go:\n- Data Analyst\n", candidates)
	if len(got) != 1 || got[0].Title != "Data Analyst" {
		t.Fatalf("expected exactly the Data Analyst candidate, got %v", got)
	}
}

func TestMatchRecommendationsMultipleAndMisses(t *testing.T) {
	candidates := []models.Opportunity{
		{Title: "Senior Data Analyst"},
		{Title: "UX Designer"},
		{Title: "Nurse"},
	}

	got := MatchRecommendations("- Data Analyst\n* UX Designer", candidates)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), got)
	}
	// Substring containment: "Senior Data Analyst" contains "Data Analyst".
	if got[0].Title != "Senior Data Analyst" || got[1].Title != "UX Designer" {
		t.Errorf("unexpected matches: %v", got)
	}
}

func TestMatchRecommendationsEmptyResponse(t *testing.T) {
	candidates := []models.Opportunity{{Title: "Data Analyst"}}

	if got := MatchRecommendations("", candidates); len(got) != 0 {
		t.Errorf("empty response must match nothing, got %v", got)
	}
	if got := MatchRecommendations("\n  \n", candidates); len(got) != 0 {
		t.Errorf("blank lines must not match everything, got %v", got)
	}
}

func TestRecommendationLines(t *testing.T) {
	lines := recommendationLines("- First Title\n* Second Title\nThird Title\n\n")
	want := []string{"First Title", "Second Title", "Third Title"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lines)
		}
	}
}
