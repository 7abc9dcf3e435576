package db

import (
	"strings"
	"testing"

	"github.com/jobsyde/jobsyde/internal/models"
)

func TestBuildListWhere_AlwaysPublishedOnly(t *testing.T) {
	where, args := buildListWhere(Filters{})

	if !strings.Contains(where, "status = 'published'") {
		t.Fatalf("listing must always constrain to published: %s", where)
	}
	if len(args) != 0 {
		t.Fatalf("no filters must produce no args, got %v", args)
	}

	// Even a fully loaded filter set keeps the published constraint.
	where, _ = buildListWhere(Filters{Category: "Jobs", Level: "Graduate"})
	if !strings.Contains(where, "status = 'published'") {
		t.Fatalf("filters must not displace the published constraint: %s", where)
	}
}

func TestBuildListWhere_ContainmentVsEquality(t *testing.T) {
	where, args := buildListWhere(Filters{
		Category: "Internships",
		Industry: "Technology",
		Field:    "Data Science",
		Location: "Remote",
		Level:    "Graduate",
		Country:  "Kenya",
	})

	for _, token := range []string{"category @>", "industries @>", "fields @>"} {
		if !strings.Contains(where, token) {
			t.Errorf("multi-valued columns must use containment, missing %q in %s", token, where)
		}
	}
	for _, token := range []string{"location =", "level =", "country ="} {
		if !strings.Contains(where, token) {
			t.Errorf("scalar columns must use equality, missing %q in %s", token, where)
		}
	}
	if len(args) != 6 {
		t.Errorf("expected 6 args, got %d", len(args))
	}
	if cat, ok := args[0].([]string); !ok || len(cat) != 1 || cat[0] != "Internships" {
		t.Errorf("containment arg must be a single-element set, got %v", args[0])
	}
}

func TestBuildListWhere_AllMeansNoConstraint(t *testing.T) {
	where, args := buildListWhere(Filters{Category: "all", Location: "all", Level: ""})

	if strings.Contains(where, "category") || strings.Contains(where, "location") || strings.Contains(where, "level") {
		t.Errorf("'all' and empty filters must add no constraint: %s", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestApplyQueryFilter(t *testing.T) {
	opps := []models.Opportunity{
		{Title: "Software Engineer", Summary: "Build services", Organization: "Acme"},
		{Title: "Nurse", Summary: "Hospital role", Organization: "MedCorp"},
		{Title: "Teacher", Summary: "Software skills a plus", Organization: "School"},
	}

	got := applyQueryFilter(opps, "software")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches across title/summary, got %d", len(got))
	}

	got = applyQueryFilter(opps, "MEDCORP")
	if len(got) != 1 || got[0].Title != "Nurse" {
		t.Fatalf("organization match must be case-insensitive, got %v", got)
	}

	if got := applyQueryFilter(opps, "  "); len(got) != 3 {
		t.Fatalf("blank query must not filter, got %d", len(got))
	}
}

func TestPaginate(t *testing.T) {
	opps := make([]models.Opportunity, 5)
	for i := range opps {
		opps[i].Title = strings.Repeat("x", i+1)
	}

	if got := paginate(opps, 2, 0); len(got) != 2 {
		t.Errorf("limit 2 should return 2, got %d", len(got))
	}
	if got := paginate(opps, 0, 3); len(got) != 2 {
		t.Errorf("offset 3 over 5 should return 2, got %d", len(got))
	}
	if got := paginate(opps, 10, 99); len(got) != 0 {
		t.Errorf("offset past end should return empty, got %d", len(got))
	}
	if got := paginate(opps, 0, 0); len(got) != 5 {
		t.Errorf("no pagination should pass through, got %d", len(got))
	}
}

func TestSplitClean(t *testing.T) {
	got := SplitClean("remote, scholarship,\nfully-funded,, remote ")
	want := []string{"remote", "scholarship", "fully-funded"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if got := SplitClean("Jobs", "Internships"); len(got) != 2 {
		t.Errorf("already-split values must pass through, got %v", got)
	}
	if got := SplitClean(); len(got) != 0 {
		t.Errorf("empty input must yield empty set, got %v", got)
	}
}

func TestRemoveTag(t *testing.T) {
	got := removeTag([]string{"Remote", "Visa Sponsorship", "Remote Work"}, "Remote")
	if len(got) != 2 || got[0] != "Visa Sponsorship" || got[1] != "Remote Work" {
		t.Errorf("only the exact tag must be removed, got %v", got)
	}
}
