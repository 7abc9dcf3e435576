package api

import (
	"testing"

	"github.com/jobsyde/jobsyde/internal/models"
)

func TestValidateOpportunity_RequiredFields(t *testing.T) {
	problems := validateOpportunity(models.Opportunity{})
	for _, field := range []string{"title", "organization", "summary", "category"} {
		if _, ok := problems[field]; !ok {
			t.Errorf("expected a problem for %q, got %v", field, problems)
		}
	}
}

func TestValidateOpportunity_ApplicationLink(t *testing.T) {
	base := models.Opportunity{
		Title:        "Software Engineer",
		Organization: "Acme",
		Summary:      "Build things.",
		Category:     []string{"Jobs"},
	}

	tests := []struct {
		name string
		link string
		ok   bool
	}{
		{"https link", "https://acme.example/jobs/1", true},
		{"http link", "http://acme.example/jobs/1", true},
		{"empty is allowed", "", true},
		{"javascript scheme", "javascript:alert(1)", false},
		{"missing host", "https://", false},
		{"bare text", "apply by email", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base
			o.ApplicationLink = tt.link
			problems := validateOpportunity(o)
			_, flagged := problems["applicationLink"]
			if tt.ok && flagged {
				t.Errorf("link %q flagged: %v", tt.link, problems["applicationLink"])
			}
			if !tt.ok && !flagged {
				t.Errorf("link %q not flagged", tt.link)
			}
		})
	}
}

func TestValidateOpportunity_LevelAndStatus(t *testing.T) {
	o := models.Opportunity{
		Title:        "Scholarship",
		Organization: "Acme",
		Summary:      "Study support.",
		Category:     []string{"Scholarships"},
		Level:        "Expert",
		Status:       "archived",
	}
	problems := validateOpportunity(o)
	if _, ok := problems["level"]; !ok {
		t.Errorf("unknown level not flagged: %v", problems)
	}
	if _, ok := problems["status"]; !ok {
		t.Errorf("unknown status not flagged: %v", problems)
	}
}

func TestOpportunityRequestToModel_Deadline(t *testing.T) {
	req := opportunityRequest{Title: "X", Deadline: "2026-11-30"}
	o, err := req.toModel()
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if o.Deadline == nil || o.Deadline.Format("2006-01-02") != "2026-11-30" {
		t.Errorf("deadline = %v", o.Deadline)
	}

	req.Deadline = "30/11/2026"
	if _, err := req.toModel(); err == nil {
		t.Error("expected error for non-ISO deadline")
	}

	req.Deadline = ""
	o, err = req.toModel()
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if o.Deadline != nil {
		t.Errorf("empty deadline should stay nil, got %v", o.Deadline)
	}
}

func TestOpportunityRequestToModel_TagsSplit(t *testing.T) {
	req := opportunityRequest{Title: "X", Tags: "remote, paid,\nremote, engineering"}
	o, err := req.toModel()
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	want := []string{"remote", "paid", "engineering"}
	if len(o.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", o.Tags, want)
	}
	for i := range want {
		if o.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, o.Tags[i], want[i])
		}
	}
}
