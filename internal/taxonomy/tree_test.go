package taxonomy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jobsyde/jobsyde/internal/models"
)

func item(name string, parent *uuid.UUID) models.TaxonomyItem {
	return models.TaxonomyItem{ID: uuid.New(), Name: name, Slug: name, ParentID: parent}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Item.Name
	}
	return out
}

func TestDisplayOrderGroupsChildrenUnderParents(t *testing.T) {
	tech := item("Technology", nil)
	health := item("Healthcare", nil)
	software := item("Software", &tech.ID)
	ai := item("AI", &tech.ID)

	entries := DisplayOrder([]models.TaxonomyItem{software, tech, health, ai})

	want := []string{"Healthcare", "Technology", "AI", "Software"}
	got := names(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("display order = %v, want %v", got, want)
		}
	}
	if entries[2].Child != true || entries[3].Child != true {
		t.Error("children must be flagged as child rows")
	}
}

func TestDisplayOrderRendersOrphansLast(t *testing.T) {
	deleted := uuid.New()
	root := item("Engineering", nil)
	orphan := item("Biotech", &deleted)

	entries := DisplayOrder([]models.TaxonomyItem{orphan, root})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Item.Name != "Engineering" {
		t.Errorf("root must come first, got %s", entries[0].Item.Name)
	}
	last := entries[1]
	if last.Item.Name != "Biotech" || !last.Orphan || last.Child {
		t.Errorf("orphan must render as trailing top-level entry: %+v", last)
	}
}

func TestWouldCycle(t *testing.T) {
	a := item("A", nil)
	b := item("B", &a.ID)
	c := item("C", &b.ID)
	items := []models.TaxonomyItem{a, b, c}

	if !WouldCycle(items, a.ID, a.ID) {
		t.Error("self-parent must be a cycle")
	}
	if !WouldCycle(items, a.ID, c.ID) {
		t.Error("re-parenting A under C closes A->B->C->A")
	}
	if WouldCycle(items, c.ID, a.ID) {
		t.Error("C under A is already the ancestry direction, not a cycle")
	}

	// A dangling ancestor terminates the walk without a crash.
	dangling := uuid.New()
	b.ParentID = &dangling
	if WouldCycle([]models.TaxonomyItem{a, b, c}, a.ID, c.ID) {
		t.Error("walk over dangling parent must not report a cycle")
	}
}
