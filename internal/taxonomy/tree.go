// Package taxonomy implements read-time tree construction over flat
// taxonomy item lists. Items are kept as an arena-style flat collection
// with a parent reference; no nested structure is ever stored.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jobsyde/jobsyde/internal/models"
)

// Entry is one row of the grouped display ordering.
type Entry struct {
	Item   models.TaxonomyItem `json:"item"`
	Child  bool                `json:"child"`
	Orphan bool                `json:"orphan"` // parent_id points at a deleted item
}

// DisplayOrder produces the grouped ordering for a flat list: root items
// sorted alphabetically, each immediately followed by its direct children
// sorted alphabetically, then orphaned children as a trailing top-level
// group. Dangling parent references must never crash rendering.
func DisplayOrder(items []models.TaxonomyItem) []Entry {
	byID := make(map[uuid.UUID]models.TaxonomyItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var roots, orphans []models.TaxonomyItem
	children := make(map[uuid.UUID][]models.TaxonomyItem)
	for _, it := range items {
		switch {
		case it.ParentID == nil:
			roots = append(roots, it)
		default:
			if _, ok := byID[*it.ParentID]; ok {
				children[*it.ParentID] = append(children[*it.ParentID], it)
			} else {
				orphans = append(orphans, it)
			}
		}
	}

	sortByName(roots)
	sortByName(orphans)

	entries := make([]Entry, 0, len(items))
	for _, root := range roots {
		entries = append(entries, Entry{Item: root})
		kids := children[root.ID]
		sortByName(kids)
		for _, kid := range kids {
			entries = append(entries, Entry{Item: kid, Child: true})
		}
	}
	for _, orphan := range orphans {
		entries = append(entries, Entry{Item: orphan, Orphan: true})
	}

	return entries
}

func sortByName(items []models.TaxonomyItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// WouldCycle reports whether re-parenting item id under parent would
// close a cycle (including the self-parent case). It walks the ancestor
// chain from parent over the flat list; dangling references terminate
// the walk, and a visited set guards against pre-existing cycles.
func WouldCycle(items []models.TaxonomyItem, id, parent uuid.UUID) bool {
	if id == parent {
		return true
	}

	parents := make(map[uuid.UUID]*uuid.UUID, len(items))
	for _, it := range items {
		parents[it.ID] = it.ParentID
	}

	visited := map[uuid.UUID]bool{}
	cur := parent
	for {
		if cur == id {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true

		next, ok := parents[cur]
		if !ok || next == nil {
			return false
		}
		cur = *next
	}
}
