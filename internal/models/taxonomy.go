package models

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyItem is the shared shape for categories, industries and fields.
// ParentID may reference another item in the same taxonomy; a dangling
// reference (parent deleted) is tolerated and rendered as an orphan.
type TaxonomyItem struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TagCount is a derived tag: a label appearing in one or more opportunity
// tag sets, with its usage count. Tags have no independent lifecycle.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
