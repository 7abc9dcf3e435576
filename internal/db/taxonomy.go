package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobsyde/jobsyde/internal/models"
	"github.com/jobsyde/jobsyde/internal/slug"
	"github.com/jobsyde/jobsyde/internal/taxonomy"
)

// The three classification dimensions share one table shape and one store.
const (
	TableCategories = "categories"
	TableIndustries = "industries"
	TableFields     = "fields"
)

var taxonomyTables = map[string]bool{
	TableCategories: true,
	TableIndustries: true,
	TableFields:     true,
}

type TaxonomyStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewTaxonomyStore builds a store over one of the whitelisted taxonomy
// tables. The table name is interpolated into SQL, hence the whitelist.
func NewTaxonomyStore(pool *pgxpool.Pool, table string) (*TaxonomyStore, error) {
	if !taxonomyTables[table] {
		return nil, fmt.Errorf("unknown taxonomy table %q", table)
	}
	return &TaxonomyStore{pool: pool, table: table}, nil
}

// TaxonomyInput carries the writable fields of an item.
type TaxonomyInput struct {
	Name        string
	ParentID    *uuid.UUID
	Description string
}

func (s *TaxonomyStore) List(ctx context.Context) ([]models.TaxonomyItem, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		"SELECT id, name, slug, parent_id, description, created_at FROM %s ORDER BY name", s.table))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var items []models.TaxonomyItem
	for rows.Next() {
		var it models.TaxonomyItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.ParentID, &it.Description, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	if items == nil {
		items = []models.TaxonomyItem{}
	}
	return items, nil
}

// DisplayOrder returns the grouped rendering order: roots with their
// children, orphans last.
func (s *TaxonomyStore) DisplayOrder(ctx context.Context) ([]taxonomy.Entry, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return taxonomy.DisplayOrder(items), nil
}

// Create derives the slug from the name. No suffix loop here: a
// duplicate name or slug fails at the uniqueness constraint and is
// surfaced as ErrDuplicate.
func (s *TaxonomyStore) Create(ctx context.Context, in TaxonomyInput) (*models.TaxonomyItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if in.ParentID != nil {
		if err := s.checkParent(ctx, uuid.Nil, *in.ParentID); err != nil {
			return nil, err
		}
	}

	item := models.TaxonomyItem{
		Name:        name,
		Slug:        slug.Make(name),
		ParentID:    in.ParentID,
		Description: strings.TrimSpace(in.Description),
	}
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, slug, parent_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, s.table),
		item.Name, item.Slug, item.ParentID, item.Description,
	).Scan(&item.ID, &item.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%q already exists: %w", name, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return &item, nil
}

// Update re-derives the slug whenever the name changes.
func (s *TaxonomyStore) Update(ctx context.Context, id uuid.UUID, in TaxonomyInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if in.ParentID != nil {
		if err := s.checkParent(ctx, id, *in.ParentID); err != nil {
			return err
		}
	}

	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET name = $1, slug = $2, parent_id = $3, description = $4 WHERE id = $5
	`, s.table),
		name, slug.Make(name), in.ParentID, strings.TrimSpace(in.Description), id,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%q already exists: %w", name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item. Children referencing it keep their dangling
// parent_id and render as orphans; they are neither cascade-deleted nor
// re-parented.
func (s *TaxonomyStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table), id)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// checkParent rejects self-parenting, unknown parents and parent cycles
// at write time over the current flat list.
func (s *TaxonomyStore) checkParent(ctx context.Context, id, parent uuid.UUID) error {
	if id != uuid.Nil && parent == id {
		return fmt.Errorf("item cannot be its own parent: %w", ErrInvalidParent)
	}

	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, it := range items {
		if it.ID == parent {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("parent does not exist: %w", ErrInvalidParent)
	}
	if id != uuid.Nil && taxonomy.WouldCycle(items, id, parent) {
		return fmt.Errorf("parent assignment would form a cycle: %w", ErrInvalidParent)
	}
	return nil
}
