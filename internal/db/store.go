package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/microcosm-cc/bluemonday"

	"github.com/jobsyde/jobsyde/internal/models"
	"github.com/jobsyde/jobsyde/internal/slug"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Filters are the optional public listing criteria. A zero/"all" value
// means "no constraint" for that field. All provided filters combine
// conjunctively; Query is applied in-process after the store query.
type Filters struct {
	Category string
	Location string
	Country  string
	Level    string
	Industry string
	Field    string
	Query    string
	Featured *bool
	Trending *bool
	Limit    int
	Offset   int
}

const oppCols = `id, slug, title, organization, location, country, level,
	summary, description, image, image_hint, application_link, deadline,
	category, industries, fields, tags, featured, trending, status,
	meta_title, meta_description, created_at`

var descriptionPolicy = bluemonday.UGCPolicy()

func scanOpportunity(scan func(dest ...interface{}) error) (models.Opportunity, error) {
	var o models.Opportunity
	err := scan(
		&o.ID, &o.Slug, &o.Title, &o.Organization, &o.Location, &o.Country, &o.Level,
		&o.Summary, &o.Description, &o.Image, &o.ImageHint, &o.ApplicationLink, &o.Deadline,
		&o.Category, &o.Industries, &o.Fields, &o.Tags, &o.Featured, &o.Trending, &o.Status,
		&o.MetaTitle, &o.MetaDescription, &o.CreatedAt,
	)
	return o, err
}

// buildListWhere translates filters into a WHERE clause. Multi-valued
// columns use containment (the posting's set must contain the value),
// scalar columns use equality; published-only always applies.
func buildListWhere(f Filters) (string, []interface{}) {
	where := "WHERE status = 'published'"
	var args []interface{}
	argIdx := 1

	if hasFilter(f.Category) {
		where += fmt.Sprintf(" AND category @> $%d", argIdx)
		args = append(args, []string{f.Category})
		argIdx++
	}
	if hasFilter(f.Industry) {
		where += fmt.Sprintf(" AND industries @> $%d", argIdx)
		args = append(args, []string{f.Industry})
		argIdx++
	}
	if hasFilter(f.Field) {
		where += fmt.Sprintf(" AND fields @> $%d", argIdx)
		args = append(args, []string{f.Field})
		argIdx++
	}
	if hasFilter(f.Location) {
		where += fmt.Sprintf(" AND location = $%d", argIdx)
		args = append(args, f.Location)
		argIdx++
	}
	if hasFilter(f.Level) {
		where += fmt.Sprintf(" AND level = $%d", argIdx)
		args = append(args, f.Level)
		argIdx++
	}
	if hasFilter(f.Country) {
		where += fmt.Sprintf(" AND country = $%d", argIdx)
		args = append(args, f.Country)
		argIdx++
	}
	if f.Featured != nil {
		where += fmt.Sprintf(" AND featured = $%d", argIdx)
		args = append(args, *f.Featured)
		argIdx++
	}
	if f.Trending != nil {
		where += fmt.Sprintf(" AND trending = $%d", argIdx)
		args = append(args, *f.Trending)
	}

	return where, args
}

func hasFilter(v string) bool {
	return v != "" && v != "all"
}

// matchesQuery is the in-process free-text pass: case-insensitive
// substring over title, summary and organization (OR).
func matchesQuery(o models.Opportunity, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(o.Title), q) ||
		strings.Contains(strings.ToLower(o.Summary), q) ||
		strings.Contains(strings.ToLower(o.Organization), q)
}

func applyQueryFilter(opps []models.Opportunity, q string) []models.Opportunity {
	q = strings.TrimSpace(q)
	if q == "" {
		return opps
	}
	matched := make([]models.Opportunity, 0, len(opps))
	for _, o := range opps {
		if matchesQuery(o, q) {
			matched = append(matched, o)
		}
	}
	return matched
}

// ListOpportunities returns published postings matching the filters,
// ordered by deadline descending so longer-lived opportunities surface
// first. Free-text search and pagination run after the store query so
// the two compose correctly.
func (s *Store) ListOpportunities(ctx context.Context, f Filters) ([]models.Opportunity, error) {
	where, args := buildListWhere(f)
	sql := fmt.Sprintf(
		"SELECT %s FROM opportunities %s ORDER BY deadline DESC NULLS LAST, created_at DESC",
		oppCols, where,
	)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	opps = applyQueryFilter(opps, f.Query)
	opps = paginate(opps, f.Limit, f.Offset)
	if opps == nil {
		opps = []models.Opportunity{}
	}
	return opps, nil
}

func paginate(opps []models.Opportunity, limit, offset int) []models.Opportunity {
	if offset > 0 {
		if offset >= len(opps) {
			return []models.Opportunity{}
		}
		opps = opps[offset:]
	}
	if limit > 0 && limit < len(opps) {
		opps = opps[:limit]
	}
	return opps
}

// ListAllOpportunities returns every posting regardless of status,
// newest first. Admin index view.
func (s *Store) ListAllOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	sql := fmt.Sprintf("SELECT %s FROM opportunities ORDER BY created_at DESC", oppCols)
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	if opps == nil {
		opps = []models.Opportunity{}
	}
	return opps, nil
}

func (s *Store) GetOpportunityBySlug(ctx context.Context, slugVal string) (*models.Opportunity, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM opportunities WHERE slug = $1", oppCols), slugVal)
	o, err := scanOpportunity(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get by slug failed: %w", err)
	}
	return &o, nil
}

func (s *Store) GetOpportunity(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM opportunities WHERE id = $1", oppCols), id)
	o, err := scanOpportunity(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get by id failed: %w", err)
	}
	return &o, nil
}

func (s *Store) slugTaken(ctx context.Context, candidate string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM opportunities WHERE slug = $1)", candidate).Scan(&exists)
	return exists, err
}

// CreateOpportunity normalizes the posting, resolves a unique slug via
// the probe-and-suffix loop and inserts it. A constraint violation is
// surfaced as ErrDuplicate.
func (s *Store) CreateOpportunity(ctx context.Context, o models.Opportunity) (*models.Opportunity, error) {
	normalizeOpportunity(&o)

	base := o.Slug
	if base == "" {
		base = slug.Make(o.Title)
	}
	unique, err := slug.Unique(ctx, base, s.slugTaken)
	if err != nil {
		return nil, err
	}
	o.Slug = unique

	err = s.pool.QueryRow(ctx, `
		INSERT INTO opportunities (
			slug, title, organization, location, country, level,
			summary, description, image, image_hint, application_link, deadline,
			category, industries, fields, tags, featured, trending, status,
			meta_title, meta_description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at
	`,
		o.Slug, o.Title, o.Organization, o.Location, o.Country, o.Level,
		o.Summary, o.Description, o.Image, o.ImageHint, o.ApplicationLink, o.Deadline,
		o.Category, o.Industries, o.Fields, o.Tags, o.Featured, o.Trending, o.Status,
		o.MetaTitle, o.MetaDescription,
	).Scan(&o.ID, &o.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("failed to create opportunity: %w", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return &o, nil
}

// UpdateOpportunity applies the same normalization as create but takes
// the slug as given; uniqueness is only re-resolved when the caller
// changes it explicitly (by sending a different value).
func (s *Store) UpdateOpportunity(ctx context.Context, id uuid.UUID, o models.Opportunity) error {
	normalizeOpportunity(&o)
	if o.Slug == "" {
		o.Slug = slug.Make(o.Title)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE opportunities SET
			slug = $1, title = $2, organization = $3, location = $4, country = $5, level = $6,
			summary = $7, description = $8, image = $9, image_hint = $10, application_link = $11,
			deadline = $12, category = $13, industries = $14, fields = $15, tags = $16,
			featured = $17, trending = $18, status = $19, meta_title = $20, meta_description = $21
		WHERE id = $22
	`,
		o.Slug, o.Title, o.Organization, o.Location, o.Country, o.Level,
		o.Summary, o.Description, o.Image, o.ImageHint, o.ApplicationLink,
		o.Deadline, o.Category, o.Industries, o.Fields, o.Tags,
		o.Featured, o.Trending, o.Status, o.MetaTitle, o.MetaDescription, id,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to update opportunity: %w", ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOpportunity removes the record. Associated image cleanup is the
// caller's best-effort concern and never blocks this delete.
func (s *Store) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM opportunities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeOpportunity(o *models.Opportunity) {
	o.Title = strings.TrimSpace(o.Title)
	o.Organization = strings.TrimSpace(o.Organization)
	o.Location = strings.TrimSpace(o.Location)
	o.Country = strings.TrimSpace(o.Country)
	o.Summary = strings.TrimSpace(o.Summary)
	o.Description = descriptionPolicy.Sanitize(o.Description)
	o.Category = SplitClean(o.Category...)
	o.Industries = SplitClean(o.Industries...)
	o.Fields = SplitClean(o.Fields...)
	o.Tags = SplitClean(o.Tags...)
	if o.Status == "" {
		o.Status = models.StatusDraft
	}
}

// SplitClean normalizes comma/newline-delimited values into a trimmed,
// de-duplicated set, discarding empty entries. Accepts already-split
// slices as well as raw delimited strings.
func SplitClean(values ...string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range values {
		v = strings.ReplaceAll(v, "\r\n", "\n")
		v = strings.ReplaceAll(v, "\n", ",")
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}
