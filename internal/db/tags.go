package db

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/jobsyde/jobsyde/internal/models"
)

// ListTags computes the derived tag set: every label appearing in an
// opportunity's tags, with its usage count, ordered by count descending
// then name. Tags are never stored independently.
func (s *Store) ListTags(ctx context.Context) ([]models.TagCount, error) {
	rows, err := s.pool.Query(ctx, "SELECT tags FROM opportunities")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var tags []string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		for _, tag := range tags {
			if tag != "" {
				counts[tag]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	out := make([]models.TagCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.TagCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// DeleteTag removes the label from every opportunity's tag set, leaving
// all other tags untouched. The read-then-per-record-update sequence is
// intentionally non-transactional; individual update failures are
// logged and skipped so one bad row never aborts the fan-out.
func (s *Store) DeleteTag(ctx context.Context, name string) error {
	rows, err := s.pool.Query(ctx,
		"SELECT id, tags FROM opportunities WHERE tags @> $1", []string{name})
	if err != nil {
		return fmt.Errorf("failed to find opportunities with tag: %w", err)
	}

	type tagged struct {
		id   uuid.UUID
		tags []string
	}
	var affected []tagged
	for rows.Next() {
		var t tagged
		if err := rows.Scan(&t.id, &t.tags); err != nil {
			rows.Close()
			return fmt.Errorf("scan failed: %w", err)
		}
		affected = append(affected, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration failed: %w", err)
	}

	for _, t := range affected {
		remaining := removeTag(t.tags, name)
		if _, err := s.pool.Exec(ctx,
			"UPDATE opportunities SET tags = $1 WHERE id = $2", remaining, t.id); err != nil {
			log.Printf("failed to remove tag %q from opportunity %s: %v", name, t.id, err)
		}
	}
	return nil
}

func removeTag(tags []string, name string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}
