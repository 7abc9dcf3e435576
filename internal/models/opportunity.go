package models

import (
	"time"

	"github.com/google/uuid"
)

// Publish states for an opportunity. Transitions are free-form.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Levels an opportunity can target.
var Levels = []string{
	"Undergraduate",
	"Graduate",
	"Postgraduate",
	"Professional",
	"All Levels",
}

type Opportunity struct {
	ID              uuid.UUID  `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Organization    string     `json:"organization"`
	Location        string     `json:"location"`
	Country         string     `json:"country"`
	Level           string     `json:"level"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description"` // Full HTML description, sanitized on write
	Image           string     `json:"image"`
	ImageHint       string     `json:"imageHint"`
	ApplicationLink string     `json:"applicationLink"`
	Deadline        *time.Time `json:"deadline"`
	Category        []string   `json:"category"` // At least one member
	Industries      []string   `json:"industries"`
	Fields          []string   `json:"fields"`
	Tags            []string   `json:"tags"`
	Featured        bool       `json:"featured"`
	Trending        bool       `json:"trending"`
	Status          string     `json:"status"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsValidLevel reports whether level is one of the known values.
func IsValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}
