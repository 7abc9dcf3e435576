package api

import (
	"context"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobsyde/jobsyde/internal/db"
	"github.com/jobsyde/jobsyde/internal/htmltext"
	"github.com/jobsyde/jobsyde/internal/models"
)

func (s *Server) handleListOpportunities(c echo.Context) error {
	f := db.Filters{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Country:  c.QueryParam("country"),
		Level:    c.QueryParam("level"),
		Industry: c.QueryParam("industry"),
		Field:    c.QueryParam("field"),
		Query:    c.QueryParam("q"),
	}

	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		f.Limit = l
	}
	if o, err := strconv.Atoi(c.QueryParam("offset")); err == nil && o >= 0 {
		f.Offset = o
	}
	if v := c.QueryParam("featured"); v != "" {
		val := v == "true"
		f.Featured = &val
	}
	if v := c.QueryParam("trending"); v != "" {
		val := v == "true"
		f.Trending = &val
	}

	opps, err := s.Store.ListOpportunities(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("Failed to list opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, opps)
}

// seoMeta is the per-posting <head> payload. The description falls back
// to plain text extracted from the HTML body when no explicit meta
// description was set.
type seoMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type opportunityDetail struct {
	Opportunity models.Opportunity     `json:"opportunity"`
	SEO         seoMeta                `json:"seo"`
	JSONLD      map[string]interface{} `json:"jsonLd"`
}

func (s *Server) handleGetOpportunity(c echo.Context) error {
	opp, err := s.Store.GetOpportunityBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if err == db.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		c.Logger().Errorf("Failed to get opportunity: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, opportunityDetail{
		Opportunity: *opp,
		SEO:         s.seoFor(opp),
		JSONLD:      s.jobPostingLD(opp),
	})
}

func (s *Server) seoFor(o *models.Opportunity) seoMeta {
	title := o.MetaTitle
	if title == "" {
		title = o.Title + " | " + s.Site.Site.Name
	}
	desc := o.MetaDescription
	if desc == "" {
		desc = o.Summary
	}
	if desc == "" {
		desc = htmltext.Text(o.Description)
	}
	return seoMeta{Title: title, Description: htmltext.Truncate(desc, 160)}
}

// jobPostingLD renders the schema.org JobPosting structured data block.
func (s *Server) jobPostingLD(o *models.Opportunity) map[string]interface{} {
	ld := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "JobPosting",
		"title":       o.Title,
		"description": htmltext.Text(o.Description),
		"datePosted":  o.CreatedAt.Format("2006-01-02"),
		"url":         s.Site.Site.BaseURL + "/opportunity/" + o.Slug,
		"hiringOrganization": map[string]interface{}{
			"@type": "Organization",
			"name":  o.Organization,
		},
		"jobLocation": map[string]interface{}{
			"@type": "Place",
			"address": map[string]interface{}{
				"@type":           "PostalAddress",
				"addressLocality": o.Location,
				"addressCountry":  o.Country,
			},
		},
	}
	if o.Deadline != nil {
		ld["validThrough"] = o.Deadline.Format("2006-01-02")
	}
	if o.ApplicationLink != "" {
		ld["directApply"] = true
		ld["applicationContact"] = map[string]interface{}{
			"@type": "ContactPoint",
			"url":   o.ApplicationLink,
		}
	}
	if len(o.Category) > 0 {
		ld["occupationalCategory"] = strings.Join(o.Category, ", ")
	}
	return ld
}

// handleTaxonomyList serves a classification dimension. The default view
// is the flat alphabetical list; ?view=grouped returns the display
// ordering with children under their parents and orphans last.
func (s *Server) handleTaxonomyList(store func() *db.TaxonomyStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam("view") == "grouped" {
			entries, err := store().DisplayOrder(c.Request().Context())
			if err != nil {
				c.Logger().Errorf("Failed to list taxonomy: %v", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
			}
			return c.JSON(http.StatusOK, entries)
		}

		items, err := store().List(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("Failed to list taxonomy: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		}
		return c.JSON(http.StatusOK, items)
	}
}

func (s *Server) handleListTags(c echo.Context) error {
	tags, err := s.Store.ListTags(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list tags: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) handleListLevels(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Levels)
}

func (s *Server) handleNewsletterSubscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A valid email address is required"})
	}

	if err := s.Store.Subscribe(c.Request().Context(), addr.Address); err != nil {
		c.Logger().Errorf("Failed to subscribe: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Subscribed"})
}

func (s *Server) handleAISummary(c echo.Context) error {
	var req struct {
		Details string `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if strings.TrimSpace(req.Details) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "details is required"})
	}

	// The model works on plain text; strip any HTML the caller pasted in.
	details := htmltext.Text(req.Details)

	aiCtx, cancel := context.WithTimeout(c.Request().Context(), 45*time.Second)
	defer cancel()

	summary := s.AI.SummarizeOpportunity(aiCtx, details)
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleAIRecommendations(c echo.Context) error {
	var req struct {
		Profile string `json:"profile"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if strings.TrimSpace(req.Profile) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "profile is required"})
	}

	candidates, err := s.Store.ListOpportunities(c.Request().Context(), db.Filters{})
	if err != nil {
		c.Logger().Errorf("Failed to list candidates: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	aiCtx, cancel := context.WithTimeout(c.Request().Context(), 45*time.Second)
	defer cancel()

	recs := s.AI.RecommendOpportunities(aiCtx, req.Profile, candidates)
	return c.JSON(http.StatusOK, recs)
}
