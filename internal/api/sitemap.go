package api

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobsyde/jobsyde/internal/db"
	"github.com/jobsyde/jobsyde/internal/slug"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// handleSitemap renders sitemap.xml from the static routes, one listing
// page per category and one page per published posting. Store failures
// degrade to the configured fallback navigation so the sitemap always
// renders.
func (s *Server) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	base := s.Site.Site.BaseURL
	today := time.Now().Format("2006-01-02")

	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, route := range s.Site.StaticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + route,
			LastMod:    today,
			ChangeFreq: "daily",
			Priority:   "1.0",
		})
	}

	categoryNames := s.Site.NavCategories
	if items, err := s.Categories.List(ctx); err == nil {
		categoryNames = make([]string, 0, len(items))
		for _, it := range items {
			categoryNames = append(categoryNames, it.Name)
		}
	} else {
		c.Logger().Errorf("Sitemap category lookup failed, using fallback navigation: %v", err)
	}
	for _, name := range categoryNames {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/opportunities/" + slug.Make(name),
			LastMod:    today,
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}

	opps, err := s.Store.ListOpportunities(ctx, db.Filters{})
	if err != nil {
		c.Logger().Errorf("Sitemap posting lookup failed, emitting static entries only: %v", err)
	}
	for _, o := range opps {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/opportunity/" + o.Slug,
			LastMod:    o.CreatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.Blob(http.StatusOK, "application/xml", append([]byte(xml.Header), out...))
}
