package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobsyde/jobsyde/internal/models"
)

// handleAdminSeed inserts a batch of sample postings for local
// development. Slug collisions with existing rows resolve through the
// usual suffixing, so seeding is repeatable.
func (s *Server) handleAdminSeed(c echo.Context) error {
	ctx := c.Request().Context()

	seeds := []models.Opportunity{
		{
			Title:           "Software Engineering Internship - Backend Systems",
			Organization:    "Acme Cloud",
			Location:        "Berlin",
			Country:         "Germany",
			Level:           "Undergraduate",
			Summary:         "Six-month paid internship working on distributed storage systems with an experienced platform team.",
			Description:     "<p>Join our backend platform team and work on the storage layer powering millions of requests per day. You will pair with senior engineers, own a project end to end and present it to the wider org.</p>",
			ApplicationLink: "https://careers.acmecloud.example/intern-backend",
			Deadline:        timePtr(time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)),
			Category:        []string{"Internships"},
			Industries:      []string{"Technology"},
			Fields:          []string{"Computer Science"},
			Tags:            []string{"engineering", "backend", "paid"},
			Featured:        true,
			Status:          models.StatusPublished,
		},
		{
			Title:           "Chevening Scholarships 2027",
			Organization:    "UK Government",
			Location:        "London",
			Country:         "United Kingdom",
			Level:           "Graduate",
			Summary:         "Fully funded one-year master's degree scholarships in the UK for emerging leaders from eligible countries.",
			Description:     "<p>Chevening Scholarships cover tuition, a living stipend, travel costs and visa fees for a one-year master's at any UK university.</p>",
			ApplicationLink: "https://www.chevening.org/apply",
			Deadline:        timePtr(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)),
			Category:        []string{"Scholarships", "Study Abroad"},
			Industries:      []string{"Education"},
			Fields:          []string{"All Fields"},
			Tags:            []string{"fully-funded", "masters", "uk"},
			Trending:        true,
			Status:          models.StatusPublished,
		},
		{
			Title:           "UNDP Graduate Fellowship Programme",
			Organization:    "United Nations Development Programme",
			Location:        "New York",
			Country:         "United States",
			Level:           "Graduate",
			Summary:         "Twelve-month fellowship placing recent graduates in UNDP country offices to work on sustainable development projects.",
			Description:     "<p>Fellows work alongside UNDP staff on poverty reduction, climate resilience and governance programmes. A monthly stipend and relocation support are provided.</p>",
			ApplicationLink: "https://www.undp.org/careers/fellowship",
			Deadline:        timePtr(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)),
			Category:        []string{"Fellowships"},
			Industries:      []string{"Non-profit"},
			Fields:          []string{"International Development"},
			Tags:            []string{"fellowship", "united-nations", "stipend"},
			Status:          models.StatusPublished,
		},
		{
			Title:           "Data Analyst - Remote",
			Organization:    "Brightline Analytics",
			Location:        "Remote",
			Country:         "United States",
			Level:           "Professional",
			Summary:         "Full-time remote role building dashboards and running experiments for consumer product teams.",
			Description:     "<p>We are looking for a data analyst comfortable with SQL and statistical testing. You will own reporting for two product squads and drive the experimentation roadmap.</p>",
			ApplicationLink: "https://brightline.example/jobs/data-analyst",
			Category:        []string{"Jobs"},
			Industries:      []string{"Technology"},
			Fields:          []string{"Data Science"},
			Tags:            []string{"remote", "analytics", "full-time"},
			Status:          models.StatusPublished,
		},
		{
			Title:        "Mastercard Foundation Scholars Program",
			Organization: "Mastercard Foundation",
			Location:     "Kigali",
			Country:      "Rwanda",
			Level:        "Undergraduate",
			Summary:      "Comprehensive scholarships for academically talented young people from Africa facing financial barriers.",
			Description:  "<p>The program covers tuition, accommodation, learning materials and mentorship at partner universities across Africa and beyond.</p>",
			Category:     []string{"Scholarships"},
			Industries:   []string{"Education"},
			Fields:       []string{"All Fields"},
			Tags:         []string{"fully-funded", "africa", "undergraduate"},
			Status:       models.StatusDraft,
		},
	}

	created := 0
	for _, seed := range seeds {
		if _, err := s.Store.CreateOpportunity(ctx, seed); err != nil {
			c.Logger().Errorf("Failed to seed %q: %v", seed.Title, err)
			continue
		}
		created++
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Seed complete",
		"created": created,
	})
}

func timePtr(t time.Time) *time.Time {
	return &t
}
