package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jobsyde/jobsyde/internal/auth"
	"github.com/jobsyde/jobsyde/internal/db"
	"github.com/jobsyde/jobsyde/internal/models"
)

// opportunityRequest is the admin form payload. Multi-valued fields
// accept either arrays or comma/newline-delimited strings; tags are
// always free-form text from the form.
type opportunityRequest struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Organization    string   `json:"organization"`
	Location        string   `json:"location"`
	Country         string   `json:"country"`
	Level           string   `json:"level"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	ImageHint       string   `json:"imageHint"`
	ApplicationLink string   `json:"applicationLink"`
	Deadline        string   `json:"deadline"` // YYYY-MM-DD, empty for none
	Category        []string `json:"category"`
	Industries      []string `json:"industries"`
	Fields          []string `json:"fields"`
	Tags            string   `json:"tags"`
	Featured        bool     `json:"featured"`
	Trending        bool     `json:"trending"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

func (r opportunityRequest) toModel() (models.Opportunity, error) {
	o := models.Opportunity{
		Slug:            strings.TrimSpace(r.Slug),
		Title:           r.Title,
		Organization:    r.Organization,
		Location:        r.Location,
		Country:         r.Country,
		Level:           r.Level,
		Summary:         r.Summary,
		Description:     r.Description,
		Image:           strings.TrimSpace(r.Image),
		ImageHint:       strings.TrimSpace(r.ImageHint),
		ApplicationLink: strings.TrimSpace(r.ApplicationLink),
		Category:        r.Category,
		Industries:      r.Industries,
		Fields:          r.Fields,
		Tags:            db.SplitClean(r.Tags),
		Featured:        r.Featured,
		Trending:        r.Trending,
		Status:          r.Status,
		MetaTitle:       strings.TrimSpace(r.MetaTitle),
		MetaDescription: strings.TrimSpace(r.MetaDescription),
	}

	if r.Deadline != "" {
		t, err := time.Parse("2006-01-02", r.Deadline)
		if err != nil {
			return o, fmt.Errorf("deadline must be YYYY-MM-DD")
		}
		o.Deadline = &t
	}

	return o, nil
}

// validateOpportunity returns field-level messages for a posting about
// to be written. An empty map means the posting is acceptable.
func validateOpportunity(o models.Opportunity) map[string]string {
	problems := map[string]string{}

	if strings.TrimSpace(o.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(o.Organization) == "" {
		problems["organization"] = "organization is required"
	}
	if strings.TrimSpace(o.Summary) == "" {
		problems["summary"] = "summary is required"
	}
	if len(db.SplitClean(o.Category...)) == 0 {
		problems["category"] = "at least one category is required"
	}
	if o.Level != "" && !models.IsValidLevel(o.Level) {
		problems["level"] = "unknown level"
	}
	if o.Status != "" && o.Status != models.StatusDraft && o.Status != models.StatusPublished {
		problems["status"] = "status must be draft or published"
	}
	if o.ApplicationLink != "" {
		u, err := url.Parse(o.ApplicationLink)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems["applicationLink"] = "applicationLink must be an http(s) URL"
		}
	}

	return problems
}

func (s *Server) handleAdminListOpportunities(c echo.Context) error {
	opps, err := s.Store.ListAllOpportunities(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, opps)
}

func (s *Server) handleAdminGetOpportunity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	opp, err := s.Store.GetOpportunity(c.Request().Context(), id)
	if err != nil {
		if err == db.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, opp)
}

func (s *Server) handleAdminCreateOpportunity(c echo.Context) error {
	var req opportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	o, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if problems := validateOpportunity(o); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": problems})
	}

	created, err := s.Store.CreateOpportunity(c.Request().Context(), o)
	if err != nil {
		c.Logger().Errorf("Failed to create opportunity: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleAdminUpdateOpportunity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	var req opportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	o, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if problems := validateOpportunity(o); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": problems})
	}

	if err := s.Store.UpdateOpportunity(c.Request().Context(), id, o); err != nil {
		if err == db.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		c.Logger().Errorf("Failed to update opportunity: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Updated"})
}

// handleAdminDeleteOpportunity removes a posting and best-effort cleans
// up its stored image. Image removal never blocks the delete: foreign
// URLs are skipped and storage errors are only logged.
func (s *Server) handleAdminDeleteOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	opp, err := s.Store.GetOpportunity(ctx, id)
	if err != nil {
		if err == db.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	if path := s.Storage.PathFromURL(opp.Image); path != "" {
		if err := s.Storage.Remove(ctx, path); err != nil {
			c.Logger().Errorf("Failed to remove image %q: %v", path, err)
		}
	}

	if err := s.Store.DeleteOpportunity(ctx, id); err != nil {
		if err == db.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		c.Logger().Errorf("Failed to delete opportunity: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

type taxonomyRequest struct {
	Name        string `json:"name"`
	ParentID    string `json:"parentId"`
	Description string `json:"description"`
}

func (r taxonomyRequest) toInput() (db.TaxonomyInput, error) {
	in := db.TaxonomyInput{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.ParentID != "" {
		parent, err := uuid.Parse(r.ParentID)
		if err != nil {
			return in, fmt.Errorf("parentId must be a UUID")
		}
		in.ParentID = &parent
	}
	return in, nil
}

func taxonomyErrorResponse(c echo.Context, err error) error {
	switch {
	case strings.Contains(err.Error(), "required"):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, db.ErrDuplicate):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, db.ErrInvalidParent):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err == db.ErrNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	default:
		c.Logger().Errorf("Taxonomy write failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
}

func (s *Server) handleTaxonomyCreate(store func() *db.TaxonomyStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taxonomyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}

		in, err := req.toInput()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		item, err := store().Create(c.Request().Context(), in)
		if err != nil {
			return taxonomyErrorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func (s *Server) handleTaxonomyUpdate(store func() *db.TaxonomyStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
		}

		var req taxonomyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}

		in, err := req.toInput()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if err := store().Update(c.Request().Context(), id, in); err != nil {
			return taxonomyErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Updated"})
	}
}

func (s *Server) handleTaxonomyDelete(store func() *db.TaxonomyStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
		}

		if err := store().Delete(c.Request().Context(), id); err != nil {
			return taxonomyErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
	}
}

// handleAdminDeleteTag takes the tag name as a query parameter because
// tag labels routinely contain slashes and spaces.
func (s *Server) handleAdminDeleteTag(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name query parameter is required"})
	}

	if err := s.Store.DeleteTag(c.Request().Context(), name); err != nil {
		c.Logger().Errorf("Failed to delete tag: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

const maxImageSize = 5 << 20 // 5 MiB

func (s *Server) handleAdminUploadImage(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}
	if fh.Size > maxImageSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image exceeds the 5MB limit"})
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported image type"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(fh.Filename)))
	publicURL, err := s.Storage.Upload(c.Request().Context(), objectName, contentType, src, fh.Size)
	if err != nil {
		c.Logger().Errorf("Upload by %s failed: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Upload failed"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": publicURL})
}
