package api

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jobsyde/jobsyde/internal/ai"
	"github.com/jobsyde/jobsyde/internal/auth"
	"github.com/jobsyde/jobsyde/internal/db"
	"github.com/jobsyde/jobsyde/internal/storage"
)

type Server struct {
	Store       *db.Store
	Categories  *db.TaxonomyStore
	Industries  *db.TaxonomyStore
	Fields      *db.TaxonomyStore
	AuthService *auth.Service
	Echo        *echo.Echo
	DB          *pgxpool.Pool
	AI          *ai.Client
	Storage     *storage.Client
	Site        *SiteConfig
}

func NewServer(pool *pgxpool.Pool) (*Server, error) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	categories, err := db.NewTaxonomyStore(pool, db.TableCategories)
	if err != nil {
		return nil, err
	}
	industries, err := db.NewTaxonomyStore(pool, db.TableIndustries)
	if err != nil {
		return nil, err
	}
	fields, err := db.NewTaxonomyStore(pool, db.TableFields)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(storage.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	site, err := LoadSiteConfig("internal/api/config/site.yaml")
	if err != nil {
		return nil, fmt.Errorf("site config load failed: %w", err)
	}

	s := &Server{
		DB:          pool,
		Store:       db.NewStore(pool),
		Categories:  categories,
		Industries:  industries,
		Fields:      fields,
		AuthService: auth.NewService(pool),
		Echo:        e,
		AI:          ai.NewClient(os.Getenv("OLLAMA_HOST"), os.Getenv("OLLAMA_MODEL")),
		Storage:     store,
		Site:        site,
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.GET("/sitemap.xml", s.handleSitemap)

	api := s.Echo.Group("/api/v1")
	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/opportunities/:slug", s.handleGetOpportunity)
	api.GET("/categories", s.handleTaxonomyList(func() *db.TaxonomyStore { return s.Categories }))
	api.GET("/industries", s.handleTaxonomyList(func() *db.TaxonomyStore { return s.Industries }))
	api.GET("/fields", s.handleTaxonomyList(func() *db.TaxonomyStore { return s.Fields }))
	api.GET("/tags", s.handleListTags)
	api.GET("/levels", s.handleListLevels)
	api.POST("/newsletter", s.handleNewsletterSubscribe)

	// AI Routes
	api.POST("/ai/summary", s.handleAISummary)
	api.POST("/ai/recommendations", s.handleAIRecommendations)

	// Auth Routes
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/setup", s.handleSetup)

	// Admin Routes (JWT-protected)
	admin := api.Group("/admin")
	admin.Use(auth.Middleware)
	admin.GET("/opportunities", s.handleAdminListOpportunities)
	admin.GET("/opportunities/:id", s.handleAdminGetOpportunity)
	admin.POST("/opportunities", s.handleAdminCreateOpportunity)
	admin.PUT("/opportunities/:id", s.handleAdminUpdateOpportunity)
	admin.DELETE("/opportunities/:id", s.handleAdminDeleteOpportunity)

	s.taxonomyAdminRoutes(admin, "categories", func() *db.TaxonomyStore { return s.Categories })
	s.taxonomyAdminRoutes(admin, "industries", func() *db.TaxonomyStore { return s.Industries })
	s.taxonomyAdminRoutes(admin, "fields", func() *db.TaxonomyStore { return s.Fields })

	admin.DELETE("/tags", s.handleAdminDeleteTag)
	admin.POST("/images", s.handleAdminUploadImage)
	admin.POST("/seed", s.handleAdminSeed)
}

func (s *Server) taxonomyAdminRoutes(g *echo.Group, name string, store func() *db.TaxonomyStore) {
	g.POST("/"+name, s.handleTaxonomyCreate(store))
	g.PUT("/"+name+"/:id", s.handleTaxonomyUpdate(store))
	g.DELETE("/"+name+"/:id", s.handleTaxonomyDelete(store))
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if err == auth.ErrInvalidCreds {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSetup(c echo.Context) error {
	var req auth.SetupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and a password of at least 8 characters are required"})
	}

	resp, err := s.AuthService.Setup(c.Request().Context(), req)
	if err != nil {
		switch err {
		case auth.ErrBadSecret:
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Invalid setup secret"})
		case auth.ErrUserExists:
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}
