package handlers

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/arnavshah/shift-lookup-go/internal/logging"
	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/arnavshah/shift-lookup-go/pkg/token"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static/*
var staticEmbed embed.FS

// Version is reported by the service info route
const Version = "1.0.0"

// Handler contains dependencies for the route handlers
type Handler struct {
	Dataset  *dataset.Dataset
	Lookup   *lookup.Lookup
	Collator *lookup.Collator
	Tokens   *token.Issuer
	Logger   *zap.Logger
}

// NewHandler wires a handler around a loaded dataset
func NewHandler(ds *dataset.Dataset, collator *lookup.Collator, tokens *token.Issuer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Dataset:  ds,
		Lookup:   ds.Lookup(collator),
		Collator: collator,
		Tokens:   tokens,
		Logger:   logger,
	}
}

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(h.Logger), gin.Recovery())

	// Lookup page served from embedded FS
	r.StaticFS("/static", h.GetStaticFS())
	r.GET("/", h.Index)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Shift Lookup API",
				"version": Version,
			})
		})
		api.GET("/roster", h.Roster)
		api.GET("/shifts", h.Shifts)
		api.GET("/notes", h.Notes)
		api.GET("/summary", h.Summary)
		api.POST("/validate", h.ValidateDataset)
	}

	sess := api.Group("/session")
	sess.Use(h.SessionMiddleware())
	{
		sess.GET("", h.GetSession)
		sess.POST("/search", h.SearchSession)
		sess.POST("/select", h.SelectSession)
		sess.POST("/clear", h.ClearSession)
	}

	return r
}

// Roster returns the names matching the q query parameter
func (h *Handler) Roster(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"names": h.Lookup.Search(c.Query("q"))})
}

// Shifts returns the person's shifts grouped by day
func (h *Handler) Shifts(c *gin.Context) {
	person := c.Query("person")
	groups, total := h.Lookup.Resolve(person)
	c.JSON(http.StatusOK, models.ShiftsResponse{
		Person: person,
		Groups: groups,
		Total:  total,
	})
}

// Notes returns the note blocks unchanged
func (h *Handler) Notes(c *gin.Context) {
	notes := h.Dataset.Notes
	if notes == nil {
		notes = []models.NoteBlock{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// Summary returns counts over the loaded dataset
func (h *Handler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locale":  h.Collator.Locale(),
		"summary": h.Dataset.Summarize(h.Collator),
	})
}

// Index serves the lookup page from embedded files
func (h *Handler) Index(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
