package api

import (
	"context"
	"net/http"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/analytics"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/config"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/dataset"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/errors"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-listings/api")

// DatasetProvider hands out the canonical dataset for a source path.
type DatasetProvider interface {
	Dataset(ctx context.Context, path string) (*models.Dataset, error)
}

type Handler struct {
	store       DatasetProvider
	datasetPath string
	logger      *zap.Logger
}

func NewHandler(store *dataset.Store, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		store:       store,
		datasetPath: cfg.DatasetPath,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.GET("/api/dashboard", h.GetDashboard)
	r.GET("/api/facets", h.GetFacets)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetDashboard filters the dataset by the selected facets and returns the
// full aggregate bundle. Facet params repeat: ?location=NY&location=LA.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetDashboard")
	defer span.End()

	criteria := analytics.Criteria{
		Locations:      c.QueryArray("location"),
		Industries:     c.QueryArray("industry"),
		OwnershipTypes: c.QueryArray("ownership"),
	}

	ds, err := h.store.Dataset(ctx, h.datasetPath)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to load dataset", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	filtered := analytics.Filter(ds.Postings, criteria)
	span.SetAttributes(
		telemetry.Int("dataset.rows", len(ds.Postings)),
		telemetry.Int("dashboard.filtered_rows", len(filtered)),
	)

	c.JSON(http.StatusOK, analytics.BuildDashboard(filtered))
}

// GetFacets returns the selectable filter values, mirroring the sidebar of
// the rendering collaborator.
func (h *Handler) GetFacets(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetFacets")
	defer span.End()

	ds, err := h.store.Dataset(ctx, h.datasetPath)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to load dataset", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics.Facets(ds.Postings))
}

func statusForError(err error) int {
	if errors.IsDataLoad(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
