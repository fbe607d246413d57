package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fred-insights/internal/domain/catalog"
	"github.com/yanqian/fred-insights/internal/domain/series"
	"github.com/yanqian/fred-insights/internal/domain/summarizer"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Simple FRED Site API"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	seriesSvc     series.Service
	summarizerSvc summarizer.Service
	catalog       *catalog.Catalog
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(seriesSvc series.Service, summarySvc summarizer.Service, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		seriesSvc:     seriesSvc,
		summarizerSvc: summarySvc,
		catalog:       cat,
		logger:        logger.With("component", "http.handler"),
	}
}

type fetchSeriesRequest struct {
	SeriesID  string `json:"series_id" binding:"required,max=100,seriesid"`
	Limit     int    `json:"limit" binding:"omitempty,min=1,max=100000"`
	SortOrder string `json:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// FetchSeries returns metadata and observations for one series.
func (h *Handler) FetchSeries(c *gin.Context) {
	var req fetchSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(bindMessage(err), err))
		return
	}

	snapshot, err := h.seriesSvc.FetchSeries(c.Request.Context(), req.SeriesID, series.FetchOptions{
		Limit: req.Limit,
		Order: series.SortOrder(req.SortOrder),
	})
	if err != nil {
		abortWithError(c, fetchErrors.toHTTP(err))
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Summarize generates a natural language summary of an arbitrary payload.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(bindMessage(err), err))
		return
	}
	h.logger.Info("summarize requested", "keys", payloadKeys(req.Data))

	resp, err := h.summarizerSvc.Summarize(c.Request.Context(), req.Data)
	if err != nil {
		abortWithError(c, summarizeErrors.toHTTP(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCategories returns every category with its series count.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.List()})
}

// GetCategory returns one category and its raw series ids.
func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.catalog.Category(c.Param("id"))
	if err != nil {
		abortWithError(c, categoryErrors.toHTTP(err))
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CategorySeries lists a category's series, optionally filtered by ?search=
// and described through the series service unless ?enrich=false.
func (h *Handler) CategorySeries(c *gin.Context) {
	enrich := true
	if raw := strings.TrimSpace(c.Query("enrich")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, invalidRequest("enrich must be a boolean", err))
			return
		}
		enrich = parsed
	}

	var fetcher catalog.MetadataFetcher
	if enrich && h.seriesSvc != nil {
		fetcher = h.seriesSvc
	}

	listing, err := h.catalog.Listing(c.Request.Context(), c.Param("id"), c.Query("search"), fetcher)
	if err != nil {
		abortWithError(c, categoryErrors.toHTTP(err))
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}

func payloadKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	return keys
}
