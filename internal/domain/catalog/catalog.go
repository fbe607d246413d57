package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/fred-insights/internal/domain/series"
	apperrors "github.com/yanqian/fred-insights/pkg/errors"
)

//go:embed categories.yaml
var defaultTable []byte

// MetadataFetcher describes series in bulk. series.Service satisfies it.
type MetadataFetcher interface {
	FetchMetadataBatch(ctx context.Context, ids []string) ([]series.Metadata, error)
}

// Catalog is an immutable, ordered set of categories. It is safe for
// concurrent use because nothing writes to it after construction.
type Catalog struct {
	order []string
	byID  map[string]Category
}

// Config selects the category table; an empty Path uses the embedded one.
type Config struct {
	Path string
}

// Load builds the catalog from cfg.Path or the embedded table.
func Load(cfg Config) (*Catalog, error) {
	data := defaultTable
	if path := strings.TrimSpace(cfg.Path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a YAML category table.
func Parse(data []byte) (*Catalog, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(t.Categories)
}

// New validates categories and freezes them into a Catalog.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(categories)),
		byID:  make(map[string]Category, len(categories)),
	}
	for _, cat := range categories {
		if strings.TrimSpace(cat.ID) == "" {
			return nil, errors.New("catalog: category id cannot be empty")
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate category id %q", cat.ID)
		}
		cat = cat.clone()
		if cat.SeriesIDs == nil {
			cat.SeriesIDs = []string{}
		}
		c.order = append(c.order, cat.ID)
		c.byID[cat.ID] = cat
	}
	return c, nil
}

// NewDefault loads the embedded table for wiring.
func NewDefault(cfg Config, logger *slog.Logger) (*Catalog, error) {
	c, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	logger.With("component", "catalog").Info("category catalog loaded", "categories", len(c.order), "source", sourceName(cfg))
	return c, nil
}

func sourceName(cfg Config) string {
	if strings.TrimSpace(cfg.Path) == "" {
		return "embedded"
	}
	return cfg.Path
}

// List returns every category with its series count, in table order.
func (c *Catalog) List() []Summary {
	out := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		cat := c.byID[id]
		out = append(out, Summary{
			ID:          cat.ID,
			Name:        cat.Name,
			Icon:        cat.Icon,
			Description: cloneString(cat.Description),
			SeriesCount: len(cat.SeriesIDs),
		})
	}
	return out
}

// Get returns a deep copy of the category.
func (c *Catalog) Get(id string) (Category, bool) {
	cat, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return cat.clone(), true
}

// Category is Get with a not_found error for unknown ids.
func (c *Catalog) Category(id string) (Category, error) {
	cat, ok := c.Get(id)
	if !ok {
		return Category{}, notFound(id)
	}
	return cat, nil
}

// SeriesIDs returns a copy of the category's series ids.
func (c *Catalog) SeriesIDs(id string) ([]string, error) {
	cat, ok := c.byID[id]
	if !ok {
		return nil, notFound(id)
	}
	return slices.Clone(cat.SeriesIDs), nil
}

// Search filters the category's ids by case-insensitive substring. An empty
// term returns all ids.
func (c *Catalog) Search(id, term string) ([]string, error) {
	ids, err := c.SeriesIDs(id)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return ids, nil
	}
	needle := strings.ToLower(term)
	matches := make([]string, 0, len(ids))
	for _, sid := range ids {
		if strings.Contains(strings.ToLower(sid), needle) {
			matches = append(matches, sid)
		}
	}
	return matches, nil
}

// Listing resolves the category's ids (filtered by term) and describes them
// with fetcher. A nil fetcher, or a fetcher error, yields placeholders.
func (c *Catalog) Listing(ctx context.Context, id, term string, fetcher MetadataFetcher) (Listing, error) {
	cat, ok := c.byID[id]
	if !ok {
		return Listing{}, notFound(id)
	}
	ids, err := c.Search(id, term)
	if err != nil {
		return Listing{}, err
	}

	items := placeholders(ids)
	if fetcher != nil && len(ids) > 0 {
		described, err := fetcher.FetchMetadataBatch(ctx, ids)
		if err == nil && len(described) == len(ids) {
			items = described
		}
	}

	return Listing{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Series:       items,
		TotalCount:   len(items),
	}, nil
}

func (cat Category) clone() Category {
	cat.Description = cloneString(cat.Description)
	cat.SeriesIDs = slices.Clone(cat.SeriesIDs)
	return cat
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func placeholders(ids []string) []series.Metadata {
	out := make([]series.Metadata, 0, len(ids))
	for _, id := range ids {
		out = append(out, series.Placeholder(id))
	}
	return out
}

func notFound(id string) error {
	return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("Category '%s' not found", id), nil)
}
