package catalog

import "github.com/yanqian/fred-insights/internal/domain/series"

// Category is one curated group of series.
type Category struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Icon        string   `yaml:"icon" json:"icon"`
	Description *string  `yaml:"description" json:"description"`
	SeriesIDs   []string `yaml:"series_ids" json:"series_ids"`
}

// Summary is the list view of a category.
type Summary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description *string `json:"description"`
	SeriesCount int     `json:"series_count"`
}

// Listing is a category with its series described.
type Listing struct {
	CategoryID   string            `json:"category_id"`
	CategoryName string            `json:"category_name"`
	Series       []series.Metadata `json:"series"`
	TotalCount   int               `json:"total_count"`
}

type table struct {
	Categories []Category `yaml:"categories"`
}
