// Package chart builds declarative chart specifications from resolved
// selections and dataset tables.  A spec is a plain JSON document describing
// what to draw; rendering is entirely the client's concern.
package chart

// Margin is the plot margin in pixels.
type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

// DefaultMargin is the compact margin every chart uses.
func DefaultMargin() Margin {
	return Margin{T: 50, L: 25, R: 25, B: 25}
}

// Axis scale names.
const (
	ScaleLog    = "log"
	ScaleLinear = "linear"
)

// Axis describes one scatter axis.
type Axis struct {
	Title string `json:"title"`
	Scale string `json:"scale"`
}

// ScatterPoint is one country on a cross-country scatterplot.
type ScatterPoint struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`

	// Label is the visible text next to the marker.  Only the selected
	// country's point carries one.
	Label string `json:"label,omitempty"`

	// Hover holds the tooltip values keyed by column name.
	Hover map[string]float64 `json:"hover,omitempty"`
}

// ScatterSpec is the declarative form of a cross-country scatterplot.
type ScatterSpec struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	XAxis      Axis           `json:"x_axis"`
	YAxis      Axis           `json:"y_axis"`
	Margin     Margin         `json:"margin"`
	ShowLegend bool           `json:"show_legend"`
	Points     []ScatterPoint `json:"points"`
}

// Color spec modes.
const (
	ColorModeCategorical = "categorical"
	ColorModeContinuous  = "continuous"
)

// ColorSpec describes how treemap tiles are colored.
type ColorSpec struct {
	Mode   string    `json:"mode"`
	Column string    `json:"column"`
	Scale  string    `json:"scale,omitempty"`
	Range  []float64 `json:"range,omitempty"`
}

// TreemapTile is one leaf of a treemap hierarchy.
type TreemapTile struct {
	// Path holds the tile's values along the hierarchy, outermost first.
	Path  []string `json:"path"`
	Value float64  `json:"value"`

	// Category is set under categorical coloring.
	Category string `json:"category,omitempty"`
	// ColorValue is set under continuous coloring; nil when the row has no
	// value for the color column.
	ColorValue *float64 `json:"color_value,omitempty"`

	// Hover holds extra tooltip values keyed by column name.
	Hover map[string]string `json:"hover,omitempty"`
}

// TreemapSpec is the declarative form of a single-country treemap.
type TreemapSpec struct {
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Margin      Margin            `json:"margin"`
	PathColumns []string          `json:"path_columns"`
	Color       ColorSpec         `json:"color"`
	Labels      map[string]string `json:"labels,omitempty"`
	Tiles       []TreemapTile     `json:"tiles"`
}
