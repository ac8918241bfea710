package chart

import (
	"math"

	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/domain/profile"
)

// BuildTreemap turns the rows of a single country into a treemap spec using
// the resolved value and color columns.  Rows whose value is zero, negative
// or missing would produce invisible or degenerate tiles and are excluded.
// A zero-row input yields a valid spec with no tiles.
func BuildTreemap(rows *dataset.Table, plan profile.TreemapPlan, title string) (*TreemapSpec, error) {
	values, err := rows.Numbers(plan.ValueColumn)
	if err != nil {
		return nil, err
	}

	pathCols := make([][]string, len(plan.Path))
	for i, col := range plan.Path {
		vals, err := rows.Strings(col)
		if err != nil {
			return nil, err
		}
		pathCols[i] = vals
	}

	color := ColorSpec{Mode: ColorModeCategorical, Column: plan.ColorColumn}
	var colorVals []float64
	if !plan.Categorical() {
		colorVals, err = rows.Numbers(plan.ColorColumn)
		if err != nil {
			return nil, err
		}
		color = ColorSpec{
			Mode:   ColorModeContinuous,
			Column: plan.ColorColumn,
			Scale:  plan.ColorScale,
			Range:  []float64{plan.ColorRange.Min, plan.ColorRange.Max},
		}
	}

	spec := &TreemapSpec{
		Type:        "treemap",
		Title:       title,
		Margin:      DefaultMargin(),
		PathColumns: plan.Path,
		Color:       color,
		Labels:      plan.Labels,
		Tiles:       make([]TreemapTile, 0, rows.NumRows()),
	}

	for i := 0; i < rows.NumRows(); i++ {
		v := values[i]
		if !(v > 0) { // excludes zero, negative and NaN
			continue
		}

		tile := TreemapTile{
			Path:  make([]string, len(pathCols)),
			Value: v,
		}
		for j, vals := range pathCols {
			tile.Path[j] = vals[i]
		}

		if plan.Categorical() {
			tile.Category = rows.StringAt(plan.ColorColumn, i)
		} else if c := colorVals[i]; !math.IsNaN(c) {
			tile.ColorValue = &c
		}

		if len(plan.HoverData) > 0 {
			tile.Hover = make(map[string]string, len(plan.HoverData))
			for _, col := range plan.HoverData {
				tile.Hover[col] = rows.StringAt(col, i)
			}
		}
		spec.Tiles = append(spec.Tiles, tile)
	}
	return spec, nil
}
