package chart

import (
	"math"

	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/domain/profile"
)

// BuildScatter plots every country in the totals table against GDP per
// capita, with the resolved y column, population-sized markers and
// region-colored points.  Only the selected country's marker carries a text
// label.  Rows missing the x, y or size value cannot be positioned and are
// dropped.
func BuildScatter(totals *dataset.Table, plan profile.ScatterPlan, selectedCode, title string) (*ScatterSpec, error) {
	codes, err := totals.Strings(dataset.ColCountryCode)
	if err != nil {
		return nil, err
	}
	names, err := totals.Strings(dataset.ColCountryName)
	if err != nil {
		return nil, err
	}
	regions, err := totals.Strings(dataset.ColRegion)
	if err != nil {
		return nil, err
	}
	xs, err := totals.Numbers(dataset.ColGDPPerCapita)
	if err != nil {
		return nil, err
	}
	sizes, err := totals.Numbers(dataset.ColPopulation)
	if err != nil {
		return nil, err
	}
	ys, err := totals.Numbers(plan.YColumn)
	if err != nil {
		return nil, err
	}

	yScale := ScaleLinear
	if plan.LogY {
		yScale = ScaleLog
	}

	spec := &ScatterSpec{
		Type:  "scatter",
		Title: title,
		XAxis: Axis{Title: "GDP per capita", Scale: ScaleLog},
		YAxis: Axis{Title: plan.YColumn, Scale: yScale},
		Margin: DefaultMargin(),
		Points: make([]ScatterPoint, 0, totals.NumRows()),
	}

	for i := range codes {
		x, y, size := xs[i], ys[i], sizes[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(size) {
			continue
		}
		p := ScatterPoint{
			CountryCode: codes[i],
			CountryName: names[i],
			X:           x,
			Y:           y,
			Size:        size,
			Color:       regions[i],
			Hover: map[string]float64{
				dataset.ColGDPPerCapita: x,
				plan.YColumn:            y,
			},
		}
		if codes[i] == selectedCode {
			p.Label = selectedCode
		}
		spec.Points = append(spec.Points, p)
	}
	return spec, nil
}
