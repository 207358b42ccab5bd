package services

import (
	"bytes"
	"errors"

	"github.com/wcharczuk/go-chart/v2"
)

// CategoryCount is one bar of the products-per-category chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RenderCategoryBarChart renders the products-per-category bar chart shown on
// the statistics page.
func RenderCategoryBarChart(counts []CategoryCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, errors.New("no categories to chart")
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Name, Value: float64(c.Count)})
	}

	graph := chart.BarChart{
		Title:    "Plats par catégorie",
		Height:   400,
		BarWidth: 48,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderAvailabilityDonut renders the available/unavailable split.
func RenderAvailabilityDonut(available, unavailable int) ([]byte, error) {
	if available == 0 && unavailable == 0 {
		return nil, errors.New("no products to chart")
	}

	graph := chart.DonutChart{
		Title:  "Disponibilité",
		Height: 400,
		Values: []chart.Value{
			{Label: "Disponibles", Value: float64(available)},
			{Label: "Indisponibles", Value: float64(unavailable)},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
