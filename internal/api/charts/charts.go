// Package charts draws the dashboard graphics as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

const (
	width  = 900
	height = 450
)

// ClientsPerPlan renders a bar per plan with its client count. It returns nil
// when there is nothing to draw.
func ClientsPerPlan(plans []domain.PlanStats) ([]byte, error) {
	if len(plans) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(plans))
	top := 1.0
	for _, p := range plans {
		v := float64(p.Clients)
		if v > top {
			top = v
		}
		bars = append(bars, chart.Value{Label: p.Name, Value: v})
	}

	graph := chart.BarChart{
		Title:  "Clients per plan",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render clients per plan: %w", err)
	}
	return buffer.Bytes(), nil
}
