package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/timeseries"
)

// RenderChart renders the aggregated balance series for the period as a
// PNG line chart. Returns raw PNG bytes.
func (s *Service) RenderChart(ctx context.Context, period models.BalancePeriod) ([]byte, error) {
	points, err := s.BalanceOverTime(ctx, period)
	if err != nil {
		return nil, err
	}
	return renderBalanceChart(points)
}

// renderBalanceChart draws a single net worth series in major units.
func renderBalanceChart(points []models.BalancePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		date, err := timeseries.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("bad point date %q: %w", p.Date, err)
		}
		xValues[i] = date
		yValues[i] = float64(p.BalanceMinor) / 100.0
	}

	balanceSeries := chart.TimeSeries{
		Name: "Net Worth",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Net Worth",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{balanceSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
