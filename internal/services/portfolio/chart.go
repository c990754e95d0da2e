package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/perolav/folio/internal/models"
)

// RenderValueChart renders the snapshot series as a PNG line chart with two
// series: portfolio value (blue solid) and cost basis (gray dashed).
func (s *Service) RenderValueChart(ctx context.Context) ([]byte, error) {
	snapshots, err := s.storage.SnapshotStore().ListLast(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return renderSnapshotChart(snapshots)
}

func renderSnapshotChart(snapshots []*models.PortfolioSnapshot) ([]byte, error) {
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("need at least 2 snapshots, got %d", len(snapshots))
	}

	xValues := make([]time.Time, 0, len(snapshots))
	valueY := make([]float64, 0, len(snapshots))
	costY := make([]float64, 0, len(snapshots))

	for _, snap := range snapshots {
		date, err := time.Parse("2006-01-02", snap.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, date)
		valueY = append(valueY, snap.TotalValue)
		costY = append(costY, snap.TotalCost)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 dated snapshots")
	}

	valueSeries := chart.TimeSeries{
		Name: "Portfolio Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: valueY,
	}

	costSeries := chart.TimeSeries{
		Name: "Cost Basis",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: costY,
	}

	graph := chart.Chart{
		Title:  "Portfolio Value",
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
					return fmt.Sprintf("%.0fk kr", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			valueSeries,
			costSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
