package rewardsservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Chart colors, matching the hub's emerald theme.
var (
	chartBackground = drawing.ColorFromHex("0f172a")
	chartLine       = drawing.ColorFromHex("34d399")
	chartDot        = drawing.ColorFromHex("fbbf24")
	chartText       = drawing.ColorFromHex("e2e8f0")
)

// RenderPointsChart produces a PNG line chart of an account's balance over
// the last days days. days <= 0 charts the full history.
func (s *RewardsService) RenderPointsChart(ctx context.Context, accountID rewardsdomain.AccountID, days int) ([]byte, error) {
	entries, err := s.repo.GetLedgerEntries(ctx, nil, string(accountID), 0)
	if err != nil {
		return nil, fmt.Errorf("RenderPointsChart: %w", err)
	}

	var cutoff time.Time
	if days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -days)
	}

	var xValues []time.Time
	var yValues []float64
	for _, entry := range entries {
		if !cutoff.IsZero() && entry.OccurredAt.Before(cutoff) {
			continue
		}
		xValues = append(xValues, entry.OccurredAt)
		yValues = append(yValues, float64(entry.BalanceAfter))
	}

	// go-chart needs at least two points to draw a line.
	if len(xValues) < 2 {
		return renderNoDataPlaceholder()
	}

	mainSeries := chart.TimeSeries{
		Name:    "Points Balance",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: chartLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    chartDot,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontColor: chartText,
			},
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: chartText,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("RenderPointsChart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No points history yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
