package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxChartTicks caps the number of ticks rendered so a long session
// does not produce a multi-megabyte page.
const maxChartTicks = 5000

// handleChart renders the six pipeline channels as an HTML line chart.
// Debugging-only endpoint: it reads the full accumulated history.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	header, rows := s.session.ChartData()
	if len(rows) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "no ticks processed yet")
		return
	}

	// Downsample by stride to stay within maxChartTicks.
	stride := 1
	if len(rows) > maxChartTicks {
		stride = (len(rows) + maxChartTicks - 1) / maxChartTicks
	}

	xAxis := make([]string, 0, len(rows)/stride+1)
	series := make([][]opts.LineData, len(header))
	for i := 0; i < len(rows); i += stride {
		xAxis = append(xAxis, strconv.Itoa(i))
		for c := range header {
			series[c] = append(series[c], opts.LineData{Value: rows[i][c]})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Rep Counter Channels", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Pipeline channels", Subtitle: fmt.Sprintf("ticks=%d stride=%d", len(rows), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "tick"}),
	)

	line.SetXAxis(xAxis)
	for c, name := range header {
		line.AddSeries(name, series[c])
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
