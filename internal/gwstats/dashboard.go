package gwstats

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ServeDashboard renders one bar chart per node (received/sent/dropped
// counts from its latest interval) plus the rolling mean receive
// rate, mirroring handleTrafficChart in the teacher repo's
// internal/lidar/monitor/echarts_handlers.go.
func (c *Collector) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	snaps := c.Snapshot()
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].NodeName < snaps[j].NodeName })

	names := make([]string, 0, len(snaps))
	received := make([]opts.BarData, 0, len(snaps))
	sent := make([]opts.BarData, 0, len(snaps))
	dropped := make([]opts.BarData, 0, len(snaps))
	meanRate := make([]opts.BarData, 0, len(snaps))

	for _, s := range snaps {
		names = append(names, s.NodeName)
		received = append(received, opts.BarData{Value: s.Latest.Received})
		sent = append(sent, opts.BarData{Value: s.Latest.Sent})
		dropped = append(dropped, opts.BarData{Value: s.Latest.Dropped})
		meanRate = append(meanRate, opts.BarData{Value: s.MeanRate})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Gateway Node Throughput", Subtitle: fmt.Sprintf("%d nodes reporting", len(snaps))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("received", received).
		AddSeries("sent", sent).
		AddSeries("dropped", dropped).
		AddSeries("mean rate (msg/s)", meanRate)

	page := components.NewPage()
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("gwstats: render error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
