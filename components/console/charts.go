package console

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "360px"
	trendWindowDays    = 7
)

// ChartRenderer turns dashboard snapshots into server-rendered chart HTML.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so the echarts JS loads from a
// CDN or the console's own asset route.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with a shared five-minute cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: NewChartCache(5 * time.Minute),
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderTrends renders the daily query volume line chart. The series is
// zero-filled over the trailing seven days ending at now so gaps in the
// backend data still produce a continuous axis.
func (r *ChartRenderer) RenderTrends(points []TrendPoint, now time.Time) (string, error) {
	labels, counts := fillTrendWindow(points, now)
	key := "trends:" + trendCacheKey(labels, counts)
	return r.cached(key, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions("Query Trends", "Daily queries, last 7 days")...)
		line.SetXAxis(labels)
		data := make([]opts.LineData, len(counts))
		for i, count := range counts {
			data[i] = opts.LineData{Value: count}
		}
		line.AddSeries("Daily Queries", data)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// RenderIntents renders the top-intent distribution as a doughnut chart.
func (r *ChartRenderer) RenderIntents(intents []IntentCount) (string, error) {
	key := "intents:" + intentCacheKey(intents)
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions("Top Intents", "")...)
		data := make([]opts.PieData, len(intents))
		for i, intent := range intents {
			data[i] = opts.PieData{Name: prettyIntent(intent.Intent), Value: intent.Count}
		}
		pie.AddSeries("Intents", data, charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"40%", "70%"},
		}))
		return renderChart(pie)
	})
}

// RenderFeedback renders the positive/negative feedback split.
func (r *ChartRenderer) RenderFeedback(positive, negative int) (string, error) {
	if negative < 0 {
		negative = 0
	}
	key := fmt.Sprintf("feedback:%d:%d", positive, negative)
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions("Feedback", "")...)
		pie.AddSeries("Feedback", []opts.PieData{
			{Name: "Positive", Value: positive},
			{Name: "Negative", Value: negative},
		})
		return renderChart(pie)
	})
}

func (r *ChartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fillTrendWindow maps sparse trend points onto the trailing window ending at
// now, producing axis labels ("Jan 1") and zero-filled counts.
func fillTrendWindow(points []TrendPoint, now time.Time) ([]string, []int) {
	byDay := make(map[string]int, len(points))
	for _, point := range points {
		byDay[point.Date.Format(time.DateOnly)] = point.Count
	}
	labels := make([]string, trendWindowDays)
	counts := make([]int, trendWindowDays)
	for i := 0; i < trendWindowDays; i++ {
		day := now.AddDate(0, 0, i-trendWindowDays+1)
		labels[i] = day.Format("Jan 2")
		counts[i] = byDay[day.Format(time.DateOnly)]
	}
	return labels, counts
}

func trendCacheKey(labels []string, counts []int) string {
	var buf bytes.Buffer
	for i := range labels {
		buf.WriteString(labels[i])
		buf.WriteByte('=')
		buf.WriteString(strconv.Itoa(counts[i]))
		buf.WriteByte(';')
	}
	return buf.String()
}

func intentCacheKey(intents []IntentCount) string {
	var buf bytes.Buffer
	for _, intent := range intents {
		buf.WriteString(intent.Intent)
		buf.WriteByte('=')
		buf.WriteString(strconv.Itoa(intent.Count))
		buf.WriteByte(';')
	}
	return buf.String()
}
