package console

import (
	"strings"
	"testing"
	"time"
)

func TestFillTrendWindowZeroFills(t *testing.T) {
	now := time.Date(2024, 6, 7, 15, 0, 0, 0, time.UTC)
	points := []TrendPoint{
		{Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), Count: 12},
		{Date: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), Count: 4},
	}

	labels, counts := fillTrendWindow(points, now)

	if len(labels) != trendWindowDays || len(counts) != trendWindowDays {
		t.Fatalf("expected %d days, got %d labels / %d counts", trendWindowDays, len(labels), len(counts))
	}
	if labels[0] != "Jun 1" || labels[6] != "Jun 7" {
		t.Fatalf("unexpected window bounds %q .. %q", labels[0], labels[6])
	}
	want := []int{0, 0, 0, 0, 12, 0, 4}
	for i, count := range counts {
		if count != want[i] {
			t.Fatalf("day %d: got %d, want %d", i, count, want[i])
		}
	}
}

func TestRenderTrendsProducesChartHTML(t *testing.T) {
	r := NewChartRenderer()
	now := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	html, err := r.RenderTrends([]TrendPoint{{Date: now, Count: 3}}, now)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "echarts") {
		t.Fatalf("expected echarts markup in output")
	}
}

func TestRenderIntentsUsesDisplayLabels(t *testing.T) {
	r := NewChartRenderer(WithChartCache(nil))
	html, err := r.RenderIntents([]IntentCount{{Intent: "health_tips", Count: 9}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Health Tips") {
		t.Fatalf("expected prettified intent label in chart data")
	}
}

func TestRenderFeedbackClampsNegative(t *testing.T) {
	r := NewChartRenderer(WithChartCache(nil))
	if _, err := r.RenderFeedback(10, -2); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestChartCacheServesRepeatRenders(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}

	first, err := cache.GetOrRender("k", render)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := cache.GetOrRender("k", render)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Fatalf("cache returned different content")
	}
	if calls != 1 {
		t.Fatalf("expected one render, got %d", calls)
	}
}

func TestChartCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, _ = cache.GetOrRender("k", render)
	_, _ = cache.GetOrRender("k", render)
	if calls != 2 {
		t.Fatalf("expected cache disabled with zero ttl, got %d renders", calls)
	}
}
