package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRuneSafe(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short untouched", "hello", 50, "hello"},
		{"exact limit untouched", "abcde", 5, "abcde"},
		{"cut with ellipsis", "abcdef", 5, "abcde..."},
		{"multibyte not split", "héllo wörld çafé", 7, "héllo w..."},
		{"zero limit passthrough", "anything", 0, "anything"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPreviewKeepsFullTextInTitle(t *testing.T) {
	long := "this message is definitely longer than the fifty rune preview budget allowed"
	cell := preview(long, previewShort)
	if cell.Title != long {
		t.Fatalf("expected full text in title, got %q", cell.Title)
	}
	if len([]rune(cell.Text)) != previewShort+3 {
		t.Fatalf("unexpected preview length %d", len([]rune(cell.Text)))
	}

	short := preview("short", previewShort)
	if short.Title != "" {
		t.Fatalf("short values must not carry a hover title")
	}
}

func TestCountUsesLocaleGrouping(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "1,000", f.Count(1000))
	assert.Equal(t, "12", f.Count(12))
	assert.Equal(t, "1,234,567", f.Count(1234567))
}

func TestFormatterFallsBackToEnglish(t *testing.T) {
	f := NewFormatter("not-a-locale")
	assert.Equal(t, "1,000", f.Count(1000))
}

func TestPercentDropsTrailingZeros(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "87%", f.Percent(87))
	assert.Equal(t, "86.5%", f.Percent(86.5))
}

func TestConfidence(t *testing.T) {
	f := NewFormatter("en")
	v := 0.935
	assert.Equal(t, "93.5%", f.Confidence(&v))
	assert.Equal(t, "N/A", f.Confidence(nil))
}

func TestTimeAgo(t *testing.T) {
	f := NewFormatter("en")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", f.TimeAgo(now.Add(-20*time.Second), now))
	assert.Equal(t, "5m ago", f.TimeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", f.TimeAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", f.TimeAgo(now.Add(-49*time.Hour), now))
}

func TestPrettyIntent(t *testing.T) {
	assert.Equal(t, "Health Tips", prettyIntent("health_tips"))
	assert.Equal(t, "General", prettyIntent(""))
	assert.Equal(t, "General", prettyIntent("  "))
}

func TestOptionalDate(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "Never", f.OptionalDate(nil, placeholderNever))
	when := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "3/10/2024", f.OptionalDate(&when, placeholderNever))
}
