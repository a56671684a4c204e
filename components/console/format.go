package console

import (
	"strconv"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fixed placeholders rendered for missing optional fields.
const (
	placeholderNotSet    = "Not set"
	placeholderNever     = "Never"
	placeholderNA        = "N/A"
	placeholderNoComment = "No comment"
)

// Truncation budgets in runes. Message bodies and descriptions get the short
// budget, knowledge content the long one.
const (
	previewShort = 50
	previewLong  = 100
)

// Formatter renders numbers and dates for the console locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for the given BCP 47 locale. Unparseable or
// empty locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Count formats an integer with locale-aware grouping ("1,000").
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Percent formats a percentage without superfluous trailing zeros ("87%",
// "86.5%").
func (f *Formatter) Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Confidence formats an intent confidence in [0,1] as "93.5%"; nil renders the
// fixed placeholder.
func (f *Formatter) Confidence(v *float64) string {
	if v == nil {
		return placeholderNA
	}
	return strconv.FormatFloat(*v*100, 'f', 1, 64) + "%"
}

// Date renders a locale date string.
func (f *Formatter) Date(t time.Time) string {
	return t.Format("1/2/2006")
}

// DateTime renders a locale date/time string.
func (f *Formatter) DateTime(t time.Time) string {
	return t.Format("1/2/2006, 3:04:05 PM")
}

// OptionalDate renders a date or the given placeholder when t is nil.
func (f *Formatter) OptionalDate(t *time.Time, placeholder string) string {
	if t == nil {
		return placeholder
	}
	return f.Date(*t)
}

// ShortDay renders a trend axis label ("Jan 1").
func (f *Formatter) ShortDay(t time.Time) string {
	return t.Format("Jan 2")
}

// TimeAgo renders a compact relative timestamp for activity feeds.
func (f *Formatter) TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	}
}

// Truncate cuts s to at most limit runes, appending an ellipsis when anything
// was removed. Cuts never split a multi-byte character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// preview builds a cell holding the truncated text with the full value kept in
// the hover title. Short values carry no title.
func preview(s string, limit int) Cell {
	truncated := Truncate(s, limit)
	if truncated == s {
		return Cell{Text: s}
	}
	return Cell{Text: truncated, Title: s}
}

// prettyIntent turns a raw intent code into a display label
// ("health_tips" -> "Health Tips"); empty intents render as General.
func prettyIntent(intent string) string {
	if strings.TrimSpace(intent) == "" {
		return "General"
	}
	return strcase.ToCase(intent, strcase.TitleCase, ' ')
}

// prettyCategory uppercases a category code for table display.
func prettyCategory(category string) string {
	return strings.ToUpper(strings.ReplaceAll(category, "_", " "))
}

// languageLabel uppercases a language code, defaulting to EN.
func languageLabel(code string) string {
	if code == "" {
		return "EN"
	}
	return strings.ToUpper(code)
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
