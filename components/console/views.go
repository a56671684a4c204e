package console

// RegionView is the fully materialized content of one section's region. Every
// successful load replaces the previous view wholesale, so rendering the same
// backend response twice yields identical views.
type RegionView struct {
	Section  Section      `json:"section"`
	Status   RegionStatus `json:"status"`
	Counters []Counter    `json:"counters,omitempty"`
	Summary  string       `json:"summary,omitempty"`
	Table    Table        `json:"table"`
	Charts   []ChartView  `json:"charts,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Counter is a single stat card value.
type Counter struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Subtext string `json:"subtext,omitempty"`
}

// Table holds the column headers and formatted rows for a region.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Empty   string   `json:"empty,omitempty"`
}

// Row is one formatted table row. Key carries the backend identifier for rows
// that expose mutations (user id, knowledge entry id).
type Row struct {
	Key   string `json:"key,omitempty"`
	Cells []Cell `json:"cells"`
	Error bool   `json:"error,omitempty"`
}

// Cell is one formatted value. Title holds the untruncated text for hover
// display when the visible text was cut.
type Cell struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// ChartView is a rendered chart ready for embedding.
type ChartView struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}
