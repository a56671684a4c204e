package console

import (
	"context"
	"time"
)

// Section identifies one named view of the admin console. The enumeration is
// closed: the engine ignores section values it does not know about.
type Section string

const (
	SectionDashboard  Section = "dashboard"
	SectionUsers      Section = "users"
	SectionFeedback   Section = "feedback"
	SectionKnowledge  Section = "knowledge"
	SectionQueries    Section = "queries"
	SectionActivities Section = "activities"
)

// Sections returns the known sections in navigation order.
func Sections() []Section {
	return []Section{
		SectionDashboard,
		SectionUsers,
		SectionFeedback,
		SectionKnowledge,
		SectionQueries,
		SectionActivities,
	}
}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionDashboard, SectionUsers, SectionFeedback, SectionKnowledge, SectionQueries, SectionActivities:
		return true
	}
	return false
}

// RegionStatus tracks the lifecycle of a section's region. Loading is the only
// state with a fetch in flight; Rendered and Errored hold until the next trigger.
type RegionStatus int

const (
	RegionIdle RegionStatus = iota
	RegionLoading
	RegionRendered
	RegionErrored
)

// MarshalJSON encodes the status by name so transport payloads stay readable.
func (s RegionStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s RegionStatus) String() string {
	switch s {
	case RegionLoading:
		return "loading"
	case RegionRendered:
		return "rendered"
	case RegionErrored:
		return "errored"
	default:
		return "idle"
	}
}

// DashboardSnapshot aggregates the counters, trend series, and intent ranking
// returned by the stats endpoint. Snapshots fully replace one another; they are
// never merged.
type DashboardSnapshot struct {
	TotalUsers              int
	ActiveUsers             int
	TotalQueries            int
	HealthTopics            int
	TotalConversations      int
	PositiveFeedbackPercent float64
	PositiveFeedbackCount   int
	TotalFeedbackCount      int
	QueryTrends             []TrendPoint
	TopIntents              []IntentCount
	RecentActivities        []ActivityEntry
}

// TrendPoint is one day of query volume.
type TrendPoint struct {
	Date  time.Time
	Count int
}

// IntentCount ranks a detected intent by query volume.
type IntentCount struct {
	Intent string
	Count  int
}

// User is a chatbot end user as listed by the admin API.
type User struct {
	ID                 int
	Username           string
	Email              string
	AgeGroup           string
	PreferredLanguage  string
	ConversationsCount int
	MessagesCount      int
	Role               string
	Active             bool
	CreatedAt          time.Time
	LastLogin          *time.Time
}

// UserPatch is a partial update to a user's role or active flag. Nil fields
// are left untouched by the backend.
type UserPatch struct {
	Role   *string
	Active *bool
}

// FeedbackEntry is one rating left on a chatbot answer.
type FeedbackEntry struct {
	UserEmail string
	Message   string
	Rating    string
	Comment   string
	CreatedAt time.Time
}

// KnowledgeEntry is one curated health-information article.
type KnowledgeEntry struct {
	ID        int
	Category  string
	Title     string
	Content   string
	Language  string
	Tags      []string
	Source    string
	Active    bool
	CreatedBy string
	CreatedAt time.Time
}

// KnowledgeEntryInput carries the fields for creating a knowledge entry.
type KnowledgeEntryInput struct {
	Category string
	Title    string
	Content  string
	Language string
	Tags     []string
	Source   string
	Active   bool
}

// KnowledgeEntryPatch is a partial update; nil fields are left untouched.
type KnowledgeEntryPatch struct {
	Category *string
	Title    *string
	Content  *string
	Language *string
	Tags     *[]string
	Source   *string
	Active   *bool
}

// QueryRecord is one user query with its detected intent.
type QueryRecord struct {
	UserEmail      string
	Message        string
	Intent         string
	Confidence     *float64
	Timestamp      time.Time
	ConversationID int
}

// QueryPage wraps a page of queries plus the backend's total count.
type QueryPage struct {
	Queries []QueryRecord
	Total   int
}

// ActivityEntry is one admin audit-log row.
type ActivityEntry struct {
	AdminName   string
	Action      string
	Description string
	IPAddress   string
	CreatedAt   time.Time
}

// StatsRepository loads the dashboard snapshot.
type StatsRepository interface {
	FetchDashboardStats(ctx context.Context) (DashboardSnapshot, error)
}

// UserRepository lists users and applies partial updates.
type UserRepository interface {
	FetchUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id int, patch UserPatch) error
}

// FeedbackRepository lists chat feedback.
type FeedbackRepository interface {
	FetchFeedback(ctx context.Context) ([]FeedbackEntry, error)
}

// KnowledgeRepository manages knowledge-base entries.
type KnowledgeRepository interface {
	FetchKnowledgeBase(ctx context.Context) ([]KnowledgeEntry, error)
	CreateKnowledgeEntry(ctx context.Context, input KnowledgeEntryInput) error
	UpdateKnowledgeEntry(ctx context.Context, id int, patch KnowledgeEntryPatch) error
	DeleteKnowledgeEntry(ctx context.Context, id int) error
}

// QueryRepository lists user queries. A limit of zero requests the backend's
// default page size.
type QueryRepository interface {
	FetchQueries(ctx context.Context, limit int) (QueryPage, error)
}

// ActivityRepository lists admin audit activity.
type ActivityRepository interface {
	FetchActivities(ctx context.Context) ([]ActivityEntry, error)
}

// Repositories bundles the per-section data sources consumed by the engine.
type Repositories struct {
	Stats      StatsRepository
	Users      UserRepository
	Feedback   FeedbackRepository
	Knowledge  KnowledgeRepository
	Queries    QueryRepository
	Activities ActivityRepository
}

// Confirmer approves destructive actions before any request is sent. A false
// result aborts the action without error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// RegionEvent describes a region transition that transports might care about.
type RegionEvent struct {
	Section Section      `json:"section"`
	Status  RegionStatus `json:"status"`
	Reason  string       `json:"reason"`
}

// RefreshHook notifies transports (SSE/WebSocket) about region changes.
type RefreshHook interface {
	RegionUpdated(ctx context.Context, event RegionEvent) error
}
