package adminapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/healthdesk/admin-console/components/console"
)

// apiTime tolerates the timestamp formats the backend emits: RFC 3339 with or
// without zone, and plain date. Null and empty values decode to a zero time.
type apiTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("adminapi: parse time %q", raw)
}

func (t apiTime) ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	clone := t.Time
	return &clone
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type trendPoint struct {
	Date  apiTime `json:"date"`
	Count int     `json:"count"`
}

type intentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

type statsResponse struct {
	TotalUsers              int              `json:"total_users"`
	ActiveUsers             int              `json:"active_users"`
	TotalQueries            int              `json:"total_queries"`
	HealthTopics            int              `json:"health_topics"`
	TotalConversations      int              `json:"total_conversations"`
	PositiveFeedbackPercent float64          `json:"positive_feedback_percentage"`
	PositiveFeedbackCount   int              `json:"positive_feedback_count"`
	TotalFeedbackCount      int              `json:"total_feedback_count"`
	QueryTrends             []trendPoint     `json:"query_trends"`
	TopIntents              []intentCount    `json:"top_intents"`
	RecentActivities        []activityRecord `json:"recent_activities"`
}

func (r statsResponse) toSnapshot() console.DashboardSnapshot {
	trends := make([]console.TrendPoint, len(r.QueryTrends))
	for i, point := range r.QueryTrends {
		trends[i] = console.TrendPoint{Date: point.Date.Time, Count: point.Count}
	}
	intents := make([]console.IntentCount, len(r.TopIntents))
	for i, intent := range r.TopIntents {
		intents[i] = console.IntentCount{Intent: intent.Intent, Count: intent.Count}
	}
	activities := make([]console.ActivityEntry, len(r.RecentActivities))
	for i, record := range r.RecentActivities {
		activities[i] = record.toEntry()
	}
	return console.DashboardSnapshot{
		TotalUsers:              r.TotalUsers,
		ActiveUsers:             r.ActiveUsers,
		TotalQueries:            r.TotalQueries,
		HealthTopics:            r.HealthTopics,
		TotalConversations:      r.TotalConversations,
		PositiveFeedbackPercent: r.PositiveFeedbackPercent,
		PositiveFeedbackCount:   r.PositiveFeedbackCount,
		TotalFeedbackCount:      r.TotalFeedbackCount,
		QueryTrends:             trends,
		TopIntents:              intents,
		RecentActivities:        activities,
	}
}

type userRecord struct {
	ID                 int     `json:"id"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	AgeGroup           string  `json:"age_group"`
	PreferredLanguage  string  `json:"preferred_language"`
	ConversationsCount int     `json:"conversations_count"`
	MessagesCount      int     `json:"messages_count"`
	Role               string  `json:"role"`
	Active             bool    `json:"is_active"`
	CreatedAt          apiTime `json:"created_at"`
	LastLogin          apiTime `json:"last_login"`
}

func (r userRecord) toUser() console.User {
	return console.User{
		ID:                 r.ID,
		Username:           r.Username,
		Email:              r.Email,
		AgeGroup:           r.AgeGroup,
		PreferredLanguage:  r.PreferredLanguage,
		ConversationsCount: r.ConversationsCount,
		MessagesCount:      r.MessagesCount,
		Role:               r.Role,
		Active:             r.Active,
		CreatedAt:          r.CreatedAt.Time,
		LastLogin:          r.LastLogin.ptr(),
	}
}

type usersResponse struct {
	Users []userRecord `json:"users"`
}

type userPatchRequest struct {
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"is_active,omitempty"`
}

type feedbackRecord struct {
	UserEmail string  `json:"user_email"`
	Message   string  `json:"message"`
	Rating    string  `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt apiTime `json:"created_at"`
}

func (r feedbackRecord) toEntry() console.FeedbackEntry {
	return console.FeedbackEntry{
		UserEmail: r.UserEmail,
		Message:   r.Message,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
	}
}

type feedbackResponse struct {
	Feedback []feedbackRecord `json:"feedback"`
}

type knowledgeRecord struct {
	ID        int      `json:"id"`
	Category  string   `json:"category"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Language  string   `json:"language"`
	Tags      []string `json:"tags"`
	Source    string   `json:"source"`
	Active    bool     `json:"is_active"`
	CreatedBy string   `json:"created_by"`
	CreatedAt apiTime  `json:"created_at"`
}

func (r knowledgeRecord) toEntry() console.KnowledgeEntry {
	return console.KnowledgeEntry{
		ID:        r.ID,
		Category:  r.Category,
		Title:     r.Title,
		Content:   r.Content,
		Language:  r.Language,
		Tags:      append([]string(nil), r.Tags...),
		Source:    r.Source,
		Active:    r.Active,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt.Time,
	}
}

type knowledgeResponse struct {
	Entries []knowledgeRecord `json:"knowledge_base"`
}

type knowledgeInputRequest struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Language string   `json:"language,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Source   string   `json:"source,omitempty"`
	Active   bool     `json:"is_active"`
}

type knowledgePatchRequest struct {
	Category *string   `json:"category,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Language *string   `json:"language,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Source   *string   `json:"source,omitempty"`
	Active   *bool     `json:"is_active,omitempty"`
}

type queryRecord struct {
	UserEmail      string   `json:"user_email"`
	Message        string   `json:"message"`
	Intent         string   `json:"intent"`
	Confidence     *float64 `json:"confidence"`
	Timestamp      apiTime  `json:"timestamp"`
	ConversationID int      `json:"conversation_id"`
}

func (r queryRecord) toRecord() console.QueryRecord {
	return console.QueryRecord{
		UserEmail:      r.UserEmail,
		Message:        r.Message,
		Intent:         r.Intent,
		Confidence:     r.Confidence,
		Timestamp:      r.Timestamp.Time,
		ConversationID: r.ConversationID,
	}
}

type queriesResponse struct {
	Queries []queryRecord `json:"queries"`
	Total   int           `json:"total"`
}

type activityRecord struct {
	AdminName   string  `json:"admin_name"`
	Action      string  `json:"action"`
	Description string  `json:"description"`
	IPAddress   string  `json:"ip_address"`
	CreatedAt   apiTime `json:"created_at"`
}

func (r activityRecord) toEntry() console.ActivityEntry {
	return console.ActivityEntry{
		AdminName:   r.AdminName,
		Action:      r.Action,
		Description: r.Description,
		IPAddress:   r.IPAddress,
		CreatedAt:   r.CreatedAt.Time,
	}
}

type activitiesResponse struct {
	Activities []activityRecord `json:"activities"`
}
