package console

import (
	"context"
	"fmt"
	"strconv"
)

var (
	userColumns = []string{
		"Username", "Email", "Age Group", "Language", "Conversations",
		"Messages", "Role", "Status", "Last Login",
	}
	feedbackColumns  = []string{"User", "Message", "Rating", "Comment", "Date"}
	knowledgeColumns = []string{"Category", "Title", "Content", "Language", "Status", "Created By"}
	queryColumns     = []string{"User", "Message", "Intent", "Confidence", "Time", "Conversation"}
	activityColumns  = []string{"Admin", "Action", "Description", "IP Address", "Time"}
	recentColumns    = []string{"Admin", "Action", "When"}
)

func ratingLabel(rating string) string {
	if rating == "positive" {
		return "Positive"
	}
	return "Negative"
}

func (e *Engine) buildDashboardView(ctx context.Context, snap DashboardSnapshot) RegionView {
	f := e.formatter
	view := RegionView{
		Section: SectionDashboard,
		Status:  RegionRendered,
		Counters: []Counter{
			{Label: "Total Users", Value: f.Count(snap.TotalUsers), Subtext: f.Count(snap.ActiveUsers) + " active"},
			{Label: "Total Queries", Value: f.Count(snap.TotalQueries), Subtext: f.Count(snap.TotalConversations) + " conversations"},
			{Label: "Health Topics", Value: f.Count(snap.HealthTopics)},
			{Label: "Positive Feedback", Value: f.Percent(snap.PositiveFeedbackPercent), Subtext: f.Count(snap.TotalFeedbackCount) + " ratings"},
		},
		Table: Table{Columns: recentColumns, Empty: "No recent activity"},
	}
	now := e.now()
	for _, entry := range snap.RecentActivities {
		view.Table.Rows = append(view.Table.Rows, Row{Cells: []Cell{
			{Text: entry.AdminName},
			{Text: entry.Action},
			{Text: f.TimeAgo(entry.CreatedAt, now)},
		}})
	}
	view.Charts = e.buildDashboardCharts(ctx, snap)
	return view
}

func (e *Engine) buildDashboardCharts(ctx context.Context, snap DashboardSnapshot) []ChartView {
	if e.charts == nil {
		return nil
	}
	var views []ChartView
	if html, err := e.charts.RenderTrends(snap.QueryTrends, e.now()); err == nil {
		views = append(views, ChartView{Code: "query_trends", Title: "Query Trends", HTML: html})
	} else {
		e.telemetry.Record(ctx, "console.chart.render_error", map[string]any{"chart": "query_trends", "error": err.Error()})
	}
	if html, err := e.charts.RenderIntents(snap.TopIntents); err == nil {
		views = append(views, ChartView{Code: "top_intents", Title: "Top Intents", HTML: html})
	} else {
		e.telemetry.Record(ctx, "console.chart.render_error", map[string]any{"chart": "top_intents", "error": err.Error()})
	}
	negative := snap.TotalFeedbackCount - snap.PositiveFeedbackCount
	if html, err := e.charts.RenderFeedback(snap.PositiveFeedbackCount, negative); err == nil {
		views = append(views, ChartView{Code: "feedback_split", Title: "Feedback", HTML: html})
	} else {
		e.telemetry.Record(ctx, "console.chart.render_error", map[string]any{"chart": "feedback_split", "error": err.Error()})
	}
	return views
}

func (e *Engine) buildUsersView(users []User) RegionView {
	f := e.formatter
	view := RegionView{
		Section: SectionUsers,
		Status:  RegionRendered,
		Summary: fmt.Sprintf("Total: %d users", len(users)),
		Table:   Table{Columns: userColumns, Empty: "No users yet"},
	}
	for _, user := range users {
		view.Table.Rows = append(view.Table.Rows, Row{
			Key: strconv.Itoa(user.ID),
			Cells: []Cell{
				{Text: user.Username},
				{Text: user.Email},
				{Text: orPlaceholder(user.AgeGroup, placeholderNotSet)},
				{Text: languageLabel(user.PreferredLanguage)},
				{Text: f.Count(user.ConversationsCount)},
				{Text: f.Count(user.MessagesCount)},
				{Text: user.Role},
				{Text: statusLabel(user.Active)},
				{Text: f.OptionalDate(user.LastLogin, placeholderNever)},
			},
		})
	}
	return view
}

func (e *Engine) buildFeedbackView(entries []FeedbackEntry) RegionView {
	f := e.formatter
	positive := 0
	for _, entry := range entries {
		if entry.Rating == "positive" {
			positive++
		}
	}
	percent := 0
	if len(entries) > 0 {
		percent = int(float64(positive)/float64(len(entries))*100 + 0.5)
	}
	view := RegionView{
		Section: SectionFeedback,
		Status:  RegionRendered,
		Summary: fmt.Sprintf("%d%% Positive (%d/%d feedbacks)", percent, positive, len(entries)),
		Table:   Table{Columns: feedbackColumns, Empty: "No feedback yet"},
	}
	for _, entry := range entries {
		view.Table.Rows = append(view.Table.Rows, Row{Cells: []Cell{
			{Text: entry.UserEmail},
			preview(entry.Message, previewShort),
			{Text: ratingLabel(entry.Rating)},
			{Text: orPlaceholder(entry.Comment, placeholderNoComment)},
			{Text: f.Date(entry.CreatedAt)},
		}})
	}
	return view
}

func (e *Engine) buildKnowledgeView(entries []KnowledgeEntry) RegionView {
	view := RegionView{
		Section: SectionKnowledge,
		Status:  RegionRendered,
		Summary: fmt.Sprintf("%d entries", len(entries)),
		Table:   Table{Columns: knowledgeColumns, Empty: "No knowledge base entries yet"},
	}
	for _, entry := range entries {
		view.Table.Rows = append(view.Table.Rows, Row{
			Key: strconv.Itoa(entry.ID),
			Cells: []Cell{
				{Text: prettyCategory(entry.Category)},
				{Text: entry.Title},
				preview(entry.Content, previewLong),
				{Text: languageLabel(entry.Language)},
				{Text: statusLabel(entry.Active)},
				{Text: orPlaceholder(entry.CreatedBy, "System")},
			},
		})
	}
	return view
}

func (e *Engine) buildQueriesView(page QueryPage) RegionView {
	f := e.formatter
	view := RegionView{
		Section: SectionQueries,
		Status:  RegionRendered,
		Summary: fmt.Sprintf("Showing %d of %d queries", len(page.Queries), page.Total),
		Table:   Table{Columns: queryColumns, Empty: "No queries yet"},
	}
	for _, query := range page.Queries {
		view.Table.Rows = append(view.Table.Rows, Row{Cells: []Cell{
			{Text: query.UserEmail},
			preview(query.Message, previewShort),
			{Text: prettyIntent(query.Intent)},
			{Text: f.Confidence(query.Confidence)},
			{Text: f.DateTime(query.Timestamp)},
			{Text: "#" + strconv.Itoa(query.ConversationID)},
		}})
	}
	return view
}

func (e *Engine) buildActivitiesView(entries []ActivityEntry) RegionView {
	f := e.formatter
	view := RegionView{
		Section: SectionActivities,
		Status:  RegionRendered,
		Summary: fmt.Sprintf("Showing %d activities", len(entries)),
		Table:   Table{Columns: activityColumns, Empty: "No activity yet"},
	}
	for _, entry := range entries {
		view.Table.Rows = append(view.Table.Rows, Row{Cells: []Cell{
			{Text: entry.AdminName},
			{Text: entry.Action},
			preview(entry.Description, previewShort),
			{Text: orPlaceholder(entry.IPAddress, placeholderNA)},
			{Text: f.DateTime(entry.CreatedAt)},
		}})
	}
	return view
}

// errorRow builds the single inline row shown when a table load fails.
func errorRow(msg string) Row {
	return Row{Error: true, Cells: []Cell{{Text: msg}}}
}

// sectionColumns returns the table header for a section so error views keep
// the region's shape.
func sectionColumns(section Section) []string {
	switch section {
	case SectionUsers:
		return userColumns
	case SectionFeedback:
		return feedbackColumns
	case SectionKnowledge:
		return knowledgeColumns
	case SectionQueries:
		return queryColumns
	case SectionActivities:
		return activityColumns
	default:
		return recentColumns
	}
}
