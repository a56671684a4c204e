package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/healthdesk/admin-console/components/console"
	"github.com/healthdesk/admin-console/pkg/session"
)

// ErrUnauthorized is returned when the backend rejects the session token.
// It aliases the console sentinel so the engine can treat it as session
// invalidation.
var ErrUnauthorized = console.ErrUnauthorized

// StatusError carries a non-2xx response that is not an auth failure.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("adminapi: remote error %d: %s", e.Code, e.Body)
}

// Config configures the HTTP admin API client.
type Config struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HTTPClient talks to the chatbot backend's admin REST endpoints.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
}

// NewHTTPClient builds a client for the admin API.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("adminapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		tokens:  cfg.Tokens,
		client:  httpClient,
	}, nil
}

var (
	_ console.StatsRepository     = (*HTTPClient)(nil)
	_ console.UserRepository      = (*HTTPClient)(nil)
	_ console.FeedbackRepository  = (*HTTPClient)(nil)
	_ console.KnowledgeRepository = (*HTTPClient)(nil)
	_ console.QueryRepository     = (*HTTPClient)(nil)
	_ console.ActivityRepository  = (*HTTPClient)(nil)
	_ session.Authenticator       = (*HTTPClient)(nil)
)

// Repositories bundles the client into per-section repositories for the engine.
func (c *HTTPClient) Repositories() console.Repositories {
	return console.Repositories{
		Stats:      c,
		Users:      c,
		Feedback:   c,
		Knowledge:  c,
		Queries:    c,
		Activities: c,
	}
}

// SignIn implements session.Authenticator against the signin endpoint.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (session.Credentials, error) {
	req := loginRequest{Email: email, Password: password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/signin", req, &resp); err != nil {
		return session.Credentials{}, err
	}
	return session.Credentials{
		Token:    resp.Token,
		Username: resp.Username,
		Role:     resp.Role,
	}, nil
}

// FetchDashboardStats implements console.StatsRepository.
func (c *HTTPClient) FetchDashboardStats(ctx context.Context) (console.DashboardSnapshot, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil, &resp); err != nil {
		return console.DashboardSnapshot{}, err
	}
	return resp.toSnapshot(), nil
}

// FetchUsers implements console.UserRepository.
func (c *HTTPClient) FetchUsers(ctx context.Context) ([]console.User, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	users := make([]console.User, len(resp.Users))
	for i, record := range resp.Users {
		users[i] = record.toUser()
	}
	return users, nil
}

// UpdateUser implements console.UserRepository.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, patch console.UserPatch) error {
	req := userPatchRequest{Role: patch.Role, Active: patch.Active}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id), req, nil)
}

// FetchFeedback implements console.FeedbackRepository.
func (c *HTTPClient) FetchFeedback(ctx context.Context) ([]console.FeedbackEntry, error) {
	var resp feedbackResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/feedback", nil, &resp); err != nil {
		return nil, err
	}
	entries := make([]console.FeedbackEntry, len(resp.Feedback))
	for i, record := range resp.Feedback {
		entries[i] = record.toEntry()
	}
	return entries, nil
}

// FetchKnowledgeBase implements console.KnowledgeRepository.
func (c *HTTPClient) FetchKnowledgeBase(ctx context.Context) ([]console.KnowledgeEntry, error) {
	var resp knowledgeResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/knowledge-base", nil, &resp); err != nil {
		return nil, err
	}
	entries := make([]console.KnowledgeEntry, len(resp.Entries))
	for i, record := range resp.Entries {
		entries[i] = record.toEntry()
	}
	return entries, nil
}

// CreateKnowledgeEntry implements console.KnowledgeRepository.
func (c *HTTPClient) CreateKnowledgeEntry(ctx context.Context, input console.KnowledgeEntryInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/knowledge-base", knowledgeInputRequest(input), nil)
}

// UpdateKnowledgeEntry implements console.KnowledgeRepository.
func (c *HTTPClient) UpdateKnowledgeEntry(ctx context.Context, id int, patch console.KnowledgeEntryPatch) error {
	req := knowledgePatchRequest{
		Category: patch.Category,
		Title:    patch.Title,
		Content:  patch.Content,
		Language: patch.Language,
		Tags:     patch.Tags,
		Source:   patch.Source,
		Active:   patch.Active,
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/knowledge-base/%d", id), req, nil)
}

// DeleteKnowledgeEntry implements console.KnowledgeRepository.
func (c *HTTPClient) DeleteKnowledgeEntry(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/knowledge-base/%d", id), nil, nil)
}

// FetchQueries implements console.QueryRepository. A limit of zero requests
// the backend's default page size.
func (c *HTTPClient) FetchQueries(ctx context.Context, limit int) (console.QueryPage, error) {
	path := "/api/admin/queries"
	if limit > 0 {
		path = fmt.Sprintf("%s?per_page=%d", path, limit)
	}
	var resp queriesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return console.QueryPage{}, err
	}
	queries := make([]console.QueryRecord, len(resp.Queries))
	for i, record := range resp.Queries {
		queries[i] = record.toRecord()
	}
	return console.QueryPage{Queries: queries, Total: resp.Total}, nil
}

// FetchActivities implements console.ActivityRepository.
func (c *HTTPClient) FetchActivities(ctx context.Context) ([]console.ActivityEntry, error) {
	var resp activitiesResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/activities", nil, &resp); err != nil {
		return nil, err
	}
	entries := make([]console.ActivityEntry, len(resp.Activities))
	for i, record := range resp.Activities {
		entries[i] = record.toEntry()
	}
	return entries, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("adminapi: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("adminapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("adminapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("adminapi: remote error 401: %w", ErrUnauthorized)
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: buf.String()}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("adminapi: decode response: %w", err)
	}
	return nil
}
