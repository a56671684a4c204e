package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	defaultRefreshInterval = 30 * time.Second
	defaultFetchTimeout    = 10 * time.Second
)

var (
	// ErrUnauthorized marks a backend rejection of the session token. The
	// engine treats it as session invalidation rather than a generic failure.
	ErrUnauthorized = errors.New("console: unauthorized")

	errMissingRepository = errors.New("console: repository not configured")
)

// ActivityRecorder mirrors admin mutations into an audit trail.
type ActivityRecorder interface {
	RecordAction(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) error
}

type noopActivityRecorder struct{}

func (noopActivityRecorder) RecordAction(context.Context, string, string, string, map[string]any) error {
	return nil
}

// Options configures the console Engine. Every collaborator is provided via
// interface so applications can swap implementations without importing
// transport or client packages.
type Options struct {
	Repos           Repositories
	Notifier        Notifier
	Telemetry       Telemetry
	RefreshHook     RefreshHook
	Charts          *ChartRenderer
	Validator       EntryValidator
	Confirmer       Confirmer
	Activity        ActivityRecorder
	Locale          string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	// SessionInvalidated runs when any fetch reports ErrUnauthorized, so the
	// host can clear the stored token and force a fresh sign-in.
	SessionInvalidated func(ctx context.Context)
	Now                func() time.Time
}

// Engine synchronizes backend state into per-section region views. One region
// exists per section; every trigger moves it Idle/Rendered/Errored -> Loading
// and back, and responses apply in issue order (latest wins).
type Engine struct {
	repos              Repositories
	notifier           Notifier
	telemetry          Telemetry
	refreshHook        RefreshHook
	charts             *ChartRenderer
	validator          EntryValidator
	confirmer          Confirmer
	activity           ActivityRecorder
	formatter          *Formatter
	interval           time.Duration
	fetchTimeout       time.Duration
	sessionInvalidated func(ctx context.Context)
	now                func() time.Time

	mu      sync.Mutex
	active  Section
	regions map[Section]*regionState
}

type regionState struct {
	status   RegionStatus
	issued   uint64
	applied  uint64
	inflight int
	view     RegionView
}

// NewEngine builds an Engine with safe defaults.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		repos:              opts.Repos,
		notifier:           opts.Notifier,
		telemetry:          normalizeTelemetry(opts.Telemetry),
		refreshHook:        opts.RefreshHook,
		charts:             opts.Charts,
		validator:          opts.Validator,
		confirmer:          opts.Confirmer,
		activity:           opts.Activity,
		formatter:          NewFormatter(opts.Locale),
		interval:           opts.RefreshInterval,
		fetchTimeout:       opts.FetchTimeout,
		sessionInvalidated: opts.SessionInvalidated,
		now:                opts.Now,
		active:             SectionDashboard,
		regions:            make(map[Section]*regionState, len(Sections())),
	}
	if e.notifier == nil {
		e.notifier = noopNotifier{}
	}
	if e.refreshHook == nil {
		e.refreshHook = noopRefreshHook{}
	}
	if e.charts == nil {
		e.charts = NewChartRenderer()
	}
	if e.validator == nil {
		e.validator = NewJSONSchemaValidator()
	}
	if e.confirmer == nil {
		e.confirmer = approveAllConfirmer{}
	}
	if e.activity == nil {
		e.activity = noopActivityRecorder{}
	}
	if e.interval <= 0 {
		e.interval = defaultRefreshInterval
	}
	if e.fetchTimeout <= 0 {
		e.fetchTimeout = defaultFetchTimeout
	}
	if e.now == nil {
		e.now = time.Now
	}
	for _, section := range Sections() {
		e.regions[section] = &regionState{view: RegionView{
			Section: section,
			Status:  RegionIdle,
			Table:   Table{Columns: sectionColumns(section)},
		}}
	}
	return e
}

// ActiveSection returns the currently visible section.
func (e *Engine) ActiveSection() Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// View returns the current region view for a section without triggering a
// load. Unknown sections yield an idle view.
func (e *Engine) View(section Section) RegionView {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rs, ok := e.regions[section]; ok {
		return rs.view
	}
	return RegionView{Section: section, Status: RegionIdle}
}

// SetActiveSection switches the visible section and triggers its load.
// Switching to the already-active section just refreshes it; unknown targets
// are a no-op.
func (e *Engine) SetActiveSection(ctx context.Context, target Section) RegionView {
	if !target.Valid() {
		return e.View(e.ActiveSection())
	}
	e.mu.Lock()
	previous := e.active
	e.active = target
	e.mu.Unlock()
	e.telemetry.Record(ctx, "console.section.switch", map[string]any{
		"from": string(previous),
		"to":   string(target),
	})
	return e.load(ctx, target, "switch", false)
}

// LoadSection runs the fetch-and-render routine for a section. Unknown
// sections are a no-op. Failures never propagate; the region is marked
// errored and an error notice is emitted instead.
func (e *Engine) LoadSection(ctx context.Context, section Section) RegionView {
	return e.load(ctx, section, "load", false)
}

// RunRefreshLoop re-loads the dashboard at the configured interval while it is
// the active section. Ticks that land while a dashboard fetch is still in
// flight are dropped, never queued. Blocks until ctx is canceled.
func (e *Engine) RunRefreshLoop(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.ActiveSection() != SectionDashboard {
				continue
			}
			e.load(ctx, SectionDashboard, "timer", true)
		}
	}
}

// load issues a sequenced fetch for the section's region. dropIfBusy makes
// the trigger yield to an outstanding fetch (timer semantics); otherwise the
// new fetch supersedes it and the older response is discarded on arrival.
func (e *Engine) load(ctx context.Context, section Section, reason string, dropIfBusy bool) RegionView {
	if !section.Valid() {
		return RegionView{Section: section, Status: RegionIdle}
	}

	e.mu.Lock()
	rs := e.regions[section]
	if dropIfBusy && rs.inflight > 0 {
		view := rs.view
		e.mu.Unlock()
		e.telemetry.Record(ctx, "console.region.tick_dropped", map[string]any{"section": string(section)})
		return view
	}
	rs.issued++
	seq := rs.issued
	rs.inflight++
	rs.status = RegionLoading
	e.mu.Unlock()

	e.notifyRegion(ctx, RegionEvent{Section: section, Status: RegionLoading, Reason: reason})

	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	view, err := e.fetch(fetchCtx, section)
	cancel()

	e.mu.Lock()
	rs.inflight--
	if seq < rs.issued || seq <= rs.applied {
		// A newer fetch was issued (or already applied) for this region while
		// this one was outstanding; the stale response must not clobber it.
		view := rs.view
		e.mu.Unlock()
		e.telemetry.Record(ctx, "console.region.stale_drop", map[string]any{
			"section": string(section),
			"seq":     seq,
		})
		return view
	}
	rs.applied = seq
	if err != nil {
		rs.status = RegionErrored
		rs.view = e.buildErrorView(section, rs.view, err)
		view := rs.view
		e.mu.Unlock()
		e.handleLoadError(ctx, section, err)
		e.notifyRegion(ctx, RegionEvent{Section: section, Status: RegionErrored, Reason: reason})
		return view
	}
	rs.status = RegionRendered
	rs.view = view
	e.mu.Unlock()

	e.notifyRegion(ctx, RegionEvent{Section: section, Status: RegionRendered, Reason: reason})
	e.telemetry.Record(ctx, "console.region.rendered", map[string]any{
		"section": string(section),
		"reason":  reason,
	})
	return view
}

func (e *Engine) fetch(ctx context.Context, section Section) (RegionView, error) {
	switch section {
	case SectionDashboard:
		if e.repos.Stats == nil {
			return RegionView{}, fmt.Errorf("%w: stats", errMissingRepository)
		}
		snap, err := e.repos.Stats.FetchDashboardStats(ctx)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildDashboardView(ctx, snap), nil
	case SectionUsers:
		if e.repos.Users == nil {
			return RegionView{}, fmt.Errorf("%w: users", errMissingRepository)
		}
		users, err := e.repos.Users.FetchUsers(ctx)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildUsersView(users), nil
	case SectionFeedback:
		if e.repos.Feedback == nil {
			return RegionView{}, fmt.Errorf("%w: feedback", errMissingRepository)
		}
		entries, err := e.repos.Feedback.FetchFeedback(ctx)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildFeedbackView(entries), nil
	case SectionKnowledge:
		if e.repos.Knowledge == nil {
			return RegionView{}, fmt.Errorf("%w: knowledge", errMissingRepository)
		}
		entries, err := e.repos.Knowledge.FetchKnowledgeBase(ctx)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildKnowledgeView(entries), nil
	case SectionQueries:
		if e.repos.Queries == nil {
			return RegionView{}, fmt.Errorf("%w: queries", errMissingRepository)
		}
		page, err := e.repos.Queries.FetchQueries(ctx, 0)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildQueriesView(page), nil
	case SectionActivities:
		if e.repos.Activities == nil {
			return RegionView{}, fmt.Errorf("%w: activities", errMissingRepository)
		}
		entries, err := e.repos.Activities.FetchActivities(ctx)
		if err != nil {
			return RegionView{}, err
		}
		return e.buildActivitiesView(entries), nil
	default:
		return RegionView{Section: section, Status: RegionIdle}, nil
	}
}

// buildErrorView marks a region errored. Tables show a single inline error
// row; the dashboard keeps its previous counters and charts so stale-but-valid
// data is never wiped by a transient failure.
func (e *Engine) buildErrorView(section Section, previous RegionView, err error) RegionView {
	msg := loadErrorMessage(section)
	if section == SectionDashboard {
		view := previous
		view.Section = section
		view.Status = RegionErrored
		view.Error = msg
		return view
	}
	return RegionView{
		Section: section,
		Status:  RegionErrored,
		Table: Table{
			Columns: sectionColumns(section),
			Rows:    []Row{errorRow(msg)},
		},
		Error: msg,
	}
}

func (e *Engine) handleLoadError(ctx context.Context, section Section, err error) {
	if errors.Is(err, ErrUnauthorized) {
		if e.sessionInvalidated != nil {
			e.sessionInvalidated(ctx)
		}
		e.notifier.Notify(ctx, NewNotice(NoticeError, "Session expired. Please sign in again."))
	} else {
		e.notifier.Notify(ctx, NewNotice(NoticeError, loadErrorMessage(section)))
	}
	e.telemetry.Record(ctx, "console.region.error", map[string]any{
		"section": string(section),
		"error":   err.Error(),
	})
}

func loadErrorMessage(section Section) string {
	switch section {
	case SectionDashboard:
		return "Failed to load dashboard data"
	case SectionUsers:
		return "Failed to load users"
	case SectionFeedback:
		return "Failed to load feedback"
	case SectionKnowledge:
		return "Failed to load knowledge base"
	case SectionQueries:
		return "Failed to load queries"
	case SectionActivities:
		return "Failed to load activities"
	default:
		return "Failed to load data"
	}
}

func (e *Engine) notifyRegion(ctx context.Context, event RegionEvent) {
	if err := e.refreshHook.RegionUpdated(ctx, event); err != nil {
		e.telemetry.Record(ctx, "console.region.hook_error", map[string]any{
			"section": string(event.Section),
			"error":   err.Error(),
		})
	}
}

type noopRefreshHook struct{}

func (noopRefreshHook) RegionUpdated(context.Context, RegionEvent) error { return nil }

// approveAllConfirmer is the default when no interactive confirmer is wired;
// transports are expected to gate destructive requests before they reach the
// engine.
type approveAllConfirmer struct{}

func (approveAllConfirmer) Confirm(context.Context, string) (bool, error) { return true, nil }
