package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/healthdesk/admin-console/components/console"
	"github.com/healthdesk/admin-console/components/console/commands"
	consolerouter "github.com/healthdesk/admin-console/components/console/gorouter"
	"github.com/healthdesk/admin-console/components/console/httpapi"
	"github.com/healthdesk/admin-console/pkg/activity"
	"github.com/healthdesk/admin-console/pkg/adminapi"
	"github.com/healthdesk/admin-console/pkg/session"
)

type cli struct {
	Config string `type:"path" default:"adminctl.yaml" help:"Path to the adminctl YAML config."`

	Serve  serveCmd  `cmd:"" help:"Serve the admin console UI."`
	Login  loginCmd  `cmd:"" help:"Sign in and store the session token."`
	Logout logoutCmd `cmd:"" help:"Drop the stored session token."`
}

type runContext struct {
	Config Config
	Logger *zap.Logger
}

func main() {
	var c cli
	app := kong.Parse(&c,
		kong.Description("Admin console for the health-information chatbot backend."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(c.Config)
	app.FatalIfErrorf(err)

	logger, err := zap.NewProduction()
	app.FatalIfErrorf(err)
	defer logger.Sync() //nolint:errcheck

	err = app.Run(&runContext{Config: cfg, Logger: logger})
	app.FatalIfErrorf(err)
}

// lazyTokens breaks the construction cycle between the API client (which
// needs a token source) and the guard (which needs the client to sign in).
type lazyTokens struct {
	guard *session.Guard
}

func (l *lazyTokens) Token() (string, bool) {
	if l.guard == nil {
		return "", false
	}
	return l.guard.Token()
}

func buildSession(cfg Config) (*adminapi.HTTPClient, *session.Guard, error) {
	tokens := &lazyTokens{}
	timeout, err := cfg.fetchTimeout()
	if err != nil {
		return nil, nil, err
	}
	client, err := adminapi.NewHTTPClient(adminapi.Config{
		BaseURL: cfg.APIBaseURL,
		Tokens:  tokens,
		Timeout: timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	guard := session.NewGuard(session.NewFileTokenStore(cfg.TokenPath), client)
	tokens.guard = guard
	return client, guard, nil
}

type serveCmd struct{}

func (cmd *serveCmd) Run(rc *runContext) error {
	cfg := rc.Config
	logger := rc.Logger

	client, guard, err := buildSession(cfg)
	if err != nil {
		return err
	}
	restored, err := guard.Restore()
	if err != nil {
		return err
	}
	if !restored {
		logger.Warn("no stored session, run `adminctl login` first; api requests will be rejected")
	}

	interval, err := cfg.refreshInterval()
	if err != nil {
		return err
	}
	timeout, err := cfg.fetchTimeout()
	if err != nil {
		return err
	}

	var hooks activity.Hooks
	if cfg.Activity.Enabled {
		hooks = activity.Hooks{activity.HookFunc(func(ctx context.Context, evt activity.Event) error {
			logger.Info("admin action",
				zap.String("verb", evt.Verb),
				zap.String("object_type", evt.ObjectType),
				zap.String("object_id", evt.ObjectID),
			)
			return nil
		})}
	}
	emitter := activity.NewEmitter(hooks, activity.Config{Enabled: cfg.Activity.Enabled})

	broadcast := console.NewBroadcastHook()
	engine := console.NewEngine(console.Options{
		Repos:           client.Repositories(),
		Notifier:        broadcast,
		RefreshHook:     broadcast,
		Telemetry:       console.NewZapTelemetry(logger),
		Activity:        activity.Recorder{Emitter: emitter},
		Locale:          cfg.Locale,
		RefreshInterval: interval,
		FetchTimeout:    timeout,
		SessionInvalidated: func(ctx context.Context) {
			logger.Warn("session invalidated by backend")
			guard.Invalidate()
		},
	})

	renderer, err := console.NewTemplateRenderer()
	if err != nil {
		return err
	}
	controller := console.NewController(console.ControllerOptions{
		Engine:   engine,
		Renderer: renderer,
		Title:    cfg.Title,
	})

	telemetry := console.NewZapTelemetry(logger)
	executor := &httpapi.CommandExecutor{
		SaveCommander:    commands.NewSaveKnowledgeCommand(engine, telemetry),
		DeleteCommander:  commands.NewDeleteKnowledgeCommand(engine, telemetry),
		UserCommander:    commands.NewUpdateUserCommand(engine, telemetry),
		RefreshCommander: commands.NewRefreshSectionCommand(engine, telemetry),
	}

	server := router.NewFiberAdapter()
	if err := consolerouter.Register(consolerouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Broadcast:  broadcast,
		BasePath:   cfg.BasePath,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.RunRefreshLoop(ctx)

	logger.Info("admin console ready",
		zap.String("addr", cfg.ListenAddr),
		zap.String("path", cfg.BasePath+"/console"),
	)
	return server.Serve(cfg.ListenAddr)
}

type loginCmd struct {
	Email    string `required:"" help:"Admin email."`
	Password string `help:"Admin password. Prompted when omitted."`
}

func (cmd *loginCmd) Run(rc *runContext) error {
	_, guard, err := buildSession(rc.Config)
	if err != nil {
		return err
	}
	password := cmd.Password
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("adminctl: read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}
	creds, err := guard.Authenticate(context.Background(), cmd.Email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Signed in as %s (%s)\n", creds.Username, creds.Role)
	return nil
}

type logoutCmd struct{}

func (cmd *logoutCmd) Run(rc *runContext) error {
	guard := session.NewGuard(session.NewFileTokenStore(rc.Config.TokenPath), nil)
	if err := guard.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "✓ Session cleared")
	return nil
}
