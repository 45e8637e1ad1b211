// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/infra/apiclient"
	"github.com/todolist/todo-client/internal/infra/config"
	"github.com/todolist/todo-client/internal/infra/credstore"
	"github.com/todolist/todo-client/internal/infra/logging"
	"github.com/todolist/todo-client/internal/session"
	"github.com/todolist/todo-client/internal/tasklist"
	"github.com/todolist/todo-client/internal/toast"
)

// Options customize how the container is built.
// Fields are ordered to minimize memory padding.
type Options struct {
	// Notifier receives every user-facing message. Defaults to the toast store.
	Notifier domain.Notifier
	// Clock defaults to the wall clock.
	Clock domain.Clock
	// HTTPClient replaces the API transport (tests).
	HTTPClient *http.Client
	// ConfigDir overrides ~/.config/todo.
	ConfigDir string
	// APIURL overrides [api] base_url and TODO_API_URL.
	APIURL string
}

// Container wires every component of the client.
// Construction order matters: the session store exists before the API
// client so its Logout can be injected as the 401 handler.
type Container struct {
	// Ports (interfaces bound to implementations)
	Notifier domain.Notifier
	Clock    domain.Clock

	// Pointer fields
	Config        *domain.Config
	ConfigLoader  *config.Loader
	ConfigManager *config.Manager
	Credentials   *credstore.Store
	Logger        *logging.Logger
	Toasts        *toast.Store
	Session       *session.Store
	Auth          *session.Authenticator
	API           *apiclient.Client
	Tasks         *tasklist.Controller
	Metrics       *prometheus.Registry
}

// New builds the container and restores the session from disk.
func New(opts Options) (*Container, error) {
	loader := config.NewLoader()
	if opts.ConfigDir != "" {
		loader = config.NewLoaderWithDir(opts.ConfigDir)
	}
	if loader.Dir() == "" {
		return nil, domain.ErrNoConfigDir
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.API.BaseURL = v
	}

	logger := logging.New(loader.Dir(), logging.ParseLevel(cfg.Log.Level))
	for _, w := range cfg.Warnings {
		logger.Warn("config", w)
	}

	creds, err := credstore.NewStore(loader.Dir())
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = domain.RealClock{}
	}

	toasts := toast.New(toast.WithDefaultDuration(cfg.ToastDuration()))
	notifier := opts.Notifier
	if notifier == nil {
		notifier = toasts
	}

	sessions := session.NewStore(creds, logger)

	registry := prometheus.NewRegistry()
	clientOpts := []apiclient.Option{
		apiclient.WithLogger(logger),
		apiclient.WithNotifier(notifier),
		apiclient.WithUnauthorizedHandler(sessions.Logout),
		apiclient.WithMetrics(registry),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(opts.HTTPClient))
	}
	if cfg.API.Timeout > 0 {
		clientOpts = append(clientOpts, apiclient.WithTimeout(time.Duration(cfg.API.Timeout)))
	}
	api, err := apiclient.New(cfg.API.BaseURL, creds, clientOpts...)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Notifier:      notifier,
		Clock:         clock,
		Config:        cfg,
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(loader),
		Credentials:   creds,
		Logger:        logger,
		Toasts:        toasts,
		Session:       sessions,
		Auth:          session.NewAuthenticator(sessions, api, creds, logger),
		API:           api,
		Tasks:         tasklist.New(api, notifier, tasklist.WithLogger(logger), tasklist.WithClock(clock)),
		Metrics:       registry,
	}

	sessions.Restore()
	return c, nil
}

// RequireSession fails with ErrNotAuthenticated when nobody is signed in.
func (c *Container) RequireSession() error {
	if !c.Session.State().IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// Close flushes metrics (when [metrics] file is set) and closes the log file.
func (c *Container) Close() error {
	var errs []error
	if path := c.Config.Metrics.File; path != "" {
		if err := prometheus.WriteToTextfile(path, c.Metrics); err != nil {
			c.Logger.Error("metrics", fmt.Sprintf("write %s: %v", path, err))
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := c.Logger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close log: %w", err))
	}
	return errors.Join(errs...)
}
