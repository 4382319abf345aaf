package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Makepad-fr/listy/internal/app"
	"github.com/Makepad-fr/listy/internal/clip"
	"github.com/Makepad-fr/listy/internal/config"
	"github.com/Makepad-fr/listy/internal/logging"
	"github.com/Makepad-fr/listy/internal/persist"
	"github.com/Makepad-fr/listy/internal/store/jsonstore"
	"github.com/Makepad-fr/listy/internal/store/kv"
	"github.com/Makepad-fr/listy/internal/store/sqlitestore"
	"github.com/Makepad-fr/listy/internal/ui"
)

// config resolves file/env settings, then applies the root flags.
func (a *App) config() (*config.Config, error) {
	cfg, err := config.Load(a.ConfigDir)
	if err != nil {
		return nil, err
	}
	if a.DataDir != "" {
		cfg.DataDir = a.DataDir
	}
	if a.Backend != "" {
		cfg.Storage.Backend = a.Backend
	}
	if a.BaseURL != "" {
		cfg.Share.BaseURL = a.BaseURL
	}
	if a.Theme != "" {
		cfg.UI.Theme = a.Theme
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	if a.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, usagef("%v", err)
	}
	return cfg, nil
}

// session is one opened checklist: config, backend and controller.
type session struct {
	cfg     *config.Config
	ctl     *app.Controller
	slots   kv.Store
	logger  *slog.Logger
	closers []io.Closer
}

func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type sessionOptions struct {
	// logToFile keeps stderr clean for the TUI.
	logToFile bool
	notifier  app.Notifier
	render    app.RenderFunc
	// scheduler drives the share-link auto-hide; the TUI uses its own ticks.
	scheduler app.Scheduler
}

func (a *App) openSession(ctx context.Context, o sessionOptions) (*session, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, usagef("log level: %v", err)
	}

	s := &session{cfg: cfg}
	if cfg.Storage.Backend != config.BackendMemory {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
	}

	switch {
	case o.logToFile && cfg.Storage.Backend == config.BackendMemory:
		// no data dir to hold a log, and stderr belongs to the TUI
		s.logger = logging.Discard()
	case o.logToFile:
		logger, f, err := logging.OpenFile(cfg.LogPath(), level)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.closers = append(s.closers, f)
	default:
		s.logger = logging.New(a.stderr, level)
	}

	slots, err := openSlots(ctx, cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.slots = slots
	s.closers = append(s.closers, slots)
	s.logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.DataDir)

	var clipboard app.Clipboard = clip.System{}
	if a.NoClipboard {
		clipboard = clip.Disabled{}
	}
	ctl, err := app.New(app.Deps{
		Persist:   persist.New(slots, s.logger),
		BaseURL:   cfg.Share.BaseURL,
		HideAfter: cfg.HideAfter(),
		Notifier:  o.notifier,
		Clipboard: clipboard,
		Render:    o.render,
		Scheduler: o.scheduler,
		Logger:    s.logger,
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.ctl = ctl
	return s, nil
}

func openSlots(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.DataDir)
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return jsonstore.Open(cfg.DataDir)
	}
}

// printNotices reports controller notices on the terminal and remembers
// them so commands can pick an exit code.
type printNotices struct {
	stdout, stderr io.Writer
	seen           []app.Notice
}

func (p *printNotices) Notify(n app.Notice) {
	p.seen = append(p.seen, n)
	if n.Kind == app.NoticeSaveFailed {
		// the change still holds for this run
		ui.Warn(p.stderr, n.Text)
		return
	}
	if n.Error {
		ui.Fail(p.stderr, n.Text)
		return
	}
	ui.OK(p.stdout, n.Text)
}

func (p *printNotices) has(k app.NoticeKind) bool {
	for _, n := range p.seen {
		if n.Kind == k {
			return true
		}
	}
	return false
}
