package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/notifier"
)

// Generator builds the dashboard of one ticker.
type Generator interface {
	Generate(ctx context.Context, ticker string) (*dashboard.Report, error)
}

// Notifier delivers run results. It may be nil.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
	SendDocument(ctx context.Context, path, caption string) error
}

// Scheduler regenerates a watchlist of dashboards on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Generator Generator
	Notifier  Notifier
	Tickers   []string
	Spec      string
	SendFile  bool
	// AfterRun, when set, is called after every watchlist run.
	AfterRun func()
	Ctx      context.Context
	Log      zerolog.Logger

	running atomic.Bool
}

// NewScheduler creates a new Scheduler. Runs that are still in progress when
// the next tick fires are skipped, never overlapped.
func NewScheduler(ctx context.Context, gen Generator, n Notifier, tickers []string, logger zerolog.Logger) *Scheduler {
	cl := cronLogger{logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Generator: gen,
		Notifier:  n,
		Tickers:   tickers,
		Ctx:       ctx,
		Log:       logger,
	}
}

// Register schedules the watchlist run.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	s.Spec = spec
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Str("spec", s.Spec).Strs("tickers", s.Tickers).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow regenerates every dashboard of the watchlist, one after another.
// A failing ticker is reported and the run moves on. It returns false
// without doing anything when another watchlist run is in progress.
func (s *Scheduler) RunNow() bool {
	if !s.running.CompareAndSwap(false, true) {
		s.Log.Warn().Msg("watchlist run already in progress, skipping")
		return false
	}
	defer s.running.Store(false)

	s.Log.Info().Int("tickers", len(s.Tickers)).Msg("running watchlist")
	failed := 0
	for _, ticker := range s.Tickers {
		if s.Ctx.Err() != nil {
			return true
		}
		if _, err := s.generate(s.Ctx, ticker); err != nil {
			failed++
		}
	}
	s.Log.Info().Int("failed", failed).Msg("watchlist done")
	if s.AfterRun != nil {
		s.AfterRun()
	}
	return true
}

// Running reports whether a watchlist run is in progress.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) generate(ctx context.Context, ticker string) (*dashboard.Report, error) {
	report, err := s.Generator.Generate(ctx, ticker)
	if err != nil {
		s.trySend(ctx, notifier.FormatRunFailure(ticker, err))
		return report, err
	}
	s.trySend(ctx, notifier.FormatRunReport(report))
	if s.SendFile && s.Notifier != nil && report.Path != "" {
		if err := s.Notifier.SendDocument(ctx, report.Path, report.Ticker+" dashboard"); err != nil {
			s.Log.Error().Err(err).Str("ticker", report.Ticker).Msg("send dashboard file")
		}
	}
	return report, nil
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	switch fields[0] {
	case "/dashboard":
		if len(fields) != 2 {
			return "Usage: /dashboard TICKER"
		}
		s.generate(ctx, strings.ToUpper(fields[1]))
		return ""
	case "/watchlist":
		return notifier.FormatWatchlist(s.Tickers, s.Spec)
	case "/run":
		if s.Running() {
			return "A watchlist run is already in progress"
		}
		go s.RunNow()
		return "Watchlist run started"
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		s.Log.Error().Err(err).Msg("send notification")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct{ l zerolog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
