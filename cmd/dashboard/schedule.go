package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/notifier"
	"StockDashboard/internal/scheduler"
)

type scheduleCmd struct {
	config     *string
	runOnStart bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "regenerate the watchlist dashboards on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `dashboard [-config <file>] schedule [-now]

  Runs until interrupted, regenerating every schedule.tickers dashboard on
  schedule.cron. With Telegram enabled, results are posted to the chat and
  the chat commands /dashboard, /watchlist and /run are served.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "now", os.Getenv("RUN_ON_START") == "true", "run the watchlist once at start")
}

func (c *scheduleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx, *c.config)
	if err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer a.Close()
	if err := a.cfg.ValidateSchedule(); err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tn *notifier.TelegramNotifier
	if a.cfg.Telegram.Enabled {
		client := collector.NewHTTPClient(collector.HTTPOptions{Proxy: a.cfg.Proxy, Log: a.log})
		tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, client, a.log)
	}

	sched := scheduler.NewScheduler(ctx, a.generator, nil, a.cfg.Schedule.Tickers, a.log)
	if tn != nil {
		sched.Notifier = tn
	}
	sched.SendFile = a.cfg.Telegram.SendFile
	sched.AfterRun = a.flushMetrics
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		a.log.Info().Msg("telegram polling started")
	}
	if c.runOnStart {
		go sched.RunNow()
	}

	a.log.Info().Msg("dashboard scheduler running, press Ctrl+C to stop")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		a.log.Info().Msg("shutdown signal received, stopping")
	case <-ctx.Done():
	}
	cancel()
	return subcommands.ExitSuccess
}
