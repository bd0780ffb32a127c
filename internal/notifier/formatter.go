package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockDashboard/internal/dashboard"
	m "StockDashboard/internal/model"
)

// FormatRunReport formats a finished run into a Telegram message.
func FormatRunReport(r *dashboard.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> dashboard | %s\n", html.EscapeString(r.Ticker), time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("CIK: %s\n\n", r.CIK))

	for _, kind := range m.StatementKinds {
		b.WriteString(fmt.Sprintf("%s: %d periods\n", kind, r.Rows[kind.Key()]))
	}
	if r.PriceJoined {
		b.WriteString("Prices: joined\n")
	} else {
		b.WriteString("Prices: ⚠️ unavailable\n")
	}

	if len(r.Skipped) > 0 {
		b.WriteString(fmt.Sprintf("\n<b>Skipped tags (%d):</b>\n", len(r.Skipped)))
		for _, s := range r.Skipped {
			b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(s.Tag.Concept)))
		}
	}
	b.WriteString(fmt.Sprintf("\n⏱ %s", r.Duration.Round(time.Millisecond)))
	return b.String()
}

// FormatRunFailure formats a failed run.
func FormatRunFailure(ticker string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> dashboard failed: %s", html.EscapeString(ticker), html.EscapeString(err.Error()))
}

// FormatWatchlist formats the scheduled tickers.
func FormatWatchlist(tickers []string, cron string) string {
	var b strings.Builder
	b.WriteString("📋 <b>Watchlist</b>\n\n")
	for _, t := range tickers {
		b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(t)))
	}
	b.WriteString(fmt.Sprintf("\nSchedule: <code>%s</code>", html.EscapeString(cron)))
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Commands:\n• /dashboard TICKER\n• /watchlist\n• /run"
}
