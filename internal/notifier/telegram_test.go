package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDashboard/internal/dashboard"
	m "StockDashboard/internal/model"
	"StockDashboard/internal/table"
)

func newTestNotifier(t *testing.T, h http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", srv.Client(), zerolog.Nop())
	n.BaseURL = srv.URL
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	var path string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	})

	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, map[string]string{"chat_id": "42", "text": "<b>hi</b>", "parse_mode": "HTML"}, got)
}

func TestSend_APIError(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	})
	assert.ErrorContains(t, n.Send(context.Background(), "x"), "status 400")
}

func TestSendWithRetry_CancelledContext(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, n.SendWithRetry(ctx, "x", 3))
}

func TestSendDocument(t *testing.T) {
	var chatID, caption, filename, content string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendDocument", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		chatID = r.FormValue("chat_id")
		caption = r.FormValue("caption")
		f, hdr, err := r.FormFile("document")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		filename = hdr.Filename
		b, _ := io.ReadAll(f)
		content = string(b)
		w.Write([]byte(`{"ok":true}`))
	})

	path := filepath.Join(t.TempDir(), "AAPL.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook"), 0o644))

	require.NoError(t, n.SendDocument(context.Background(), path, "AAPL dashboard"))
	assert.Equal(t, "42", chatID)
	assert.Equal(t, "AAPL dashboard", caption)
	assert.Equal(t, "AAPL.xlsx", filename)
	assert.Equal(t, "workbook", content)
}

func TestStartPolling(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	calls := 0
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			calls++
			if calls == 1 {
				w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":" /dashboard aapl ","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/dashboard msft","chat":{"id":99}}}
				]}`))
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			sent = append(sent, p["text"])
			w.Write([]byte(`{"ok":true}`))
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	var commands []string
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(_ context.Context, cmd string) string {
			commands = append(commands, cmd)
			cancel()
			return "ok " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("polling did not stop")
	}
	assert.Equal(t, []string{"/dashboard aapl"}, commands)
}

func TestFormatRunReport(t *testing.T) {
	r := &dashboard.Report{
		Ticker: "AAPL",
		CIK:    "0000320193",
		Rows:   map[string]int{"income": 10, "balance": 9, "cashflow": 10},
		Skipped: []table.Skip{
			{Tag: m.Tag{Concept: "DebtCurrent"}, Reason: errors.New("no data")},
		},
		Duration: 1500 * time.Millisecond,
	}
	msg := FormatRunReport(r)
	assert.Contains(t, msg, "<b>AAPL</b>")
	assert.Contains(t, msg, "Income Statement: 10 periods")
	assert.Contains(t, msg, "Balance Sheet: 9 periods")
	assert.Contains(t, msg, "unavailable")
	assert.Contains(t, msg, "DebtCurrent")

	assert.Equal(t, "❌ <b>X&amp;Y</b> dashboard failed: a &lt; b", FormatRunFailure("X&Y", errors.New("a < b")))
}
