package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Counters(t *testing.T) {
	p := NewPrometheus()
	p.RecordTag("income", "ok")
	p.RecordTag("income", "ok")
	p.RecordTag("income", "skipped")
	p.RecordFetch("sec", time.Second, nil)
	p.RecordFetch("sec", time.Second, errors.New("boom"))
	p.RecordCacheLookup("data.sec.gov", true)
	p.RecordRows("balance", 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.tags.WithLabelValues("income", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.tags.WithLabelValues("income", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.fetches.WithLabelValues("sec", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.cacheLookup.WithLabelValues("data.sec.gov", "hit")))
	assert.Equal(t, 7.0, testutil.ToFloat64(p.rows.WithLabelValues("balance")))
}

func TestPrometheus_WriteTextfile(t *testing.T) {
	p := NewPrometheus()
	p.RecordRun("ok", 3*time.Second)

	path := filepath.Join(t.TempDir(), "dashboard.prom")
	require.NoError(t, p.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stockdashboard_runs_total{status="ok"} 1`)
}
