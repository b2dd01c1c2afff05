package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	r := New()

	r.ObserveFetch("hosts", "ok", 120*time.Millisecond)
	r.ObserveFetch("hosts", "ok", 80*time.Millisecond)
	r.ObserveFetch("host", "not_found", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.FetchTotal.WithLabelValues("hosts", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FetchTotal.WithLabelValues("host", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.FetchDuration))
}

func TestDropStaleAndFleet(t *testing.T) {
	r := New()

	r.DropStale("host")
	r.DropStale("host")
	r.SetFleet(12, 3)
	r.MarkSuccess("fleet", time.Unix(1700000000, 0))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.StaleDropped.WithLabelValues("host")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.Hosts))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.FailingChecks))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.LastSuccess.WithLabelValues("fleet")))
}

func TestRecordersAreIsolated(t *testing.T) {
	a, b := New(), New()
	a.SetFleet(5, 0)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.Hosts))
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveFetch("health", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `healthdash_fetches_total{endpoint="health",outcome="ok"} 1`)
}

func TestServe(t *testing.T) {
	r := New()
	r.SetFleet(4, 1)

	ctx, cancel := context.WithCancel(context.Background())
	addr, done, err := r.Serve(ctx, "127.0.0.1:0")
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.True(t, strings.Contains(string(body), "healthdash_fleet_hosts 4"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not shut down")
	}
}

func TestServe_BadAddress(t *testing.T) {
	_, _, err := New().Serve(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
