package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pokedex_metrics_test_total",
	Help: "Counter registered by the metrics tests",
})

func TestHandlerServesPrometheusFormat(t *testing.T) {
	testCounter.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "# TYPE pokedex_metrics_test_total counter")
}

func TestStartDisabled(t *testing.T) {
	s, err := Start("", nil)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestStartAndShutdown(t *testing.T) {
	s, err := Start("127.0.0.1:0", nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Shutdown(context.Background()))

	_, err = http.Get("http://" + s.Addr() + "/metrics")
	assert.Error(t, err)
}
