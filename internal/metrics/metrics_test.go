package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	okBefore := testutil.ToFloat64(FetchTotal.WithLabelValues("status", "ok"))
	errBefore := testutil.ToFloat64(FetchTotal.WithLabelValues("status", "error"))

	ObserveFetch("status", time.Now(), nil)
	ObserveFetch("status", time.Now(), errors.New("boom"))
	ObserveFetch("status", time.Now(), nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(FetchTotal.WithLabelValues("status", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(FetchTotal.WithLabelValues("status", "error")))
}

func TestHandler_ServesCollectors(t *testing.T) {
	CacheStores.WithLabelValues("day").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "beacon_cache_stores_total")
}
