package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/pagescore/internal/aggregator"
	"github.com/nao1215/pagescore/internal/model"
	"github.com/nao1215/pagescore/internal/pagespeed"
)

// scrape fetches the exposition from reg and parses it.
func scrape(t *testing.T, reg *Registry) (string, map[string]*dto.MetricFamily) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept", "text/plain")
	reg.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(body))
	require.NoError(t, err)
	return body, families
}

func TestRegistry_Counters(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.ObserveEvaluation(aggregator.OutcomeSuccess)
	reg.ObserveEvaluation(aggregator.OutcomeSuccess)
	reg.ObserveEvaluation(aggregator.OutcomeInvalidInput)
	reg.ObserveUpstream(model.ProfileMobile, nil)
	reg.ObserveUpstream(model.ProfileDesktop, &pagespeed.StatusError{StatusCode: 400})

	assert.InDelta(t, 2, testutil.ToFloat64(reg.evaluations.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(reg.evaluations.WithLabelValues("invalid_input")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(reg.upstream.WithLabelValues("desktop", "upstream_rejected")), 0)

	_, families := scrape(t, reg)

	evaluations := families[EvaluationsTotal]
	require.NotNil(t, evaluations)
	require.Len(t, evaluations.GetMetric(), 2)
	assert.Equal(t, "invalid_input", evaluations.GetMetric()[0].GetLabel()[0].GetValue())

	upstream := families[UpstreamRequestsTotal]
	require.NotNil(t, upstream)
	assert.Len(t, upstream.GetMetric(), 2)

	require.NotNil(t, families[EvaluationsInFlight])
}

func TestRegistry_EmptyCountersOmitted(t *testing.T) {
	t.Parallel()

	_, families := scrape(t, NewRegistry())
	assert.NotContains(t, families, EvaluationsTotal)
	assert.NotContains(t, families, UpstreamRequestsTotal)
	assert.Contains(t, families, EvaluationsInFlight)
}

func TestRegistry_Deterministic(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, outcome := range []aggregator.Outcome{aggregator.OutcomeFailed, aggregator.OutcomeSuccess, aggregator.OutcomeConfiguration} {
		reg.ObserveEvaluation(outcome)
	}
	reg.ObserveUpstream(model.ProfileMobile, errors.New("boom"))
	reg.ObserveUpstream(model.ProfileDesktop, nil)

	first, _ := scrape(t, reg)
	second, _ := scrape(t, reg)
	assert.Equal(t, first, second)
}

func TestRegistry_TrackInFlight(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	done := reg.TrackInFlight()
	assert.InDelta(t, 1, testutil.ToFloat64(reg.inFlight), 0)

	done()
	done()
	assert.InDelta(t, 0, testutil.ToFloat64(reg.inFlight), 0)
}

func TestRegistry_Handler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.ObserveEvaluation(aggregator.OutcomeSuccess)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), `pagescore_evaluations_total{outcome="success"} 1`)
}
