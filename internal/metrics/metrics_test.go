package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordVerification("success")
	c.RecordVerification("success")
	c.RecordVerification("invalid")
	c.RecordReconciliation("created")
	c.RecordErasure("not_found")

	assert.Equal(t, 2.0, counterValue(t, reg, "providerhub_identity_verifications_total", "result", "success"))
	assert.Equal(t, 1.0, counterValue(t, reg, "providerhub_identity_verifications_total", "result", "invalid"))
	assert.Equal(t, 1.0, counterValue(t, reg, "providerhub_account_reconciliations_total", "status", "created"))
	assert.Equal(t, 1.0, counterValue(t, reg, "providerhub_account_erasures_total", "result", "not_found"))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordCalendarLink("success")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `providerhub_calendar_links_total{result="success"} 1`))
}
