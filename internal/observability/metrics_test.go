package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Registerable(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NoError(t, reg.Register(m.FetchRequests))
	require.NoError(t, reg.Register(m.PollutantMean))

	m.FetchRequests.WithLabelValues("success").Inc()
	m.PollutantMean.WithLabelValues("pm2_5").Set(12.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchRequests.WithLabelValues("success")))
	assert.Equal(t, 12.5, testutil.ToFloat64(m.PollutantMean.WithLabelValues("pm2_5")))
}
