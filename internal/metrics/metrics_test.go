package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMustRegister(t *testing.T) {
	r := prometheus.NewRegistry()
	assert.NotPanics(t, func() { MustRegister(r) })
	assert.Panics(t, func() { MustRegister(r) }, "collectors must not be registered twice")
}

func TestCountersByLabel(t *testing.T) {
	before := testutil.ToFloat64(DQChecksTotal.WithLabelValues("warned"))
	DQChecksTotal.WithLabelValues("warned").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(DQChecksTotal.WithLabelValues("warned")))
}
