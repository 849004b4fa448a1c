// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJobMetricsExported(t *testing.T) {
	obs := New("vendormatch-test")
	t.Cleanup(obs.Shutdown)

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "completed")
	obs.RecordJobProcessed(ctx, "failed")
	obs.RecordJobDuration(ctx, 150*time.Millisecond, "completed")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if strings.Contains(mf.GetName(), "jobs_processed") {
			found = true
			break
		}
	}
	assert.True(t, found, "job counter not exported through the Prometheus registry")
}

func TestRecordOnNilReceiver(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "completed")
		obs.RecordJobDuration(context.Background(), time.Second, "completed")
		obs.Shutdown()
	})
}
