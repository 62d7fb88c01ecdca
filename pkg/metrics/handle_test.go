package metrics

import (
	"testing"
	"time"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/vfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMetrics_Collect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newHandleMetrics(reg)

	m.ObserveRead(10, time.Millisecond)
	m.ObserveRead(5, time.Millisecond)
	m.ObserveWrite(7, time.Millisecond)
	m.RecordSeekFailure()
	m.RecordOpen()
	m.RecordOpen()
	m.RecordClose()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("write")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.bytes.WithLabelValues("read")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.bytes.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.seekFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.openHandles))

	count, err := testutil.GatherAndCount(reg, "memvfs_handle_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one histogram per op label")
}

func TestHandleMetrics_ThroughFile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newHandleMetrics(reg)

	f, err := vfs.NewFile("metered", nil, vfs.WithMetrics(m))
	require.NoError(t, err)

	h, err := f.OpenHandle()
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.openHandles))

	_, err = h.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Error(t, h.Seek(-1, content.SeekStart))

	require.NoError(t, h.Close())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.openHandles))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytes.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.seekFailures))
}
