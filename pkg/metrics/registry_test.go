package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRegistry(t *testing.T) {
	InitRegistry()
	require.True(t, IsEnabled())

	first := GetRegistry()
	InitRegistry()
	assert.Same(t, first, GetRegistry(), "second call must keep the registry")

	families, err := first.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"], "runtime collector registered")

	h := NewHandleMetrics()
	require.NotNil(t, h)
	assert.Same(t, h, NewHandleMetrics())
	h.RecordOpen()

	rec := httptest.NewRecorder()
	NewServer(ServerConfig{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "memvfs_handles_open 1")
}
