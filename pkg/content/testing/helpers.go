package testing

import (
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustWrite writes data and fails the test unless it is fully accepted.
func mustWrite(t *testing.T, c content.Content, data []byte) {
	t.Helper()
	n, err := c.Write(data)
	require.NoError(t, err, "Write should succeed")
	require.Equal(t, len(data), n, "Write should accept all bytes")
}

// mustSeek seeks and fails the test if it errors.
func mustSeek(t *testing.T, c content.Content, offset int64, origin content.Origin) {
	t.Helper()
	require.NoError(t, c.Seek(offset, origin), "Seek(%d, %s) should succeed", offset, origin)
}

// mustRead reads and fails the test if it errors.
func mustRead(t *testing.T, c content.Content, count int) []byte {
	t.Helper()
	data, err := c.Read(count)
	require.NoError(t, err, "Read should succeed")
	return data
}

// seeded returns fresh content holding data (only for storing strategies),
// positioned at 0.
func (suite *ContentTestSuite) seeded(t *testing.T, data []byte) content.Content {
	t.Helper()
	c := suite.NewContent()
	if suite.Stores && len(data) > 0 {
		mustWrite(t, c, data)
		mustSeek(t, c, 0, content.SeekStart)
	}
	return c
}

// assertTell checks the current position.
func assertTell(t *testing.T, c content.Content, expected int64) {
	t.Helper()
	assert.Equal(t, expected, c.Tell(), "position mismatch")
}

// generateTestData creates test data of specified size.
func generateTestData(size int) []byte {
	data := make([]byte, size)
	for i := 0; i < size; i++ {
		data[i] = byte(i % 256)
	}
	return data
}
