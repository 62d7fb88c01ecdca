package testing

import (
	"bytes"
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStorageTests executes read/write/truncate tests for storing strategies.
func (suite *ContentTestSuite) RunStorageTests(t *testing.T) {
	t.Run("RoundTrip", suite.testRoundTrip)
	t.Run("Read_AdvancesPosition", suite.testReadAdvancesPosition)
	t.Run("Read_ShortAtEnd", suite.testReadShortAtEnd)
	t.Run("Read_AtEOF", suite.testReadAtEOF)
	t.Run("Read_NegativeCount", suite.testReadNegativeCount)
	t.Run("Write_Overwrite", suite.testWriteOverwrite)
	t.Run("Write_Grows", suite.testWriteGrows)
	t.Run("Truncate_Extend", suite.testTruncateExtend)
	t.Run("Truncate_Shrink", suite.testTruncateShrink)
	t.Run("Truncate_Negative", suite.testTruncateNegative)
	t.Run("EOF", suite.testEOF)
}

func (suite *ContentTestSuite) testRoundTrip(t *testing.T) {
	c := suite.NewContent()
	data := []byte("Hello, World!")

	mustWrite(t, c, data)
	mustSeek(t, c, 0, content.SeekStart)

	assert.Equal(t, data, mustRead(t, c, len(data)))
	assert.Equal(t, int64(len(data)), c.Size())
}

func (suite *ContentTestSuite) testReadAdvancesPosition(t *testing.T) {
	c := suite.seeded(t, generateTestData(20))

	first := mustRead(t, c, 5)
	assertTell(t, c, 5)
	second := mustRead(t, c, 5)
	assertTell(t, c, 10)

	assert.Equal(t, generateTestData(20)[:5], first)
	assert.Equal(t, generateTestData(20)[5:10], second)
}

func (suite *ContentTestSuite) testReadShortAtEnd(t *testing.T) {
	c := suite.seeded(t, []byte("abcdef"))

	mustSeek(t, c, 4, content.SeekStart)
	assert.Equal(t, []byte("ef"), mustRead(t, c, 100))
	assertTell(t, c, 6)
}

func (suite *ContentTestSuite) testReadAtEOF(t *testing.T) {
	c := suite.seeded(t, []byte("abc"))

	mustSeek(t, c, 0, content.SeekEnd)
	data := mustRead(t, c, 10)
	assert.Empty(t, data)
	assertTell(t, c, 3)
}

func (suite *ContentTestSuite) testReadNegativeCount(t *testing.T) {
	c := suite.seeded(t, []byte("abc"))

	_, err := c.Read(-1)
	assert.ErrorIs(t, err, content.ErrInvalidSize)
}

func (suite *ContentTestSuite) testWriteOverwrite(t *testing.T) {
	c := suite.seeded(t, []byte("Hello, World"))

	mustSeek(t, c, 7, content.SeekStart)
	mustWrite(t, c, []byte("Gophe"))
	assertTell(t, c, 12)

	mustSeek(t, c, 0, content.SeekStart)
	assert.Equal(t, []byte("Hello, Gophe"), mustRead(t, c, 64))
	assert.Equal(t, int64(12), c.Size())
}

func (suite *ContentTestSuite) testWriteGrows(t *testing.T) {
	c := suite.seeded(t, []byte("abc"))

	mustSeek(t, c, 0, content.SeekEnd)
	mustWrite(t, c, []byte("defgh"))

	assert.Equal(t, int64(8), c.Size())
	mustSeek(t, c, 0, content.SeekStart)
	assert.Equal(t, []byte("abcdefgh"), mustRead(t, c, 8))
}

func (suite *ContentTestSuite) testTruncateExtend(t *testing.T) {
	c := suite.seeded(t, []byte("data"))
	const k = 6

	require.NoError(t, c.Truncate(c.Size()+k))
	assert.Equal(t, int64(4+k), c.Size())

	mustSeek(t, c, -k, content.SeekEnd)
	assert.Equal(t, bytes.Repeat([]byte{0}, k), mustRead(t, c, k))
}

func (suite *ContentTestSuite) testTruncateShrink(t *testing.T) {
	c := suite.seeded(t, generateTestData(100))

	mustSeek(t, c, 80, content.SeekStart)
	require.NoError(t, c.Truncate(10))

	assert.Equal(t, int64(10), c.Size())
	assert.LessOrEqual(t, c.Tell(), c.Size(), "position must not exceed size after shrink")

	mustSeek(t, c, 0, content.SeekStart)
	assert.Equal(t, generateTestData(10), mustRead(t, c, 100))
}

func (suite *ContentTestSuite) testTruncateNegative(t *testing.T) {
	c := suite.seeded(t, []byte("abc"))
	assert.ErrorIs(t, c.Truncate(-1), content.ErrInvalidSize)
	assert.Equal(t, int64(3), c.Size())
}

func (suite *ContentTestSuite) testEOF(t *testing.T) {
	c := suite.NewContent()
	assert.True(t, c.EOF(), "empty content is at EOF")

	c = suite.seeded(t, []byte("xyz"))
	assert.False(t, c.EOF())

	mustRead(t, c, 3)
	assert.True(t, c.EOF())
}
