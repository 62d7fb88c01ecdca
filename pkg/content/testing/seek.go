package testing

import (
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSeekTests executes the shared seek/tell arithmetic tests.
func (suite *ContentTestSuite) RunSeekTests(t *testing.T) {
	t.Run("Start_InRange", suite.testSeekStartInRange)
	t.Run("Start_Negative", suite.testSeekStartNegative)
	t.Run("Start_BeyondSize", suite.testSeekStartBeyondSize)
	t.Run("Current_Relative", suite.testSeekCurrentRelative)
	t.Run("End_Relative", suite.testSeekEndRelative)
	t.Run("End_Positive", suite.testSeekEndPositive)
	t.Run("UnknownOrigin", suite.testSeekUnknownOrigin)
	t.Run("UnknownOrigin_ResetsPosition", suite.testSeekUnknownOriginResetsPosition)
	t.Run("Failure_ResetsPosition", suite.testSeekFailureResetsPosition)
}

func (suite *ContentTestSuite) testSeekStartInRange(t *testing.T) {
	c := suite.seeded(t, generateTestData(64))

	for _, off := range []int64{0, c.Size() / 2, c.Size()} {
		mustSeek(t, c, off, content.SeekStart)
		assertTell(t, c, off)
	}
}

func (suite *ContentTestSuite) testSeekStartNegative(t *testing.T) {
	c := suite.seeded(t, generateTestData(16))

	err := c.Seek(-1, content.SeekStart)
	assert.ErrorIs(t, err, content.ErrInvalidSeek)
	assertTell(t, c, 0)
}

func (suite *ContentTestSuite) testSeekStartBeyondSize(t *testing.T) {
	c := suite.seeded(t, generateTestData(16))

	err := c.Seek(c.Size()+1, content.SeekStart)
	assert.ErrorIs(t, err, content.ErrInvalidSeek)
	assertTell(t, c, 0)
}

func (suite *ContentTestSuite) testSeekCurrentRelative(t *testing.T) {
	c := suite.seeded(t, generateTestData(32))
	size := c.Size()

	mustSeek(t, c, size/2, content.SeekStart)
	mustSeek(t, c, size/4, content.SeekCurrent)
	assertTell(t, c, size/2+size/4)

	mustSeek(t, c, -(size / 4), content.SeekCurrent)
	assertTell(t, c, size/2)

	// Zero offset keeps the position
	mustSeek(t, c, 0, content.SeekCurrent)
	assertTell(t, c, size/2)
}

func (suite *ContentTestSuite) testSeekEndRelative(t *testing.T) {
	c := suite.seeded(t, generateTestData(32))
	size := c.Size()

	mustSeek(t, c, 0, content.SeekEnd)
	assertTell(t, c, size)

	if size > 0 {
		mustSeek(t, c, -1, content.SeekEnd)
		assertTell(t, c, size-1)
	}
}

func (suite *ContentTestSuite) testSeekEndPositive(t *testing.T) {
	c := suite.seeded(t, generateTestData(8))

	err := c.Seek(1, content.SeekEnd)
	assert.ErrorIs(t, err, content.ErrInvalidSeek)
	assertTell(t, c, 0)
}

func (suite *ContentTestSuite) testSeekUnknownOrigin(t *testing.T) {
	c := suite.NewContent()

	for _, origin := range []content.Origin{-1, 3, 42} {
		err := c.Seek(0, origin)
		assert.ErrorIs(t, err, content.ErrInvalidSeek, "origin %d", origin)
		assertTell(t, c, 0)
	}
}

func (suite *ContentTestSuite) testSeekUnknownOriginResetsPosition(t *testing.T) {
	if !suite.Stores {
		t.Skip("Content has no non-zero positions")
	}
	c := suite.seeded(t, generateTestData(16))

	mustSeek(t, c, 5, content.SeekStart)
	err := c.Seek(1, content.Origin(7))
	require.ErrorIs(t, err, content.ErrInvalidSeek)
	assertTell(t, c, 0)
}

func (suite *ContentTestSuite) testSeekFailureResetsPosition(t *testing.T) {
	if !suite.Stores {
		t.Skip("Content has no non-zero positions")
	}
	c := suite.seeded(t, generateTestData(16))

	mustSeek(t, c, 10, content.SeekStart)
	err := c.Seek(-11, content.SeekCurrent)
	require.ErrorIs(t, err, content.ErrInvalidSeek)

	// A failed seek does not leave the previous position intact
	assertTell(t, c, 0)
}
