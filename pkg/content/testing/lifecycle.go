package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// RunLifecycleTests executes open/close/flush/unlink tests.
func (suite *ContentTestSuite) RunLifecycleTests(t *testing.T) {
	t.Run("OpenClose", suite.testOpenClose)
	t.Run("CloseWithoutOpen", suite.testCloseWithoutOpen)
	t.Run("Flush", suite.testFlush)
	t.Run("Unlink", suite.testUnlink)
	t.Run("FreshPosition", suite.testFreshPosition)
}

func (suite *ContentTestSuite) testOpenClose(t *testing.T) {
	c := suite.NewContent()

	assert.NoError(t, c.Open())
	assert.NoError(t, c.Close())

	// Reopening after close is allowed
	assert.NoError(t, c.Open())
	assert.NoError(t, c.Close())
}

func (suite *ContentTestSuite) testCloseWithoutOpen(t *testing.T) {
	c := suite.NewContent()
	assert.NoError(t, c.Close())
}

func (suite *ContentTestSuite) testFlush(t *testing.T) {
	c := suite.seeded(t, []byte("flush me"))
	assert.NoError(t, c.Flush())
}

func (suite *ContentTestSuite) testUnlink(t *testing.T) {
	c := suite.NewContent()
	assert.NoError(t, c.Unlink())
}

func (suite *ContentTestSuite) testFreshPosition(t *testing.T) {
	c := suite.NewContent()
	assertTell(t, c, 0)
}
