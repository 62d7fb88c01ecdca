package testing

import (
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
)

// ContentTestSuite is a test suite for the Content contract. It tests the
// shared seek/tell/EOF behaviour and, for storing strategies, the read/write
// round trip. It is reusable across strategies.
//
// Usage:
//
//	func TestZero(t *testing.T) {
//	    suite := &contenttesting.ContentTestSuite{
//	        NewContent: func() content.Content { return device.NewZero() },
//	    }
//	    suite.Run(t)
//	}
type ContentTestSuite struct {
	// NewContent is a factory function that creates a fresh, empty Content
	// for each test. This ensures test isolation.
	NewContent func() content.Content

	// Stores is set for strategies that keep written bytes (buffered).
	// Synthetic devices leave it false.
	Stores bool
}

// Run executes all tests in the suite.
func (suite *ContentTestSuite) Run(t *testing.T) {
	t.Run("Lifecycle", suite.RunLifecycleTests)
	t.Run("Seek", suite.RunSeekTests)
	if suite.Stores {
		t.Run("Storage", suite.RunStorageTests)
	}
}
