//go:build integration

package mdpreview

// Notes:
// - Integration tests share one ConverterPool, created in TestMain and
//   closed after all tests complete.
// - Pool size is capped at 4 for CI environments to avoid resource exhaustion.
// - Pages under test disable math and diagrams unless a test needs them, so
//   the suite does not depend on CDN access.

import (
	"os"
	"testing"
	"time"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 60 * time.Second

var testPool *ConverterPool

func TestMain(m *testing.M) {
	poolSize := min(ResolvePoolSize(0), 4)
	testPool = NewConverterPool(poolSize, WithTimeout(testTimeout), WithoutMath(), WithDiagramLanguage(""))

	code := m.Run()

	_ = testPool.Close()
	os.Exit(code)
}

// acquireConverter gets a converter from the shared pool with automatic cleanup.
func acquireConverter(t *testing.T) *Converter {
	t.Helper()

	conv, err := testPool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(func() { testPool.Release(conv) })
	return conv
}
