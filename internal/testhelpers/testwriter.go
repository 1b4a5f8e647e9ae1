package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer implements io.Writer on top of t.Log so that server logs only show
// up for failed tests.
type Writer struct {
	t        *testing.T
	testDone chan struct{}
}

// NewWriter creates a Writer bound to the test's lifetime. Writes after the
// test has finished panic, which catches servers that were not shut down
// with t.Cleanup.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: attempted to write after test completion. Did you remember to t.Cleanup(server.Shutdown)?")
	default:
		// Trailing newlines double-space the t.Log output.
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
