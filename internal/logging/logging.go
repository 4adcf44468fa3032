// Package logging prints the coarse, timestamped progress messages
// emitted while training a forest or scoring feature importance.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger writes progress lines to an underlying writer, defaulting to
// standard error.
type Logger struct {
	out io.Writer
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger { return &Logger{out: w} }

// Default returns a Logger writing to os.Stderr.
func Default() *Logger { return New(os.Stderr) }

// Progress reports that the unit of work with zero-based index done, of
// total units of the given kind, has completed; it prints done+1, e.g.
// Progress("tree", 3, 150) prints "built tree 4/150".
func (l *Logger) Progress(unit string, done, total int) {
	fmt.Fprintf(l.out, "%s >> built %v %d/%d\n", time.Now().Format(time.RFC3339), unit, done+1, total)
}

// Errorf reports a non-fatal error to the log.
func (l *Logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "%s >> "+format+"\n", append([]interface{}{time.Now().Format(time.RFC3339)}, args...)...)
}
