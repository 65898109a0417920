// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Options tune presentation; they never change the data written.
type Options struct {
	Color bool // ANSI styling for the text format
}

// WriterFunc renders a report in one format.
type WriterFunc func(w io.Writer, r Report, o Options) error

// Writer registry (format → handler). Register in init() blocks of the format files.
var registry = map[string]WriterFunc{}

// Register adds or replaces (last wins) the handler for format.
func Register(format string, fn WriterFunc) { registry[strings.ToLower(format)] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the handler registered for format.
func Write(format string, w io.Writer, r Report, o Options) error {
	fn, ok := registry[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r, o)
}
