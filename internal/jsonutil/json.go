// internal/jsonutil/json.go
package jsonutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Reuse a 64 KiB buffered writer across JSONL encodes; sweeps emit one short
// line per sample.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// EncodeLines writes each item as one compact JSON line.
func EncodeLines[T any](w io.Writer, items []T) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(w)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return bw.Flush()
}
