package jstream_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
)

// benchInput synthesizes a document with n records.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range n {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "user %d", "score": %d.%02d, "active": %v, "tags": ["a", "b\tc"], "parent": null}`,
			i, i, i*7, i%100, i%2 == 0)
	}
	sb.WriteString("]")
	return []byte(sb.String())
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for b.Loop() {
			s := jstream.NewScanner(bytes.NewReader(input))
			for {
				err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	// The parser converts tokens to values, as the standard library Decoder
	// does, so this is the fair comparison.
	b.Run("Parser", func(b *testing.B) {
		for b.Loop() {
			p := jstream.NewParser(bytes.NewReader(input))
			for _, err := range p.Events() {
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		for b.Loop() {
			if _, err := jstream.ParseBytes(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
