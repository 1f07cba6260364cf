// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/internal/testutil"
	"github.com/creachadair/jstream/jval"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2.5e-3
    }
  ],
  "y": {
    "hello": "there\tyou"
  },
  "o": [
    "hi",
    "yourself",
    null
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  },
  "e": {},
  "f": []
}`

func TestParse(t *testing.T) {
	v, err := jstream.ParseString(testJSON)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := jval.ObjectOf(
		jval.Field("list", jval.ArrayOf(
			jval.ObjectOf(jval.Field("x", 1)),
			jval.ObjectOf(jval.Field("x", jval.ToValue(0.0025))),
		)),
		jval.Field("y", jval.ObjectOf(jval.Field("hello", "there\tyou"))),
		jval.Field("o", jval.ArrayOf[any]("hi", "yourself", nil)),
		jval.Field("xyz", jval.ObjectOf(
			jval.Field("p", true), jval.Field("d", true), jval.Field("q", false),
		)),
		jval.Field("e", jval.ObjectOf()),
		jval.Field("f", jval.ArrayOf[any]()),
	)
	if diff := testutil.Diff(want, v); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}

	// Member order is preserved.
	o := v.(jval.Object)
	if diff := cmp.Diff([]string{"list", "y", "o", "xyz", "e", "f"}, o.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		testJSON,
		`[]`,
		`{"a":{"b":{"c":[1,2,[3,[4]]]}}}`,
		`[-0.5,1e-7,1e21,12345678901234567890123,"a\"b\\c\/d"]`,
		`{"dup":1,"other":2,"dup":3}`,
		"[\"\\u2028\\u0000\\ud83d\\ude00\"]",
	}
	for _, input := range inputs {
		v, err := jstream.ParseString(input)
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", input, err)
		}
		text := jstream.ToText(v)
		w, err := jstream.ParseString(text)
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", text, err)
		}
		if diff := testutil.Diff(v, w); diff != "" {
			t.Errorf("Round trip of %#q (-want, +got):\n%s", input, diff)
		}
		if again := jstream.ToText(w); again != text {
			t.Errorf("Output is not stable:\n first: %s\nsecond: %s", text, again)
		}
	}
}

func TestParseDuplicateKey(t *testing.T) {
	v := testutil.MustParse(t, `{"a":1,"b":2,"a":3}`)
	if got, want := jstream.ToText(v), `{"b":2,"a":3}`; got != want {
		t.Errorf("Duplicate key: got %#q, want %#q", got, want)
	}
}

func TestParseNumbers(t *testing.T) {
	v := testutil.MustParse(t, `[9876543210123456789, 100, 100.0, 0.1]`)
	a := v.(jval.Array)

	n, err := a.GetNumber(0)
	if err != nil {
		t.Fatalf("GetNumber: %v", err)
	}
	z, err := n.BigInt()
	if want, _ := new(big.Int).SetString("9876543210123456789", 10); err != nil || z.Cmp(want) != 0 {
		t.Errorf("BigInt: got %v, %v; want %v", z, err, want)
	}
	var cerr *jval.ConversionError
	if _, err := n.Int32(); !errors.As(err, &cerr) {
		t.Errorf("Int32: got %v, want *ConversionError", err)
	}

	x, _ := a.GetNumber(1)
	y, _ := a.GetNumber(2)
	if !x.Equal(y) {
		t.Errorf("Numbers %v and %v should be equal", x, y)
	}
	if d, _ := a.GetNumber(3); d.JSON() != "0.1" {
		t.Errorf("Number text: got %q, want 0.1", d.JSON())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		``,
		`   `,
		`true`,
		`"string"`,
		`15`,
		`{"a":1}{`,
		`{"a":1} x`,
		`[1] [2]`,
		`{"a":1`,
	}
	for _, input := range tests {
		v, err := jstream.ParseString(input)
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %v, %v; want *SyntaxError", input, v, err)
		} else {
			t.Logf("Parse %#q: got expected error: %v", input, err)
		}
	}
	if _, err := jstream.ParseBytes([]byte(`{"a":1}`)); err != nil {
		t.Errorf("ParseBytes: unexpected error: %v", err)
	}
}

func TestReader(t *testing.T) {
	const input = `{"a":1} [2, 3]
{"b":{}}   []
`
	rd := jstream.NewReader(strings.NewReader(input))
	var got []string
	for {
		v, err := rd.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Read: unexpected error: %v", err)
		}
		got = append(got, jstream.ToText(v))
	}
	if diff := cmp.Diff([]string{`{"a":1}`, `[2,3]`, `{"b":{}}`, `[]`}, got); diff != "" {
		t.Errorf("Read (-want, +got):\n%s", diff)
	}
	if _, err := rd.Read(); err != io.EOF {
		t.Errorf("Read after end: got %v, want %v", err, io.EOF)
	}

	t.Run("ParseAll", func(t *testing.T) {
		vs, err := jstream.ParseAll(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseAll: unexpected error: %v", err)
		} else if len(vs) != 4 {
			t.Errorf("ParseAll: got %d values, want 4", len(vs))
		}
		if vs, err := jstream.ParseAll(strings.NewReader("  ")); err != nil || len(vs) != 0 {
			t.Errorf("ParseAll empty: got %v, %v; want no values", vs, err)
		}
	})
	t.Run("Error", func(t *testing.T) {
		rd := jstream.NewReader(strings.NewReader(`[1] [2 {}`))
		if _, err := rd.Read(); err != nil {
			t.Fatalf("Read: unexpected error: %v", err)
		}
		_, err := rd.Read()
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Read: got %v, want *SyntaxError", err)
		} else if serr.Offset != 7 {
			t.Errorf("Error offset: got %d, want 7", serr.Offset)
		}
		if _, err2 := rd.Read(); err2 != err {
			t.Errorf("Read after error: got %v, want %v", err2, err)
		}
	})
}

func TestReaderTruncated(t *testing.T) {
	for _, input := range []string{`[1, 2`, `{"a":`, `{`, `[1] [2`, `  {"x": [true`} {
		_, err := jstream.ParseAll(strings.NewReader(input))
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("ParseAll %#q: got %v, want *SyntaxError", input, err)
			continue
		}
		if errors.Is(err, io.EOF) {
			t.Errorf("ParseAll %#q: error %v should not match %v", input, err, io.EOF)
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("ParseAll %#q: got %v, want %v", input, err, io.ErrUnexpectedEOF)
		}
		if serr.Offset != len(input) {
			t.Errorf("ParseAll %#q: error offset %d, want %d", input, serr.Offset, len(input))
		}
	}

	if _, err := jstream.ParseString(""); errors.Is(err, io.EOF) {
		t.Errorf("Parse empty: error %v should not match %v", err, io.EOF)
	}

	p := jstream.NewParser(strings.NewReader(" \n "))
	if _, err := p.Next(); err == nil || !p.Empty() {
		t.Errorf("Next on blank input: got %v, Empty=%v; want error, Empty=true", err, p.Empty())
	}
	p = jstream.NewParser(strings.NewReader("[1,"))
	for p.HasNext() {
		p.Next()
	}
	if p.Empty() {
		t.Error("Empty: got true for a truncated document")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	v := testutil.MustParse(t, testJSON)

	path := filepath.Join(dir, "out.json")
	if err := jstream.WriteFile(path, v, "  "); err != nil {
		t.Fatalf("WriteFile: unexpected error: %v", err)
	}
	got, err := jstream.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: unexpected error: %v", err)
	}
	if diff := testutil.Diff(v, got); diff != "" {
		t.Errorf("ParseFile (-want, +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if text, _ := jstream.ToPrettyText(v, "  "); string(data) != text {
		t.Errorf("File contents:\n got %s\nwant %s", data, text)
	}

	if err := jstream.WriteFile(path, v, "--"); !errors.Is(err, jstream.ErrInvalidIndent) {
		t.Errorf("WriteFile: got %v, want %v", err, jstream.ErrInvalidIndent)
	}
	if _, err := jstream.ParseFile(filepath.Join(dir, "nonesuch.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile: got %v, want %v", err, os.ErrNotExist)
	}
}

// randomValue constructs a pseudo-random value with at most the given depth.
func randomValue(rng *rand.Rand, depth int) jval.Value {
	n := 6
	if depth <= 0 {
		n = 4 // scalars only
	}
	switch rng.IntN(n) {
	case 0:
		return jval.Null
	case 1:
		return jval.Bool(rng.IntN(2) == 0)
	case 2:
		const alphabet = "ab\"\\/\n\t\x01é 😀 "
		rs := []rune(alphabet)
		var sb strings.Builder
		for range rng.IntN(8) {
			sb.WriteRune(rs[rng.IntN(len(rs))])
		}
		return jval.String(sb.String())
	case 3:
		z := rng.Int64N(2_000_000) - 1_000_000
		num, err := jval.ParseNumber(fmt.Sprintf("%de%d", z, rng.IntN(60)-30))
		if err != nil {
			panic(err)
		}
		return num
	case 4:
		var b jval.ArrayBuilder
		for range rng.IntN(5) {
			b.Add(randomValue(rng, depth-1))
		}
		a, _ := b.Build()
		return a
	default:
		var b jval.ObjectBuilder
		for range rng.IntN(5) {
			b.Set(fmt.Sprintf("k%d", rng.IntN(6)), randomValue(rng, depth-1))
		}
		o, _ := b.Build()
		return o
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(20241014, 1))
	for i := range 500 {
		var v jval.Structure
		if i%2 == 0 {
			v = jval.ArrayOf(randomValue(rng, 5))
		} else {
			v = jval.ObjectOf(jval.Member{Key: "root", Value: randomValue(rng, 5)})
		}

		text := jstream.ToText(v)
		got, err := jstream.ParseString(text)
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", text, err)
		}
		if diff := testutil.Diff(v, got); diff != "" {
			t.Fatalf("Round trip of %#q (-want, +got):\n%s", text, diff)
		}
		if again := jstream.ToText(got); again != text {
			t.Fatalf("Output is not stable:\n first: %s\nsecond: %s", text, again)
		}

		pretty, err := jstream.ToPrettyText(v, "\t")
		if err != nil {
			t.Fatalf("ToPrettyText: unexpected error: %v", err)
		}
		if got, err := jstream.ParseString(pretty); err != nil {
			t.Fatalf("Parse pretty %#q: unexpected error: %v", pretty, err)
		} else if !got.Equal(v) {
			t.Fatalf("Pretty round trip of %#q: got %v", pretty, got)
		}
	}
}
