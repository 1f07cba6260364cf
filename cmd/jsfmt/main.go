// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program jsfmt reads JSON documents and writes them back out in a chosen
// format.
//
// Usage:
//
//	jsfmt [--indent S] [--compact] [--canonical] [--events] [--path EXPR] [FILE ...]
//
// Each named file (or standard input, if none are given) may contain any
// number of documents. By default each document is written indented by two
// spaces. With --path, the JSONPath expression is evaluated against each
// document and the array of selected values is written instead.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/jpath"
	"github.com/creachadair/jstream/jval"
	"github.com/creachadair/jstream/query"
	"github.com/fatih/color"
)

type settings struct {
	Indent    string   `arg:"--indent" default:"  " help:"indentation for each nesting level"`
	Compact   bool     `arg:"--compact" help:"write compact output with no whitespace"`
	Canonical bool     `arg:"--canonical" help:"write canonical (RFC 8785) output"`
	Events    bool     `arg:"--events" help:"write the parse events of each document"`
	Path      string   `arg:"--path" help:"JSONPath expression to select from each document"`
	Files     []string `arg:"positional" placeholder:"FILE" help:"input files (default stdin)"`

	query query.Query
}

func (settings) Description() string {
	return "Read JSON documents and write them in a chosen format."
}

var (
	errLabel  = color.New(color.FgHiRed, color.Bold).Sprint
	fileLabel = color.New(color.FgCyan).Sprint
)

func main() { os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)) }

// run executes the program with the given arguments and streams, and returns
// its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg settings
	p, err := arg.NewParser(arg.Config{Program: "jsfmt"}, &cfg)
	if err != nil {
		fmt.Fprintln(stderr, errLabel("error:"), err)
		return 2
	}
	if err := p.Parse(args); errors.Is(err, arg.ErrHelp) {
		p.WriteHelp(stdout)
		return 0
	} else if err != nil {
		p.WriteUsage(stderr)
		fmt.Fprintln(stderr, errLabel("error:"), err)
		return 2
	}
	if err := cfg.check(); err != nil {
		fmt.Fprintln(stderr, errLabel("error:"), err)
		return 2
	}

	if len(cfg.Files) == 0 {
		if err := cfg.process(stdin, stdout); err != nil {
			fmt.Fprintln(stderr, errLabel("error:"), fileLabel("<stdin>:"), err)
			return 1
		}
		return 0
	}
	status := 0
	for _, path := range cfg.Files {
		if err := cfg.processFile(path, stdout); err != nil {
			fmt.Fprintln(stderr, errLabel("error:"), fileLabel(path+":"), err)
			status = 1
		}
	}
	return status
}

func (s *settings) check() error {
	if s.Compact && s.Canonical {
		return errors.New("--compact and --canonical are mutually exclusive")
	} else if s.Events && (s.Path != "" || s.Canonical) {
		return errors.New("--events cannot be combined with --path or --canonical")
	}
	if !s.Compact {
		if _, err := jstream.NewPrettyGenerator(io.Discard, s.Indent); err != nil {
			return fmt.Errorf("--indent: %w", err)
		}
	}
	if s.Path != "" {
		e, err := jpath.Parse(s.Path)
		if err != nil {
			return fmt.Errorf("--path: %w", err)
		}
		s.query, err = e.Query()
		if err != nil {
			return fmt.Errorf("--path: %w", err)
		}
	}
	return nil
}

func (s *settings) processFile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.process(f, w)
}

func (s *settings) process(r io.Reader, w io.Writer) error {
	if s.Events {
		return writeEvents(r, w)
	}
	rd := jstream.NewReader(r)
	for {
		doc, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		var out jval.Value = doc
		if s.query != nil {
			out, err = query.Eval(doc, s.query)
			if err != nil {
				return err
			}
		}
		if err := s.write(w, out); err != nil {
			return err
		}
	}
}

func (s *settings) write(w io.Writer, v jval.Value) error {
	switch {
	case s.Canonical:
		data, err := jstream.Canonical(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case s.Compact:
		_, err := fmt.Fprintf(w, "%s\n", jstream.ToBytes(v))
		return err
	default:
		if err := jstream.WritePretty(w, v, s.Indent); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}

// writeEvents writes one line for each parse event of each document in r.
func writeEvents(r io.Reader, w io.Writer) error {
	sc := jstream.NewScanner(r)
	for {
		p := jstream.NewParserWithScanner(sc)
		for evt, err := range p.Events() {
			if err != nil {
				if p.Empty() {
					return nil // no more documents
				}
				return err
			}
			if _, err := fmt.Fprintf(w, "%d\t%v\n", evt.Offset, evt); err != nil {
				return err
			}
		}
	}
}
