package jpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jstream/query"
)

// Query compiles e into a query. Evaluating the query yields an array of the
// values selected by the expression, in document order. Steps that do not
// apply to a value (such as a missing key, or an index out of range) select
// nothing from it rather than failing.
//
// Query reports an error if e contains a filter or script step.
func (e Expr) Query() (query.Query, error) {
	out := query.Seq{query.Array{query.Path()}}
	for i, s := range e {
		q, err := s.compile()
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Op, err)
		}
		out = append(out, q...)
	}
	return out, nil
}

// compile returns a sequence of queries that map an array of input values to
// an array of output values for s.
func (s Step) compile() (query.Seq, error) {
	switch s.Op {
	case Member:
		if s.Arg2 == Wildcard.String() {
			return spread(query.Glob()), nil
		}
		return query.Seq{query.Some(s.Arg1)}, nil

	case Recur:
		if s.Arg2 == Wildcard.String() {
			// Recur yields one array of children for each descendant.
			return append(spread(query.Recur(query.Glob())), query.Flatten()), nil
		}
		return spread(query.Collect(s.Arg1)), nil

	case Name, QName:
		return query.Seq{query.Some(s.Arg1)}, nil

	case Wildcard:
		return spread(query.Glob()), nil

	case Index:
		offs, err := parseOffsets(s.Arg1)
		if err != nil {
			return nil, err
		} else if len(offs) == 1 {
			return query.Seq{query.Some(offs[0])}, nil
		}
		return spread(query.Pick(offs...)), nil

	case Slice:
		lo, err := parseOffset(s.Arg1)
		if err != nil {
			return nil, err
		}
		hi, err := parseOffset(s.Arg2)
		if err != nil {
			return nil, err
		}
		return spread(query.Slice(lo, hi)), nil

	case Filter, Script:
		return nil, fmt.Errorf("unsupported expression %q", s.Arg1)
	}
	return nil, fmt.Errorf("invalid operator %v", s.Op)
}

// spread applies q to each input and splices the arrays it yields.
func spread(q query.Query) query.Seq {
	return query.Seq{query.Some(q), query.Flatten()}
}

func parseOffsets(s string) ([]int, error) {
	var out []int
	for _, t := range strings.Split(s, ",") {
		v, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", t)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseOffset(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return v, nil
}
