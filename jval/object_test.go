// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/creachadair/jstream/jval"
	"github.com/google/go-cmp/cmp"
)

func TestObject(t *testing.T) {
	o := jval.ObjectOf(
		jval.Field("name", "Alice"),
		jval.Field("age", 30),
		jval.Field("admin", true),
		jval.Field("pets", nil),
		jval.Field("tags", jval.ArrayOf("a", "b")),
		jval.Field("home", jval.ObjectOf(jval.Field("city", "Oslo"))),
	)
	if got, want := o.JSON(), `{"name":"Alice","age":30,"admin":true,"pets":null,"tags":["a","b"],"home":{"city":"Oslo"}}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if diff := cmp.Diff([]string{"name", "age", "admin", "pets", "tags", "home"}, o.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}

	if s, err := o.GetString("name"); err != nil || s != "Alice" {
		t.Errorf("GetString(name): got %q, %v", s, err)
	}
	if b, err := o.GetBool("admin"); err != nil || !b {
		t.Errorf("GetBool(admin): got %v, %v", b, err)
	}
	if n, err := o.GetNumber("age"); err != nil || !n.Equal(jval.Int(30)) {
		t.Errorf("GetNumber(age): got %v, %v", n, err)
	}
	if h, err := o.GetObject("home"); err != nil || h.Len() != 1 {
		t.Errorf("GetObject(home): got %v, %v", h, err)
	}
	if a, err := o.GetArray("tags"); err != nil || a.Len() != 2 {
		t.Errorf("GetArray(tags): got %v, %v", a, err)
	}
	if !o.IsNull("pets") || o.IsNull("name") || o.IsNull("nonesuch") {
		t.Error("IsNull reported the wrong result")
	}

	t.Run("NotFound", func(t *testing.T) {
		_, err := o.GetString("nonesuch")
		if !errors.Is(err, jval.ErrNotFound) {
			t.Errorf("GetString(nonesuch): got %v, want %v", err, jval.ErrNotFound)
		}
		var perr *jval.PathError
		if !errors.As(err, &perr) || perr.Step != "nonesuch" {
			t.Errorf("GetString(nonesuch): got %v, want *PathError", err)
		}
	})
	t.Run("WrongKind", func(t *testing.T) {
		_, err := o.GetNumber("name")
		var eerr *jval.ExpectationError
		if !errors.As(err, &eerr) {
			t.Fatalf("GetNumber(name): got %v, want *ExpectationError", err)
		}
		if errors.Is(err, jval.ErrNotFound) {
			t.Error("GetNumber(name): expectation error should not be ErrNotFound")
		}
		if got, want := err.Error(), `key "name": expected number, got string`; got != want {
			t.Errorf("Error: got %q, want %q", got, want)
		}
	})

	t.Run("All", func(t *testing.T) {
		var keys []string
		for key, v := range o.All() {
			keys = append(keys, key)
			if w, _ := o.Get(key); !w.Equal(v) {
				t.Errorf("All: key %q has value %v, want %v", key, v, w)
			}
		}
		if diff := cmp.Diff(o.Keys(), keys); diff != "" {
			t.Errorf("All keys (-want, +got):\n%s", diff)
		}
	})
}

func TestObjectDerived(t *testing.T) {
	o := jval.ObjectOf(jval.Field("a", 1), jval.Field("b", 2), jval.Field("c", 3))
	orig := o.JSON()

	tests := []struct {
		name string
		got  jval.Object
		want string
	}{
		{"UpdateExisting", o.Updated("a", jval.Int(10)), `{"b":2,"c":3,"a":10}`},
		{"UpdateNew", o.Updated("d", jval.Null), `{"a":1,"b":2,"c":3,"d":null}`},
		{"Remove", o.Removed("b"), `{"a":1,"c":3}`},
		{"RemoveMissing", o.Removed("x"), `{"a":1,"b":2,"c":3}`},
		{"Concat", o.Concat(jval.ObjectOf(jval.Field("b", "B"), jval.Field("z", 0))), `{"a":1,"c":3,"b":"B","z":0}`},
		{"ConcatEmpty", o.Concat(jval.Object{}), orig},
		{"EmptyUpdate", jval.Object{}.Updated("k", jval.True), `{"k":true}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got.JSON(); got != tc.want {
				t.Errorf("Result: got %#q, want %#q", got, tc.want)
			}
		})
	}
	if got := o.JSON(); got != orig {
		t.Errorf("Original was modified: got %#q, want %#q", got, orig)
	}
}

func TestArray(t *testing.T) {
	a := jval.ArrayOf[any]("x", 2, false, nil, jval.ArrayOf(1), jval.ObjectOf())
	if got, want := a.JSON(), `["x",2,false,null,[1],{}]`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if s, err := a.GetString(0); err != nil || s != "x" {
		t.Errorf("GetString(0): got %q, %v", s, err)
	}
	if b, err := a.GetBool(2); err != nil || b {
		t.Errorf("GetBool(2): got %v, %v", b, err)
	}
	if _, err := a.GetArray(4); err != nil {
		t.Errorf("GetArray(4): unexpected error: %v", err)
	}
	if _, err := a.GetObject(5); err != nil {
		t.Errorf("GetObject(5): unexpected error: %v", err)
	}
	if !a.IsNull(3) || a.IsNull(0) || a.IsNull(100) {
		t.Error("IsNull reported the wrong result")
	}

	var rerr *jval.RangeError
	if _, err := a.At(6); !errors.As(err, &rerr) {
		t.Errorf("At(6): got %v, want *RangeError", err)
	} else if got, want := err.Error(), "index 6 out of range (0..6)"; got != want {
		t.Errorf("At(6): got %q, want %q", got, want)
	}
	if _, err := a.GetNumber(-1); !errors.As(err, &rerr) {
		t.Errorf("GetNumber(-1): got %v, want *RangeError", err)
	}
	var eerr *jval.ExpectationError
	if _, err := a.GetNumber(0); !errors.As(err, &eerr) {
		t.Errorf("GetNumber(0): got %v, want *ExpectationError", err)
	}

	vs := a.Values()
	vs[0] = jval.String("changed")
	if s, _ := a.GetString(0); s != "x" {
		t.Errorf("Values aliases the array: got %q", s)
	}
}

func TestArrayNoAlias(t *testing.T) {
	a := jval.ArrayOf(1, 2, 3)

	r, err := a.Removed(1)
	if err != nil {
		t.Fatalf("Removed: unexpected error: %v", err)
	}
	u, err := a.Updated(1, jval.String("two"))
	if err != nil {
		t.Fatalf("Updated: unexpected error: %v", err)
	}
	app := r.Append(jval.Int(4))

	check := func(name string, v jval.Array, want string) {
		t.Helper()
		if got := v.JSON(); got != want {
			t.Errorf("%s: got %#q, want %#q", name, got, want)
		}
	}
	check("Original", a, `[1,2,3]`)
	check("Removed", r, `[1,3]`)
	check("Updated", u, `[1,"two",3]`)
	check("Appended", app, `[1,3,4]`)
	check("Prepended", a.Prepend(jval.Int(0)), `[0,1,2,3]`)
	check("Concat", a.Concat(u), `[1,2,3,1,"two",3]`)

	if a.Equal(r) || a.Equal(u) || r.Equal(u) {
		t.Error("Derived arrays should not be equal to the original")
	}
	if !a.Equal(jval.ArrayOf(1, 2, 3)) {
		t.Error("Original array changed")
	}

	if _, err := a.Removed(3); err == nil {
		t.Error("Removed(3): got nil, want error")
	}
	if _, err := a.Updated(-1, jval.Null); err == nil {
		t.Error("Updated(-1): got nil, want error")
	}

	s, err := a.Slice(1, 3)
	if err != nil {
		t.Fatalf("Slice: unexpected error: %v", err)
	}
	check("Slice", s, `[2,3]`)
	check("SliceAppend", s.Append(jval.True), `[2,3,true]`)
	check("AfterSliceAppend", a, `[1,2,3]`)
	if _, err := a.Slice(2, 1); err == nil {
		t.Error("Slice(2, 1): got nil, want error")
	}
}

func TestBuilders(t *testing.T) {
	t.Run("DuplicateKey", func(t *testing.T) {
		var b jval.ObjectBuilder
		b.Set("a", jval.Int(1)).Set("b", jval.Int(2)).Set("a", jval.Int(3))
		o, err := b.Build()
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"b", "a"}, o.Keys()); diff != "" {
			t.Errorf("Keys (-want, +got):\n%s", diff)
		}
		if got, want := o.JSON(), `{"b":2,"a":3}`; got != want {
			t.Errorf("JSON: got %#q, want %#q", got, want)
		}
	})

	t.Run("RepeatedKeys", func(t *testing.T) {
		const n = 50000
		var b jval.ObjectBuilder
		for round := range 3 {
			for i := range n {
				b.Set(fmt.Sprintf("k%d", i), jval.Int(int64(round*n+i)))
			}
		}
		b.Set("k0", jval.True)
		if b.Len() != n {
			t.Errorf("Len: got %d, want %d", b.Len(), n)
		}
		o, err := b.Build()
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		keys := o.Keys()
		if len(keys) != n || keys[0] != "k1" || keys[n-1] != "k0" {
			t.Errorf("Keys: got %d keys from %q to %q, want %d from k1 to k0",
				len(keys), keys[0], keys[len(keys)-1], n)
		}
		if v, _ := o.Get("k2"); !v.Equal(jval.Int(2*n + 2)) {
			t.Errorf("Get k2: got %v, want %d", v, 2*n+2)
		}

		// Writes after Build do not disturb the built object.
		b.Set("k1", jval.Null)
		p, _ := b.Build()
		if got := p.Keys(); got[0] != "k2" || got[n-1] != "k1" {
			t.Errorf("Keys after update: first %q, last %q; want k2, k1", got[0], got[n-1])
		}
		if got := o.Keys(); got[0] != "k1" {
			t.Errorf("Built object changed: first key %q, want k1", got[0])
		}
	})

	t.Run("Reuse", func(t *testing.T) {
		var b jval.ObjectBuilder
		b.Set("x", jval.True)
		first, _ := b.Build()
		b.Set("y", jval.False).Set("x", jval.Null)
		second, _ := b.Build()

		if got, want := first.JSON(), `{"x":true}`; got != want {
			t.Errorf("First: got %#q, want %#q", got, want)
		}
		if got, want := second.JSON(), `{"y":false,"x":null}`; got != want {
			t.Errorf("Second: got %#q, want %#q", got, want)
		}

		b.Reset()
		if b.Len() != 0 || b.Has("x") {
			t.Errorf("Reset: builder still has %d keys", b.Len())
		}
		third, _ := b.Build()
		if third.Len() != 0 {
			t.Errorf("After reset: got %v, want {}", third)
		}
	})

	t.Run("ArrayReuse", func(t *testing.T) {
		var b jval.ArrayBuilder
		b.Add(jval.Int(1), jval.Int(2))
		first, _ := b.Build()
		b.Add(jval.Int(3))
		second, _ := b.Build()
		if got := first.JSON(); got != `[1,2]` {
			t.Errorf("First: got %#q, want [1,2]", got)
		}
		if got := second.JSON(); got != `[1,2,3]` {
			t.Errorf("Second: got %#q, want [1,2,3]", got)
		}
		if first.Append(jval.Int(9)); first.Len() != 2 {
			t.Errorf("First changed after append: %v", first)
		}
	})

	t.Run("NilValue", func(t *testing.T) {
		var ab jval.ArrayBuilder
		ab.Add(jval.Int(1), nil, jval.Int(2))
		if _, err := ab.Build(); !errors.Is(err, jval.ErrNilValue) {
			t.Errorf("Array Build: got %v, want %v", err, jval.ErrNilValue)
		}

		var ob jval.ObjectBuilder
		ob.Set("ok", jval.Null).Set("bad", nil)
		_, err := ob.Build()
		if !errors.Is(err, jval.ErrNilValue) {
			t.Errorf("Object Build: got %v, want %v", err, jval.ErrNilValue)
		}
		var perr *jval.PathError
		if !errors.As(err, &perr) || perr.Step != "bad" {
			t.Errorf("Object Build: got %v, want error for key bad", err)
		}

		ob.Reset()
		if _, err := ob.Build(); err != nil {
			t.Errorf("Build after Reset: unexpected error: %v", err)
		}
	})
}

func TestCollect(t *testing.T) {
	doc := jval.ObjectOf(
		jval.Field("node", jval.ObjectOf(
			jval.Field("name", "host"),
			jval.Field("users", jval.ArrayOf(
				jval.ObjectOf(jval.Field("name", "root")),
				jval.ObjectOf(jval.Field("name", "admin")),
			)),
		)),
	)

	var got []string
	for _, v := range doc.Collect("name") {
		s, err := jval.Expect[jval.String](v)
		if err != nil {
			t.Fatalf("Collect: unexpected value %v", v)
		}
		got = append(got, string(s))
	}
	if diff := cmp.Diff([]string{"host", "root", "admin"}, got); diff != "" {
		t.Errorf("Collect (-want, +got):\n%s", diff)
	}

	nested := jval.ArrayOf(
		jval.ObjectOf(jval.Field("k", jval.ObjectOf(jval.Field("k", 2))), jval.Field("j", jval.ObjectOf(jval.Field("k", 3)))),
		jval.ObjectOf(jval.Field("k", 4)),
	)
	want := []jval.Value{
		jval.ObjectOf(jval.Field("k", 2)), jval.Int(2), jval.Int(3), jval.Int(4),
	}
	if diff := cmp.Diff(want, nested.Collect("k")); diff != "" {
		t.Errorf("Collect nested (-want, +got):\n%s", diff)
	}

	if got := jval.Collect(jval.String("name"), "name"); len(got) != 0 {
		t.Errorf("Collect on scalar: got %v, want empty", got)
	}
}
