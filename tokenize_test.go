// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents_test

import (
	"testing"

	"github.com/creachadair/jevents"
	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	type tok struct {
		Kind jevents.Kind
		Text string
		Size int
	}
	tests := []struct {
		input string
		want  []tok
	}{
		// Single values. Note string token text excludes the quotes.
		{`""`, []tok{{jevents.String, ``, 0}}},
		{`"a b c"`, []tok{{jevents.String, `a b c`, 0}}},
		{`"a\nb\tc"`, []tok{{jevents.String, `a\nb\tc`, 0}}},
		{`true`, []tok{{jevents.Primitive, `true`, 0}}},
		{`null`, []tok{{jevents.Primitive, `null`, 0}}},
		{`0`, []tok{{jevents.Primitive, `0`, 0}}},
		{`-0.001e-100`, []tok{{jevents.Primitive, `-0.001e-100`, 0}}},

		// Composites: a composite token is followed by its children and
		// counts them in Size; object members count keys plus values.
		{`[]`, []tok{{jevents.Array, `[]`, 0}}},
		{`{}`, []tok{{jevents.Object, `{}`, 0}}},
		{`[ {} ]`, []tok{
			{jevents.Array, `[ {} ]`, 1},
			{jevents.Object, `{}`, 0},
		}},
		{`{"a": "b"}`, []tok{
			{jevents.Object, `{"a": "b"}`, 2},
			{jevents.String, `a`, 0},
			{jevents.String, `b`, 0},
		}},
		{`[1, "x", [true]]`, []tok{
			{jevents.Array, `[1, "x", [true]]`, 3},
			{jevents.Primitive, `1`, 0},
			{jevents.String, `x`, 0},
			{jevents.Array, `[true]`, 1},
			{jevents.Primitive, `true`, 0},
		}},
		{`[{"EventCode": "0x00", "x": [1, 2]}]`, []tok{
			{jevents.Array, `[{"EventCode": "0x00", "x": [1, 2]}]`, 1},
			{jevents.Object, `{"EventCode": "0x00", "x": [1, 2]}`, 4},
			{jevents.String, `EventCode`, 0},
			{jevents.String, `0x00`, 0},
			{jevents.String, `x`, 0},
			{jevents.Array, `[1, 2]`, 2},
			{jevents.Primitive, `1`, 0},
			{jevents.Primitive, `2`, 0},
		}},
	}

	for _, test := range tests {
		data := []byte(test.input)
		toks, err := jevents.Tokenize(data)
		if err != nil {
			t.Errorf("Tokenize(%#q) failed: %v", test.input, err)
			continue
		}
		var got []tok
		for _, tk := range toks {
			got = append(got, tok{tk.Kind, string(tk.Text(data)), tk.Size})
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []string{
		``, `  `, "\n\t",

		// Unbalanced and malformed structure.
		`{`, `}`, `[`, `]`, `[1,]`, `{"a"}`, `{"a":}`, `{"a":1,}`, `{1:2}`,
		`{"a" "b"}`, `[true false]`,

		// Bad values.
		`01`, `-01.5`, `1.`, `1e`, `"abc`, `"a\x"`, `"a\u12"`, `nulL`, `frue`,

		// Trailing input after the value.
		`[1] 2`, `{} {}`,

		// Comments are rejected unless enabled.
		`// hi
		[]`,
	}

	for _, input := range tests {
		toks, err := jevents.Tokenize([]byte(input))
		if err == nil {
			t.Errorf("Tokenize(%#q): got %d tokens, want error", input, len(toks))
		} else {
			t.Logf("Tokenize(%#q): got expected error: %v", input, err)
		}
	}
}

func TestTokenLine(t *testing.T) {
	const input = `[
  {"a": "b"},
  {}
]`
	data := []byte(input)
	toks, err := jevents.Tokenize(data)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []int{1, 2, 2, 2, 3}
	var got []int
	for _, tk := range toks {
		got = append(got, tk.Line(data))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines: (-want, +got)\n%s", diff)
	}
}
