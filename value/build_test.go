// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/pjson"
	"github.com/creachadair/pjson/value"
	"github.com/google/go-cmp/cmp"
)

func mustMatch(t *testing.T, rule pjson.Rule, input string) *pjson.Node {
	t.Helper()
	n, err := pjson.MatchString(rule, input)
	if err != nil {
		t.Fatalf("Match %q %#q: unexpected error: %v", rule, input, err)
	}
	return n
}

func TestBuild(t *testing.T) {
	tests := []struct {
		rule  pjson.Rule
		input string
		want  value.Value
	}{
		{pjson.RuleNull, `null`, value.Null{}},

		{pjson.RuleBool, `true`, value.Bool(true)},
		{pjson.RuleBool, `false`, value.Bool(false)},

		{pjson.RuleNumber, `123.456`, value.Number(123.456)},
		{pjson.RuleNumber, `-123.456`, value.Number(-123.456)},
		{pjson.RuleNumber, `0`, value.Number(0)},
		{pjson.RuleNumber, `123`, value.Number(123)},
		{pjson.RuleNumber, `-123`, value.Number(-123)},

		// Escape sequences are retained verbatim, not decoded.
		{pjson.RuleString, `"hello \" world\""`, value.String(`hello \" world\"`)},
		{pjson.RuleString, `""`, value.String("")},

		{pjson.RuleArray, `[]`, value.Array{}},
		{pjson.RuleArray, `["hello", "world"]`,
			value.Array{value.String("hello"), value.String("world")}},
		{pjson.RuleArray, `[1, [true, null]]`,
			value.Array{value.Number(1), value.Array{value.Bool(true), value.Null{}}}},

		{pjson.RuleObject, `{}`, value.Object{}},
		{pjson.RuleObject, `{"hello": "world"}`,
			value.Object{"hello": value.String("world")}},

		// Later duplicate keys silently replace earlier ones.
		{pjson.RuleObject, `{"a": 1, "b": 2, "a": 3}`,
			value.Object{"a": value.Number(3), "b": value.Number(2)}},

		{pjson.RuleJSON, `{
        "name": "John Doe",
        "age": 30,
        "is_student": false,
        "marks": [90.0, -80.0, 85.1],
        "address": {
            "city": "New York",
            "zip": 10001
        }
    }`, value.Object{
			"name":       value.String("John Doe"),
			"age":        value.Number(30),
			"is_student": value.Bool(false),
			"marks":      value.Array{value.Number(90), value.Number(-80), value.Number(85.1)},
			"address": value.Object{
				"city": value.String("New York"),
				"zip":  value.Number(10001),
			},
		}},
	}
	for _, test := range tests {
		got, err := value.Build(mustMatch(t, test.rule, test.input))
		if err != nil {
			t.Errorf("Build %q %#q: unexpected error: %v", test.rule, test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Build %q %#q: (-want, +got)\n%s", test.rule, test.input, diff)
		}
	}
}

func TestBuild_negativeZero(t *testing.T) {
	v, err := value.Build(mustMatch(t, pjson.RuleNumber, `-0`))
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if n := v.(value.Number); !math.Signbit(float64(n)) {
		t.Errorf("Build -0: got %v, want negative zero", float64(n))
	}
}

// A builder must accept trees from any source, not only the grammar; this
// tree is constructed by hand.
func TestBuild_handTree(t *testing.T) {
	tree := &pjson.Node{Rule: pjson.RuleObject, Children: []*pjson.Node{
		{Rule: pjson.RulePair, Children: []*pjson.Node{
			{Rule: pjson.RuleChars, Text: "nums"},
			{Rule: pjson.RuleValue, Children: []*pjson.Node{
				{Rule: pjson.RuleArray, Children: []*pjson.Node{
					{Rule: pjson.RuleNumber, Text: "1"},
					{Rule: pjson.RuleNumber, Text: "2.5"},
				}},
			}},
		}},
		{Rule: pjson.RulePair, Children: []*pjson.Node{
			{Rule: pjson.RuleChars, Text: "ok"},
			{Rule: pjson.RuleBool, Text: "true"}, // a bare pair value also works
		}},
	}}
	want := value.Object{
		"nums": value.Array{value.Number(1), value.Number(2.5)},
		"ok":   value.Bool(true),
	}

	got, err := value.Build(tree)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build: (-want, +got)\n%s", diff)
	}
}

// Build is a pure function: equal inputs yield equal outputs.
func TestBuild_pure(t *testing.T) {
	const input = `{"a": [1, {"b": null}], "c": "d"}`

	tree := mustMatch(t, pjson.RuleJSON, input)
	first, err := value.Build(tree)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	second, err := value.Build(tree)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated build differs: (-first, +second)\n%s", diff)
	}

	third, err := value.Build(mustMatch(t, pjson.RuleJSON, input))
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("Build of a fresh match differs: (-first, +third)\n%s", diff)
	}
}

func TestBuild_conversionErrors(t *testing.T) {
	tests := []*pjson.Node{
		{Rule: pjson.RuleBool, Text: "maybe"},
		{Rule: pjson.RuleBool, Text: "True"}, // literals are case-sensitive
		{Rule: pjson.RuleBool, Text: ""},
		{Rule: pjson.RuleNumber, Text: "12x"},
		{Rule: pjson.RuleNumber, Text: ""},
	}
	for _, tree := range tests {
		v, err := value.Build(tree)
		if err == nil {
			t.Errorf("Build %q %#q: got %+v, wanted error", tree.Rule, tree.Text, v)
			continue
		}
		var cerr *value.ConversionError
		if !errors.As(err, &cerr) {
			t.Errorf("Build %q %#q: error is %T, not *ConversionError", tree.Rule, tree.Text, err)
			continue
		}
		if cerr.Text != tree.Text {
			t.Errorf("Error text: got %#q, want %#q", cerr.Text, tree.Text)
		}
		t.Logf("Build %q %#q: got expected error: %v", tree.Rule, tree.Text, err)
	}

	// A number conversion failure wraps the strconv error.
	_, err := value.Build(&pjson.Node{Rule: pjson.RuleNumber, Text: "12x"})
	var nerr *strconv.NumError
	if !errors.As(err, &nerr) {
		t.Errorf("Build number error does not wrap *strconv.NumError: %v", err)
	}
}

func TestBuild_structureErrors(t *testing.T) {
	tests := []struct {
		name string
		tree *pjson.Node
		want string // the reported missing part
	}{
		{"EmptyValue", &pjson.Node{Rule: pjson.RuleValue}, "inner value"},
		{"PairNoKey", &pjson.Node{Rule: pjson.RuleObject, Children: []*pjson.Node{
			{Rule: pjson.RulePair},
		}}, "key"},
		{"PairNoValue", &pjson.Node{Rule: pjson.RuleObject, Children: []*pjson.Node{
			{Rule: pjson.RulePair, Children: []*pjson.Node{
				{Rule: pjson.RuleChars, Text: "a"},
			}},
		}}, "value"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := value.Build(test.tree)
			if err == nil {
				t.Fatalf("Build: got %+v, wanted error", v)
			}
			var serr *value.StructureError
			if !errors.As(err, &serr) {
				t.Fatalf("Build: error is %T, not *StructureError", err)
			}
			if serr.Missing != test.want {
				t.Errorf("Missing part: got %q, want %q", serr.Missing, test.want)
			}
		})
	}
}

func TestBuild_unhandledRule(t *testing.T) {
	tree := &pjson.Node{Rule: pjson.RuleArray, Children: []*pjson.Node{
		{Rule: pjson.RuleNumber, Text: "1"},
		{Rule: pjson.Rule("comment"), Text: "// howdy"},
		{Rule: pjson.RuleNumber, Text: "3"},
	}}

	// An unrecognized rule is an ordinary returned error, not a panic, and
	// it identifies the offending label.
	v, err := value.Build(tree)
	if err == nil {
		t.Fatalf("Build: got %+v, wanted error", v)
	}
	var uerr *value.UnhandledRuleError
	if !errors.As(err, &uerr) {
		t.Fatalf("Build: error is %T, not *UnhandledRuleError", err)
	}
	if got, want := uerr.Rule, pjson.Rule("comment"); got != want {
		t.Errorf("Offending rule: got %q, want %q", got, want)
	}
}

func TestMustBuild(t *testing.T) {
	v := value.MustBuild(mustMatch(t, pjson.RuleJSON, `[1, 2]`))
	if diff := cmp.Diff(value.Array{value.Number(1), value.Number(2)}, v); diff != "" {
		t.Errorf("MustBuild: (-want, +got)\n%s", diff)
	}

	mtest.MustPanic(t, func() {
		value.MustBuild(&pjson.Node{Rule: pjson.Rule("bogus")})
	})
}
