// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"strconv"

	"github.com/creachadair/pjson"
)

// Build converts a grammar parse tree into the Value it denotes,
// dispatching on the rule label of n:
//
//	Rule    | Result
//	------- | ------------------------------------------------------
//	null    | Null
//	bool    | Bool, from the literal text "true" or "false"
//	number  | Number, from the 64-bit floating-point parse of the text
//	chars   | String, the matched text verbatim (escapes undecoded)
//	array   | Array of the built children, in order
//	object  | Object of the built pairs, later duplicate keys winning
//	value   | the built single child
//
// Any other rule is reported as an [*UnhandledRuleError]. The first failure
// at any depth stops the work and propagates: no partial tree is returned.
// Build does not modify n and retains no reference to it.
func Build(n *pjson.Node) (Value, error) {
	switch n.Rule {
	case pjson.RuleNull:
		return Null{}, nil

	case pjson.RuleBool:
		switch n.Text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, &ConversionError{Rule: n.Rule, Text: n.Text, err: strconv.ErrSyntax}

	case pjson.RuleNumber:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return nil, &ConversionError{Rule: n.Rule, Text: n.Text, err: err}
		}
		return Number(v), nil

	case pjson.RuleChars:
		return String(n.Text), nil

	case pjson.RuleArray:
		vs := make(Array, len(n.Children))
		for i, kid := range n.Children {
			v, err := Build(kid)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return vs, nil

	case pjson.RuleObject:
		vs := make(Object, len(n.Children))
		for _, pair := range n.Children {
			if len(pair.Children) == 0 {
				return nil, &StructureError{Rule: pair.Rule, Missing: "key"}
			} else if len(pair.Children) == 1 {
				return nil, &StructureError{Rule: pair.Rule, Missing: "value"}
			}
			v, err := Build(pair.Children[1])
			if err != nil {
				return nil, err
			}
			vs[pair.Children[0].Text] = v
		}
		return vs, nil

	case pjson.RuleValue:
		if len(n.Children) == 0 {
			return nil, &StructureError{Rule: n.Rule, Missing: "inner value"}
		}
		return Build(n.Children[0])
	}
	return nil, &UnhandledRuleError{Rule: n.Rule}
}

// MustBuild is Build for trees the caller knows to be well-formed, such as
// trees constructed by hand in tests. It panics if the tree does not build.
func MustBuild(n *pjson.Node) Value {
	v, err := Build(n)
	if err != nil {
		panic("value: " + err.Error())
	}
	return v
}
