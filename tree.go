// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package pjson

import "io"

// A Rule names a production of the JSON grammar. The rule of a parse tree
// node tells its consumer which shape of node it is looking at.
type Rule string

// Constants defining the grammar productions reported in parse trees.
// The "json" and "string" productions are silent: matching them yields a
// tree rooted at their single interior production ("value" and "chars"
// respectively), as in the grammar they only add input delimiters.
const (
	RuleJSON   Rule = "json"   // a complete document: a value spanning the input
	RuleValue  Rule = "value"  // wrapper with one child, the concrete value
	RuleObject Rule = "object" // children are pair nodes
	RulePair   Rule = "pair"   // children are a chars key and a value
	RuleArray  Rule = "array"  // children are value nodes
	RuleString Rule = "string" // silent: a quoted chars node
	RuleChars  Rule = "chars"  // string content, escape sequences verbatim
	RuleNumber Rule = "number" // a numeric literal
	RuleBool   Rule = "bool"   // "true" or "false"
	RuleNull   Rule = "null"   // the null constant
)

// A Node is a single node of a parse tree produced by matching input text
// against the grammar. Each node records the rule that matched, the matched
// substring of the input, and the matches of the rule's interior productions
// in input order.
//
// The text of a composite node spans everything the rule matched, including
// punctuation; a chars node's text is the string content without its
// enclosing quotes, with any escape sequences left undecoded.
type Node struct {
	Rule     Rule     // the rule that produced this node
	Text     string   // the matched substring of the input
	Children []*Node  // interior matches, in input order
	Loc      Location // location of the match in the input
}

// Span returns the source span of the match.
func (n *Node) Span() Span { return n.Loc.Span }

// A Matcher matches input text against a named rule of the JSON grammar and
// reports the resulting parse tree. Matching consumes the whole input: text
// remaining after the rule is matched is a syntax error.
//
// Consumers of parse trees should accept any Matcher rather than a concrete
// implementation, so that trees can also be constructed by hand.
type Matcher interface {
	Match(rule Rule, input io.Reader) (*Node, error)
}
