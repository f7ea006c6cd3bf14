// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package pjson implements a grammar matcher for JSON that reports its
// results as rule-labeled parse trees.
//
// # Matching
//
// A Grammar matches input text against a named rule of the JSON grammar and
// reports the match as a tree of Node values. Match a complete document with
// the "json" rule:
//
//	tree, err := pjson.MatchString(pjson.RuleJSON, `{"ok": true}`)
//	if err != nil {
//	   log.Fatalf("Match failed: %v", err)
//	}
//
// Any sub-rule can serve as the start rule for unit-level matching, e.g.
// RuleNumber matches a bare numeric literal. Matching consumes the entire
// input; in case of error the returned error has concrete type
// [*SyntaxError] and no tree is returned.
//
// # Parse trees
//
// Each Node carries the rule that matched, the matched substring of the
// input, and the matches of the rule's interior productions in input order:
//
//	Rule     | Children                    | Text
//	-------- | --------------------------- | -------------------------------
//	value    | one concrete value node     | the value's full text
//	object   | pair nodes                  | "{" ... "}"
//	pair     | chars (key), value          | "key": value
//	array    | value nodes                 | "[" ... "]"
//	chars    | none                        | string content without quotes
//	number   | none                        | the numeric literal
//	bool     | none                        | "true" or "false"
//	null     | none                        | "null"
//
// Escape sequences inside chars text are left undecoded; see the value
// package for decoding.
//
// # Building values
//
// The value package converts parse trees into semantic JSON values. The
// Matcher interface decouples the two: anything that can produce a Node
// tree, including a test constructing nodes by hand, can feed the builder.
package pjson
