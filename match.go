// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package pjson

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// DefaultMaxDepth is the object and array nesting limit enforced by a
// Grammar unless overridden with SetMaxDepth. Bounding the nesting depth
// bounds the recursion the matcher (and any consumer of its trees) performs,
// so that a hostile deeply-nested input cannot exhaust the stack.
const DefaultMaxDepth = 10000

// A Grammar is a Matcher for the standard JSON grammar. A zero Grammar is
// ready for use with the default depth limit.
type Grammar struct {
	maxDepth int
}

// NewGrammar constructs a new Grammar with the default settings.
func NewGrammar() *Grammar { return new(Grammar) }

// SetMaxDepth configures the object and array nesting limit for subsequent
// matches. If n <= 0 the default limit is restored.
func (g *Grammar) SetMaxDepth(n int) { g.maxDepth = n }

func (g *Grammar) limit() int {
	if g.maxDepth > 0 {
		return g.maxDepth
	}
	return DefaultMaxDepth
}

// Match reads all of input and matches it against rule. In case of error,
// the returned error has concrete type [*SyntaxError] and no tree is
// returned.
func (g *Grammar) Match(rule Rule, input io.Reader) (*Node, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	return g.match(rule, data)
}

// MatchString matches input against rule using a default Grammar.
func MatchString(rule Rule, input string) (*Node, error) {
	return NewGrammar().match(rule, []byte(input))
}

func (g *Grammar) match(rule Rule, input []byte) (n *Node, err error) {
	m := &matcher{s: NewScanner(input), input: input, limit: g.limit()}
	defer m.recoverMatchError(&n, &err)

	n = m.matchRule(rule)
	m.requireEOF()
	return n, nil
}

// A matcher holds the state of a single match: the token scanner, the full
// input for slicing node text, and the current nesting depth.
type matcher struct {
	s     *Scanner
	input []byte
	limit int
	depth int
}

func (m *matcher) recoverMatchError(np **Node, errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(*SyntaxError); ok {
			*np, *errp = nil, err
		} else {
			panic(serr)
		}
	}
}

// matchRule dispatches on the start rule. Matching the silent rules "json"
// and "string" yields their interior "value" and "chars" nodes.
// Precondition: no token has been read.
func (m *matcher) matchRule(rule Rule) *Node {
	switch rule {
	case RuleJSON, RuleValue:
		m.advance()
		return m.matchValue()
	case RuleObject:
		m.advance(LBrace)
		return m.matchObject()
	case RuleArray:
		m.advance(LSquare)
		return m.matchArray()
	case RuleString:
		m.advance(String)
		return m.charsNode()
	case RuleNumber:
		m.advance(Integer, Number)
		return m.leaf(RuleNumber)
	case RuleBool:
		m.advance(True, False)
		return m.leaf(RuleBool)
	case RuleNull:
		m.advance(Null)
		return m.leaf(RuleNull)
	}
	m.syntaxError(nil, "no start rule %q", rule)
	panic("unreachable")
}

// matchValue matches a single value of any type and wraps it in a value
// node. Precondition: the current token is the first token of the value.
func (m *matcher) matchValue() *Node {
	start := m.s.Location()
	kid := m.matchElement()
	return &Node{
		Rule:     RuleValue,
		Text:     m.textBetween(start, m.s.Location()),
		Children: []*Node{kid},
		Loc:      spanLoc(start, m.s.Location()),
	}
}

// matchElement matches the concrete production for the current token.
func (m *matcher) matchElement() *Node {
	switch tok := m.s.Token(); tok {
	case LBrace:
		return m.matchObject()
	case LSquare:
		return m.matchArray()
	case String:
		return m.charsNode()
	case Integer, Number:
		return m.leaf(RuleNumber)
	case True, False:
		return m.leaf(RuleBool)
	case Null:
		return m.leaf(RuleNull)
	case RBrace, RSquare, Comma, Colon:
		m.syntaxError(nil, "unexpected %v", tok)
	default:
		m.syntaxError(nil, "unknown token %v", tok)
	}
	panic("unreachable")
}

// matchObject matches zero or more "key": value pairs.
// Precondition: token == LBrace. Postcondition: token == RBrace.
func (m *matcher) matchObject() *Node {
	m.enter()
	defer m.leave()

	start := m.s.Location()
	n := &Node{Rule: RuleObject}
	if m.advance(RBrace, String) == String {
		for {
			n.Children = append(n.Children, m.matchPair())

			// Check whether we have more pairs (",") or are done ("}").
			if m.advance(RBrace, Comma) == RBrace {
				break
			}
			m.advance(String) // advance to next key
		}
	}
	n.Loc = spanLoc(start, m.s.Location())
	n.Text = m.textBetween(start, m.s.Location())
	return n
}

// matchPair matches a single "key": value pair.
// Precondition: the current token is the String key.
func (m *matcher) matchPair() *Node {
	start := m.s.Location()
	key := m.charsNode()
	m.advance(Colon)
	m.advance()
	val := m.matchValue()
	return &Node{
		Rule:     RulePair,
		Text:     m.textBetween(start, m.s.Location()),
		Children: []*Node{key, val},
		Loc:      spanLoc(start, m.s.Location()),
	}
}

// matchArray matches zero or more comma-separated values.
// Precondition: token == LSquare. Postcondition: token == RSquare.
func (m *matcher) matchArray() *Node {
	m.enter()
	defer m.leave()

	start := m.s.Location()
	n := &Node{Rule: RuleArray}
	if m.advance() != RSquare {
		for {
			n.Children = append(n.Children, m.matchValue())
			if m.advance(RSquare, Comma) == RSquare {
				break
			}
			m.advance()
		}
	}
	n.Loc = spanLoc(start, m.s.Location())
	n.Text = m.textBetween(start, m.s.Location())
	return n
}

// leaf constructs a leaf node from the current token.
func (m *matcher) leaf(rule Rule) *Node {
	loc := m.s.Location()
	return &Node{Rule: rule, Text: string(m.s.Text()), Loc: loc}
}

// charsNode constructs a chars node from the current String token, with the
// enclosing quotation marks excluded from the text and span.
func (m *matcher) charsNode() *Node {
	loc := m.s.Location()
	loc.Pos++
	loc.End--
	loc.First.Column++
	loc.Last.Column--
	text := m.s.Text()
	return &Node{Rule: RuleChars, Text: string(text[1 : len(text)-1]), Loc: loc}
}

func (m *matcher) textBetween(first, last Location) string {
	return string(m.input[first.Pos:last.End])
}

func spanLoc(first, last Location) Location {
	return Location{
		Span:  Span{Pos: first.Pos, End: last.End},
		First: first.First,
		Last:  last.Last,
	}
}

func (m *matcher) enter() {
	m.depth++
	if m.depth > m.limit {
		m.syntaxError(nil, "nesting depth exceeds %d", m.limit)
	}
}

func (m *matcher) leave() { m.depth-- }

func (m *matcher) advance(tokens ...Token) Token {
	if !m.s.Next() {
		err := m.s.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		m.syntaxError(err, "%v", tokLabel(tokens, err))
	}
	tok := m.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		m.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

// requireEOF reports a syntax error if any input remains after the match.
func (m *matcher) requireEOF() {
	if m.s.Next() {
		m.syntaxError(nil, "unexpected %v after the match", m.s.Token())
	} else if err := m.s.Err(); err != nil {
		m.syntaxError(err, "%v", err)
	}
}

func (m *matcher) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: m.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the matcher.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
