// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"

	"github.com/creachadair/pjson"
)

// A StructureError reports a parse tree whose shape does not match the
// grammar contract the builder relies on: a node that requires interior
// nodes is missing one. It indicates a mismatch between matcher and
// builder, not bad input text.
type StructureError struct {
	Rule    pjson.Rule // the rule of the defective node
	Missing string     // a description of the missing part
}

// Error satisfies the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("node %q is missing its %s", e.Rule, e.Missing)
}

// A ConversionError reports a leaf node whose matched text does not parse
// as the primitive its rule denotes.
type ConversionError struct {
	Rule pjson.Rule // the rule of the leaf node
	Text string     // the text that failed to parse

	err error
}

// Error satisfies the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s literal %q: %v", e.Rule, e.Text, e.err)
}

// Unwrap supports error wrapping.
func (e *ConversionError) Unwrap() error { return e.err }

// An UnhandledRuleError reports a node carrying a rule label the builder
// does not recognize. The condition is a programming-contract violation
// between matcher and builder, but it is reported as an ordinary error so
// the caller stays in control.
type UnhandledRuleError struct {
	Rule pjson.Rule // the unrecognized rule label
}

// Error satisfies the error interface.
func (e *UnhandledRuleError) Error() string {
	return fmt.Sprintf("unhandled rule %q", e.Rule)
}
