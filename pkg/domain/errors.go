package domain

import (
	"errors"
	"fmt"
)

// ErrGrammarSyntax is matched by every GrammarSyntaxError.
var ErrGrammarSyntax = errors.New("grammar syntax error")

// ErrUnbalancedBracket is matched by every UnbalancedBracketError.
var ErrUnbalancedBracket = errors.New("unbalanced bracket")

// ErrInvalidParameter is matched by every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrNoProgram is returned when processing is requested before any grammar was loaded.
var ErrNoProgram = errors.New("no program loaded")

// GrammarSyntaxError reports malformed grammar text. Line is 1-based; zero means the error
// concerns the grammar as a whole (e.g. a missing axiom).
type GrammarSyntaxError struct {
	Line   int
	Text   string
	Reason string
}

func (e *GrammarSyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("grammar: %s", e.Reason)
	}
	return fmt.Sprintf("grammar line %d: %s (%q)", e.Line, e.Reason, e.Text)
}

func (e *GrammarSyntaxError) Is(target error) bool {
	return target == ErrGrammarSyntax
}

// UnbalancedBracketError reports a pop with an empty state stack.
// Index is the position of the offending symbol in the interpreted sequence.
type UnbalancedBracketError struct {
	Index int
}

func (e *UnbalancedBracketError) Error() string {
	return fmt.Sprintf("unbalanced bracket: pop with empty stack at symbol %d", e.Index)
}

func (e *UnbalancedBracketError) Is(target error) bool {
	return target == ErrUnbalancedBracket
}

// InvalidParameterError reports a non-finite or nonsensical numeric input.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// ErrCacheMiss is returned by branch caches for keys they do not hold.
var ErrCacheMiss = errors.New("branch cache miss")

// ErrPresetNotFound is returned when a named grammar is not registered.
var ErrPresetNotFound = errors.New("preset not found")

// ErrInvalidRequest is returned for generation requests that cannot be served as written.
var ErrInvalidRequest = errors.New("invalid request")

// ErrIterationLimit is matched by every IterationLimitError.
var ErrIterationLimit = errors.New("iteration limit exceeded")

// IterationLimitError reports a request deeper than the server allows.
type IterationLimitError struct {
	Requested uint
	Max       uint
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("iterations %d exceed the limit of %d", e.Requested, e.Max)
}

func (e *IterationLimitError) Is(target error) bool {
	return target == ErrIterationLimit
}
