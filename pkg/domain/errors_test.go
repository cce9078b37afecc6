package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		msg    string
	}{
		{
			name:   "syntax with line",
			err:    &GrammarSyntaxError{Line: 3, Text: "F =>", Reason: "unrecognized statement"},
			target: ErrGrammarSyntax,
			msg:    `grammar line 3: unrecognized statement ("F =>")`,
		},
		{
			name:   "syntax without line",
			err:    &GrammarSyntaxError{Reason: "missing axiom statement"},
			target: ErrGrammarSyntax,
			msg:    "grammar: missing axiom statement",
		},
		{
			name:   "unbalanced",
			err:    &UnbalancedBracketError{Index: 4},
			target: ErrUnbalancedBracket,
			msg:    "unbalanced bracket: pop with empty stack at symbol 4",
		},
		{
			name:   "parameter",
			err:    &InvalidParameterError{Name: "step", Value: -1, Reason: "must be positive"},
			target: ErrInvalidParameter,
			msg:    "invalid step -1: must be positive",
		},
		{
			name:   "iteration limit",
			err:    &IterationLimitError{Requested: 12, Max: 10},
			target: ErrIterationLimit,
			msg:    "iterations 12 exceed the limit of 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.msg {
				t.Errorf("Error() = %q, want %q", got, tt.msg)
			}
			wrapped := fmt.Errorf("loading: %w", tt.err)
			if !errors.Is(wrapped, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.target)
			}
			if errors.Is(wrapped, ErrNoProgram) {
				t.Errorf("%v unexpectedly matches ErrNoProgram", wrapped)
			}
		})
	}
}
