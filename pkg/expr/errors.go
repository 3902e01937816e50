package expr

import "fmt"

// ParseError reports a syntax error while parsing an expression string.
type ParseError struct {
	Description string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expr: parse error: %s", e.Description)
}

// EvalError reports a failure evaluating a well-formed expression: an
// undefined name, or a non-number operand to an arithmetic or comparison
// operator.
type EvalError struct {
	Description string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("expr: eval error: %s", e.Description)
}
