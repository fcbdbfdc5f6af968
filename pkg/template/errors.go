package template

import "fmt"

// ErrorKind categorizes a rendering failure. The dispatcher maps each kind
// to a distinct client-facing diagnostic.
type ErrorKind string

const (
	// ErrUndefinedReference means the template referenced a name that is
	// not present in the context.
	ErrUndefinedReference ErrorKind = "undefined_reference"

	// ErrSyntax means the template itself is malformed.
	ErrSyntax ErrorKind = "syntax"

	// ErrRender covers any other rendering failure, such as a helper
	// rejecting its input.
	ErrRender ErrorKind = "render"
)

// Error is a categorized rendering error.
type Error struct {
	Kind    ErrorKind
	Expr    string
	Message string
}

func (e *Error) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("template %s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("template %s error in %q: %s", e.Kind, e.Expr, e.Message)
}

func undefinedErr(expr string) *Error {
	return &Error{Kind: ErrUndefinedReference, Expr: expr, Message: "no such name in context"}
}

func syntaxErr(expr, msg string) *Error {
	return &Error{Kind: ErrSyntax, Expr: expr, Message: msg}
}

func renderErr(expr, msg string) *Error {
	return &Error{Kind: ErrRender, Expr: expr, Message: msg}
}
