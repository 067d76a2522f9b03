// Package derivexpr parses the expressions of unit derivations, such as
// "{0} / {1}", where "{i}" stands for the i-th element of the derivation
// signature.
package derivexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// SyntaxError locates a parse failure inside the expression text.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Expression is a parsed derivation expression.
type Expression struct {
	Source string
	Root   *Expr
	// Placeholders in source order.
	Placeholders []*Placeholder
}

// Parse parses src. Failures are returned as *SyntaxError.
func Parse(src string) (*Expression, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Msg: "expression is empty"}
	}
	root, err := parser.ParseString("", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Offset: perr.Position().Offset, Msg: perr.Message()}
		}
		return nil, &SyntaxError{Msg: err.Error()}
	}
	e := &Expression{Source: src, Root: root}
	e.Placeholders = collect(root, nil)
	return e, nil
}

func collect(e *Expr, out []*Placeholder) []*Placeholder {
	if e == nil {
		return out
	}
	out = collectTerm(e.Head, out)
	for _, t := range e.Tail {
		out = collectTerm(t.Term, out)
	}
	return out
}

func collectTerm(t *Term, out []*Placeholder) []*Placeholder {
	switch {
	case t == nil:
	case t.Placeholder != nil:
		out = append(out, t.Placeholder)
	case t.Group != nil:
		out = collect(t.Group, out)
	}
	return out
}

// Indices returns the distinct placeholder indices in first-use order.
func (e *Expression) Indices() []int {
	seen := make(map[int]bool, len(e.Placeholders))
	out := make([]int, 0, len(e.Placeholders))
	for _, p := range e.Placeholders {
		if !seen[p.Index] {
			seen[p.Index] = true
			out = append(out, p.Index)
		}
	}
	return out
}

// Uses reports whether placeholder i occurs.
func (e *Expression) Uses(i int) bool {
	for _, p := range e.Placeholders {
		if p.Index == i {
			return true
		}
	}
	return false
}

// String renders the expression in canonical spacing.
func (e *Expression) String() string {
	return e.Render(nil)
}

// Render prints the expression with "{i}" replaced by args[i] where present.
func (e *Expression) Render(args []string) string {
	var b strings.Builder
	renderExpr(&b, e.Root, args)
	return b.String()
}

func renderExpr(b *strings.Builder, e *Expr, args []string) {
	renderTerm(b, e.Head, args)
	for _, t := range e.Tail {
		b.WriteString(" " + t.Op + " ")
		renderTerm(b, t.Term, args)
	}
}

func renderTerm(b *strings.Builder, t *Term, args []string) {
	if t.Negated {
		b.WriteByte('-')
	}
	switch {
	case t.Placeholder != nil:
		if i := t.Placeholder.Index; i < len(args) {
			b.WriteString(args[i])
		} else {
			b.WriteString("{" + strconv.Itoa(i) + "}")
		}
	case t.Number != nil:
		b.WriteString(*t.Number)
	case t.Ident != nil:
		b.WriteString(*t.Ident)
	case t.Group != nil:
		b.WriteByte('(')
		renderExpr(b, t.Group, args)
		b.WriteByte(')')
	}
}
