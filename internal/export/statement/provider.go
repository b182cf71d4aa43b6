// Package statement renders annotations as a fragment of assignment
// statements in a Java-like language.
package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magcot/magcot/pkg/core"
)

// Signature says where the type name goes on the left-hand side.
type Signature string

const (
	// SignatureBefore writes "Point p".
	SignatureBefore Signature = "before"
	// SignatureAfter writes "p: Point".
	SignatureAfter Signature = "after"
	// SignatureScope writes "p::Point".
	SignatureScope Signature = "::after"
)

// Template is the shape shared by every statement of a fragment.
type Template struct {
	Prefixes  []string
	Signature Signature
	Sign      string
	New       bool
	Semicolon bool
}

// DefaultTemplate is "private static final T v = new T(...);".
func DefaultTemplate() Template {
	return Template{
		Prefixes:  []string{"private", "static", "final"},
		Signature: SignatureBefore,
		Sign:      "=",
		New:       true,
		Semicolon: true,
	}
}

// RawExp is written verbatim instead of as a string literal.
type RawExp string

// Provider builds assignment statements of one class.
type Provider struct {
	lhs string
	rhs string
}

// NewProvider prepares the statement layout of className.
func NewProvider(className string, t Template) (*Provider, error) {
	var lhs string
	switch t.Signature {
	case SignatureBefore, "":
		lhs = className + " %s"
	case SignatureAfter:
		lhs = "%s: " + className
	case SignatureScope:
		lhs = "%s::" + className
	default:
		return nil, fmt.Errorf("%w: unsupported type signature %q", core.ErrValidation, t.Signature)
	}
	if len(t.Prefixes) > 0 {
		lhs = strings.Join(t.Prefixes, " ") + " " + lhs
	}

	rhs := className + "(%s)"
	if t.New {
		rhs = "new " + rhs
	}
	if t.Semicolon {
		rhs += ";"
	}

	sign := t.Sign
	if sign == "" {
		sign = "="
	}
	return &Provider{lhs: lhs + " " + sign + " ", rhs: rhs}, nil
}

// Statement assigns a new instance built from params to varName.
func (p *Provider) Statement(varName string, params ...any) string {
	lits := make([]string, len(params))
	for i, param := range params {
		lits[i] = Literal(param)
	}
	return fmt.Sprintf(p.lhs, varName) + fmt.Sprintf(p.rhs, strings.Join(lits, ", "))
}

// Literal formats v as a literal of the target language.
func Literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case RawExp:
		return string(v)
	case string:
		return `"` + v + `"`
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
