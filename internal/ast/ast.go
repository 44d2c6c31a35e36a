// Package ast defines the syntax tree that the detokenizers reconstruct
// from a tokenized BASIC program, together with the node-directed pretty
// printer that renders it back to source text.
package ast

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Node is the base interface for all tree nodes. Print renders the node as
// BASIC source text; col is the output column at which the node starts,
// used by declarations to pad their AS keyword to a recorded column.
type Node interface {
	Print(col int) string
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that occupies a statement slot in a line.
type Statement interface {
	Node
	statementNode()
}

// Missing marks an argument that is syntactically absent but positionally
// preserved in the opcode stream. Builtin dispatch either filters it out or
// turns it into an elided (nil) argument before a statement is emitted.
var Missing Expression = &missingArgument{}

type missingArgument struct{}

func (m *missingArgument) expressionNode()      {}
func (m *missingArgument) Print(col int) string { return "" }

// ClearMissing drops every Missing entry from args.
func ClearMissing(args []Expression) []Expression {
	out := make([]Expression, 0, len(args))
	for _, arg := range args {
		if arg != Missing {
			out = append(out, arg)
		}
	}
	return out
}

// ReplaceMissing turns every Missing entry into a nil (elided) argument.
func ReplaceMissing(args []Expression) []Expression {
	out := make([]Expression, 0, len(args))
	for _, arg := range args {
		if arg == Missing {
			out = append(out, nil)
		} else {
			out = append(out, arg)
		}
	}
	return out
}

// printOpt renders an optional node; a nil node prints as the empty string.
func printOpt(n Node, col int) string {
	if n == nil {
		return ""
	}
	return n.Print(col)
}

// printList renders a comma-separated argument list.
func printList(args []Expression, col int) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = printOpt(arg, col)
	}
	return strings.Join(parts, ", ")
}

// cp437 decodes on-disk text. Tokenized BASIC files carry code page 437
// bytes in names, string literals and comments.
func cp437(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.CodePage437.DecodeByte(c))
	}
	return sb.String()
}

// FloatString renders v the way the original BASIC environments echo float
// literals: shortest round-trip digits, fixed notation for decimal
// exponents in [-4, 16), exponent notation with a two-digit exponent
// otherwise, and a ".0" tail on integral fixed-notation values.
func FloatString(v float64) string {
	if v == 0 {
		if strings.HasPrefix(strconv.FormatFloat(v, 'g', -1, 64), "-") {
			return "-0.0"
		}
		return "0.0"
	}
	es := strconv.FormatFloat(v, 'e', -1, 64)
	ei := strings.IndexByte(es, 'e')
	exp, _ := strconv.Atoi(es[ei+1:])
	if exp < -4 || exp >= 16 {
		return es
	}
	fs := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(fs, ".") {
		fs += ".0"
	}
	return fs
}
