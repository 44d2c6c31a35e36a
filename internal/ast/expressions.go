package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is a name resolved from the file's name table: either textual
// bytes or a non-negative number (numeric labels and generated tokens).
// Numbers of 65530 and above are stored in their decimal text form.
type Identifier struct {
	text    []byte
	number  int
	numeric bool
	Offset  int
	Suffix  SuffixedType
}

// NewIdentifier builds an identifier from raw name bytes. A name consisting
// solely of decimal digits is a numeric label.
func NewIdentifier(name []byte, offset int) *Identifier {
	if n, ok := parseDigits(name); ok {
		return NewNumericIdentifier(n, offset)
	}
	return &Identifier{text: name, Offset: offset}
}

// NewNumericIdentifier builds a numeric label identifier.
func NewNumericIdentifier(n int, offset int) *Identifier {
	id := &Identifier{number: n, numeric: true, Offset: offset}
	if n >= 65530 {
		id.text = []byte(strconv.Itoa(n))
	}
	return id
}

func parseDigits(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// IsNumber reports whether the identifier is a numeric label.
func (i *Identifier) IsNumber() bool { return i.numeric }

// Number returns the label value; ok is false for textual identifiers and
// for numbers that were coerced to text form.
func (i *Identifier) Number() (int, bool) { return i.number, i.numeric && i.text == nil }

// Name returns the textual name bytes, nil for plain numeric labels.
func (i *Identifier) Name() []byte { return i.text }

func (i *Identifier) expressionNode() {}

func (i *Identifier) Print(col int) string {
	if i.text == nil {
		return strconv.Itoa(i.number)
	}
	text := cp437(i.text)
	if i.Suffix != nil {
		text += i.Suffix.Sigil()
	}
	return text
}

// ExternalObject wraps a VBDOS external object reference.
type ExternalObject struct {
	Name Expression
}

func (e *ExternalObject) expressionNode()      {}
func (e *ExternalObject) Print(col int) string { return e.Name.Print(col) }

// ArrayElement is a subscripted name. A nil Args with ImplicitDims set
// means the subscript list is absent, not empty.
type ArrayElement struct {
	Name         *Identifier
	Args         []Expression
	ImplicitDims bool
}

func (a *ArrayElement) expressionNode() {}

func (a *ArrayElement) Print(col int) string {
	if a.ImplicitDims {
		return a.Name.Print(col)
	}
	return a.Name.Print(col) + "(" + printList(a.Args, col) + ")"
}

// FieldSelection is a record field access: arg.field.
type FieldSelection struct {
	Arg   Expression
	Field Expression
}

func (f *FieldSelection) expressionNode() {}

func (f *FieldSelection) Print(col int) string {
	return f.Arg.Print(col) + "." + f.Field.Print(col)
}

// DecimalInteger is a decimal literal, optionally with a & long suffix.
type DecimalInteger struct {
	Value  int64
	Suffix string
}

func (d *DecimalInteger) expressionNode() {}

func (d *DecimalInteger) Print(col int) string {
	return strconv.FormatInt(d.Value, 10) + d.Suffix
}

// OctalInteger is an &O literal.
type OctalInteger struct {
	Value  int64
	Suffix string
}

func (o *OctalInteger) expressionNode() {}

func (o *OctalInteger) Print(col int) string {
	return fmt.Sprintf("&O%o", o.Value) + o.Suffix
}

// HexadecimalInteger is an &H literal.
type HexadecimalInteger struct {
	Value  int64
	Suffix string
}

func (h *HexadecimalInteger) expressionNode() {}

func (h *HexadecimalInteger) Print(col int) string {
	return fmt.Sprintf("&H%X", h.Value) + h.Suffix
}

// FloatLiteral is a single (!) or double (#) precision literal.
type FloatLiteral struct {
	Value  float64
	Suffix byte
}

func (f *FloatLiteral) expressionNode() {}

func (f *FloatLiteral) Print(col int) string {
	text := strings.ToUpper(FloatString(f.Value))
	text = strings.TrimSuffix(text, ".0")
	if strings.HasPrefix(text, "0.") {
		text = text[1:]
	}
	switch {
	case f.Suffix == '#' && strings.Contains(text, "E"):
		return strings.ReplaceAll(text, "E", "D")
	case f.Suffix == '!' && (strings.Contains(text, ".") || strings.Contains(text, "E")):
		return text
	default:
		return text + string(f.Suffix)
	}
}

// CurrencyLiteral is a fixed-point value scaled by 10000.
type CurrencyLiteral struct {
	Value uint64
}

func (c *CurrencyLiteral) expressionNode() {}

func (c *CurrencyLiteral) Print(col int) string {
	text := fmt.Sprintf("%05d", c.Value)
	text = text[:len(text)-4] + "." + text[len(text)-4:]
	text = strings.TrimRight(text, "0")
	text = strings.TrimRight(text, ".")
	return text + "@"
}

// StringLiteral is a quoted string.
type StringLiteral struct {
	Text []byte
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) Print(col int) string { return "\"" + cp437(s.Text) + "\"" }

// IncludeText is the quoted file name of a $INCLUDE metacommand.
type IncludeText struct {
	Text []byte
}

func (t *IncludeText) expressionNode()      {}
func (t *IncludeText) Print(col int) string { return "'" + cp437(t.Text) + "'" }

// Parentheses is an explicitly parenthesized expression.
type Parentheses struct {
	Argument Expression
}

func (p *Parentheses) expressionNode()      {}
func (p *Parentheses) Print(col int) string { return "(" + p.Argument.Print(col) + ")" }

// UnaryOperator applies NOT or unary minus.
type UnaryOperator struct {
	Operator string
	Argument Expression
}

func (u *UnaryOperator) expressionNode() {}

func (u *UnaryOperator) Print(col int) string {
	sep := " "
	if u.Operator == "-" {
		sep = ""
	}
	return u.Operator + sep + u.Argument.Print(col)
}

// BinaryOperator applies an infix operator.
type BinaryOperator struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryOperator) expressionNode() {}

func (b *BinaryOperator) Print(col int) string {
	return b.Left.Print(col) + " " + b.Operator + " " + b.Right.Print(col)
}

// TypeOfIsOperator is the VBDOS TYPEOF ... IS test.
type TypeOfIsOperator struct {
	Argument Expression
	TypeName *Identifier
}

func (t *TypeOfIsOperator) expressionNode() {}

func (t *TypeOfIsOperator) Print(col int) string {
	return "TYPEOF " + t.Argument.Print(col) + " IS " + t.TypeName.Print(col)
}

// MethodFunctionCall is a VBDOS method call in expression position.
type MethodFunctionCall struct {
	Target Expression
	Name   string
	Args   []Expression
}

func (m *MethodFunctionCall) expressionNode() {}

func (m *MethodFunctionCall) Print(col int) string {
	return m.Target.Print(col) + "." + m.Name + "(" + printList(m.Args, col) + ")"
}

// BuiltinFunctionCall invokes a builtin function. ImplicitArgs means the
// call prints without parentheses.
type BuiltinFunctionCall struct {
	Name         string
	Args         []Expression
	ImplicitArgs bool
}

func (b *BuiltinFunctionCall) expressionNode() {}

func (b *BuiltinFunctionCall) Print(col int) string {
	text := b.Name
	if !b.ImplicitArgs {
		parts := make([]string, len(b.Args))
		for i, arg := range b.Args {
			parts[i] = printOpt(arg, col)
		}
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		text += "(" + strings.Join(parts, ", ") + ")"
	}
	return text
}

// ConvertFunction is a C* type-conversion call (CINT, CLNG, ...).
type ConvertFunction struct {
	Argument Expression
	DType    SuffixedType
}

func (c *ConvertFunction) expressionNode() {}

func (c *ConvertFunction) Print(col int) string {
	return "C" + c.DType.ShortName() + "(" + c.Argument.Print(col) + ")"
}

// ByValue wraps a BYVAL parameter.
type ByValue struct {
	Parameter Expression
}

func (b *ByValue) expressionNode()      {}
func (b *ByValue) Print(col int) string { return "BYVAL " + b.Parameter.Print(col) }

// AsSegmented wraps a SEG parameter.
type AsSegmented struct {
	Parameter Expression
}

func (a *AsSegmented) expressionNode()      {}
func (a *AsSegmented) Print(col int) string { return "SEG " + a.Parameter.Print(col) }

// FileNumber is a #n file handle expression.
type FileNumber struct {
	Value Expression
}

func (f *FileNumber) expressionNode()      {}
func (f *FileNumber) Print(col int) string { return "#" + f.Value.Print(col) }

// EventSpecification names an event source (COM, KEY, TIMER, ...) with an
// optional index.
type EventSpecification struct {
	Name  string
	Value Expression
}

func (e *EventSpecification) expressionNode() {}

func (e *EventSpecification) Print(col int) string {
	if e.Value == nil {
		return e.Name
	}
	return e.Name + "(" + e.Value.Print(col) + ")"
}

// CoordinatePair is a graphics coordinate, optionally STEP-relative.
type CoordinatePair struct {
	X    Expression
	Y    Expression
	Step bool
}

func (c *CoordinatePair) expressionNode() {}

func (c *CoordinatePair) Print(col int) string {
	step := ""
	if c.Step {
		step = "STEP"
	}
	return step + "(" + c.X.Print(col) + ", " + c.Y.Print(col) + ")"
}
