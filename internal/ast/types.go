package ast

import "strconv"

// Type is the semantic type attached to declarations and identifiers.
type Type interface {
	// TypeName returns the full keyword spelling, as printed after AS.
	TypeName() string
}

// SuffixedType is a builtin type that has a sigil and a three-letter
// conversion name. ANY, fixed-length strings and user types do not.
type SuffixedType interface {
	Type
	// ShortName returns the three-letter form used by the C* conversion
	// builtins (INT, LNG, SNG, DBL, CUR, STR).
	ShortName() string
	// Sigil returns the type-suffix character (%, &, !, #, @, $).
	Sigil() string
}

type AnyType struct{}

func (AnyType) TypeName() string { return "ANY" }

type IntegerType struct{}

func (IntegerType) TypeName() string  { return "INTEGER" }
func (IntegerType) ShortName() string { return "INT" }
func (IntegerType) Sigil() string     { return "%" }

type LongType struct{}

func (LongType) TypeName() string  { return "LONG" }
func (LongType) ShortName() string { return "LNG" }
func (LongType) Sigil() string     { return "&" }

type SingleType struct{}

func (SingleType) TypeName() string  { return "SINGLE" }
func (SingleType) ShortName() string { return "SNG" }
func (SingleType) Sigil() string     { return "!" }

type DoubleType struct{}

func (DoubleType) TypeName() string  { return "DOUBLE" }
func (DoubleType) ShortName() string { return "DBL" }
func (DoubleType) Sigil() string     { return "#" }

type CurrencyType struct{}

func (CurrencyType) TypeName() string  { return "CURRENCY" }
func (CurrencyType) ShortName() string { return "CUR" }
func (CurrencyType) Sigil() string     { return "@" }

type StringType struct{}

func (StringType) TypeName() string  { return "STRING" }
func (StringType) ShortName() string { return "STR" }
func (StringType) Sigil() string     { return "$" }

// FixedStringType is a STRING * n declaration type.
type FixedStringType struct {
	Count int
}

func (t FixedStringType) TypeName() string { return "STRING * " + strconv.Itoa(t.Count) }

// CustomType names a user TYPE.
type CustomType struct {
	Name *Identifier
}

func (t CustomType) TypeName() string { return t.Name.Print(0) }
