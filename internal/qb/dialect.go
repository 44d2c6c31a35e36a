package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// Version stamps of the supported dialects.
const (
	StampQB40  = 0x0013
	StampQB45  = 0x0100
	StampQB70  = 0x0101
	StampQB71  = 0x0102
	StampVBDOS = 0x0108
)

// Dialect describes one tokenizer version: its header layout, opcode-field
// widths, opcode limits, builtin-type table and opcode entry point.
type Dialect interface {
	VersionStamp() uint16
	HeaderSize() int
	DefaultProcedureOffset() int
	MaxOpcode() uint16
	MaxBuiltinType() int
	BuiltinType(index int) ast.SuffixedType
	ParseHeader(f *File, r *binio.Reader)
	ParseOpcode(c *Context, r *binio.Reader, opcode uint16)
}

func dialectFor(stamp uint16) Dialect {
	switch stamp {
	case StampQB40:
		return qb40{}
	case StampQB45:
		return qb45{}
	case StampQB70:
		return qb70{}
	case StampQB71:
		return qb71{}
	case StampVBDOS:
		return vbdos{}
	default:
		return nil
	}
}

// dialectByName resolves the construction names used by NewFile.
func dialectByName(name string) Dialect {
	switch name {
	case "40":
		return qb40{}
	case "45":
		return qb45{}
	case "70":
		return qb70{}
	case "71":
		return qb71{}
	case "vb":
		return vbdos{}
	default:
		return nil
	}
}

// parseHeaderCommon reads the procedures offset from the last two bytes of
// the fixed header.
func parseHeaderCommon(f *File, r *binio.Reader) {
	r.Seek(int64(f.HeaderSize - 2))
	f.ProceduresOffset = int(r.U16())
}

// resolveType maps an on-disk type index to a type: 0 is ANY, small values
// are builtin, the high bit marks STRING * n, anything else names a user
// TYPE through the name table.
func resolveType(d Dialect, c *Context, r *binio.Reader, index int) ast.Type {
	switch {
	case index == 0:
		return ast.AnyType{}
	case index <= d.MaxBuiltinType():
		return d.BuiltinType(index)
	case index&0x8000 != 0:
		return ast.FixedStringType{Count: index & 0x7FFF}
	default:
		return ast.CustomType{Name: c.file.ReadVar(r, uint16(index))}
	}
}

// builtinTypeQB4 is the QB40/QB45 table: five types ending in STRING.
func builtinTypeQB4(index int) ast.SuffixedType {
	switch index {
	case 1:
		return ast.IntegerType{}
	case 2:
		return ast.LongType{}
	case 3:
		return ast.SingleType{}
	case 4:
		return ast.DoubleType{}
	case 5:
		return ast.StringType{}
	}
	decodeErrorf("invalid built-in type %d", index)
	return nil
}

// builtinTypeQB7 inserts CURRENCY at 5 and shifts STRING to 6.
func builtinTypeQB7(index int) ast.SuffixedType {
	switch index {
	case 1:
		return ast.IntegerType{}
	case 2:
		return ast.LongType{}
	case 3:
		return ast.SingleType{}
	case 4:
		return ast.DoubleType{}
	case 5:
		return ast.CurrencyType{}
	case 6:
		return ast.StringType{}
	}
	decodeErrorf("invalid built-in type %d", index)
	return nil
}

type qb45 struct{}

func (qb45) VersionStamp() uint16                      { return StampQB45 }
func (qb45) HeaderSize() int                           { return 0x1C }
func (qb45) DefaultProcedureOffset() int               { return 0x159 }
func (qb45) MaxOpcode() uint16                         { return 0x017D }
func (qb45) MaxBuiltinType() int                       { return 5 }
func (qb45) BuiltinType(index int) ast.SuffixedType    { return builtinTypeQB4(index) }
func (d qb45) ParseHeader(f *File, r *binio.Reader)    { parseHeaderCommon(f, r) }
func (d qb45) ParseOpcode(c *Context, r *binio.Reader, opcode uint16) {
	execOpcode(d, c, r, opcode&0x3FF, opcode>>10, opcode&0x3FF)
}

type qb70 struct{}

func (qb70) VersionStamp() uint16                   { return StampQB70 }
func (qb70) HeaderSize() int                        { return 0x1D }
func (qb70) DefaultProcedureOffset() int            { return 0x159 }
func (qb70) MaxOpcode() uint16                      { return 0x01A7 }
func (qb70) MaxBuiltinType() int                    { return 6 }
func (qb70) BuiltinType(index int) ast.SuffixedType { return builtinTypeQB7(index) }
func (d qb70) ParseHeader(f *File, r *binio.Reader) { parseHeaderCommon(f, r) }
func (d qb70) ParseOpcode(c *Context, r *binio.Reader, opcode uint16) {
	execOpcode(d, c, r, opcode&0x3FF, opcode>>10, opcode&0x3FF)
}

type qb71 struct{}

func (qb71) VersionStamp() uint16                   { return StampQB71 }
func (qb71) HeaderSize() int                        { return 0x1D }
func (qb71) DefaultProcedureOffset() int            { return 0x159 }
func (qb71) MaxOpcode() uint16                      { return 0x01A8 }
func (qb71) MaxBuiltinType() int                    { return 6 }
func (qb71) BuiltinType(index int) ast.SuffixedType { return builtinTypeQB7(index) }
func (d qb71) ParseHeader(f *File, r *binio.Reader) { parseHeaderCommon(f, r) }
func (d qb71) ParseOpcode(c *Context, r *binio.Reader, opcode uint16) {
	execOpcode(d, c, r, opcode&0x3FF, opcode>>10, opcode&0x3FF)
}
