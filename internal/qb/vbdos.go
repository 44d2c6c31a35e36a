package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// vbdos extends the QB71 surface with object method calls and an optional
// form resource embedded between the fixed header and the name region.
type vbdos struct{}

func (vbdos) VersionStamp() uint16        { return StampVBDOS }
func (vbdos) HeaderSize() int             { return 0x20 } // plus the form resource
func (vbdos) DefaultProcedureOffset() int { return 0x56 }
func (vbdos) MaxOpcode() uint16           { return 0x01D1 }
func (vbdos) MaxBuiltinType() int         { return 7 }

func (vbdos) BuiltinType(index int) ast.SuffixedType {
	switch index {
	case 1:
		return ast.IntegerType{}
	case 2:
		return ast.LongType{}
	case 3:
		return ast.SingleType{}
	case 4, 6:
		return ast.DoubleType{}
	case 5:
		return ast.CurrencyType{}
	case 7:
		return ast.StringType{}
	}
	decodeErrorf("invalid built-in type %d", index)
	return nil
}

func (d vbdos) ParseHeader(f *File, r *binio.Reader) {
	r.Seek(0x14)
	headerExtra := int(r.U16())
	f.HeaderSize += headerExtra
	if headerExtra > 0 {
		parseFormLayout(f, r)
	}
	parseHeaderCommon(f, r)
}

func (d vbdos) ParseOpcode(c *Context, r *binio.Reader, opcode uint16) {
	execOpcode(d, c, r, opcode&0x3FF, opcode>>10, opcode&0x3FF)
}

// methodNames indexes the VBDOS object-method opcodes 0x01C9-0x01D1.
var methodNames = map[uint16]string{
	0x0000: "ADDITEM",
	0x0001: "CLS",
	0x0002: "HIDE",
	0x0003: "MOVE",
	0x0004: "PRINT",
	0x0005: "PRINTFORM",
	0x0006: "REFRESH",
	0x0007: "REMOVEITEM",
	0x0008: "SETFOCUS",
	0x0009: "SHOW",
	0x000C: "DRAG",
	0x000D: "CLEAR",
	0x000E: "ENDDOC",
	0x0010: "NEWPAGE",
	0x0011: "SETTEXT",
	0x010A: "TEXTHEIGHT",
	0x010B: "TEXTWIDTH",
	0x010F: "GETTEXT",
}

func methodName(index uint16) string {
	name, ok := methodNames[index]
	if !ok {
		decodeErrorf("invalid method index 0x%04X", index)
	}
	return name
}
