package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// qb40 packs a 9-bit opcode with a 7-bit parameter and numbers its opcodes
// differently from every later dialect. ParseOpcode translates the QB40
// numbers onto the shared table; most notably QB40 spends six consecutive
// opcodes where QB45 uses one opcode with the type index in the parameter.
type qb40 struct{}

func (qb40) VersionStamp() uint16                   { return StampQB40 }
func (qb40) HeaderSize() int                        { return 0x0E }
func (qb40) DefaultProcedureOffset() int            { return 0x82 }
func (qb40) MaxOpcode() uint16                      { return 0x01AF }
func (qb40) MaxBuiltinType() int                    { return 5 }
func (qb40) BuiltinType(index int) ast.SuffixedType { return builtinTypeQB4(index) }
func (d qb40) ParseHeader(f *File, r *binio.Reader) { parseHeaderCommon(f, r) }

func (d qb40) ParseOpcode(c *Context, r *binio.Reader, word uint16) {
	parameter := word >> 9
	opcode := word & 0x1FF
	if opcode > d.MaxOpcode() {
		decodeErrorf("invalid opcode 0x%04X", opcode)
	}
	switch {
	case opcode <= 0x000A:
		execOpcode(d, c, r, opcode, parameter, opcode)
	case opcode <= 0x0010:
		execOpcode(d, c, r, 0x000B, opcode-0x000B, opcode)
	case opcode <= 0x0016:
		execOpcode(d, c, r, 0x000C, opcode-0x0011, opcode)
	case opcode <= 0x001C:
		execOpcode(d, c, r, 0x000D, opcode-0x0017, opcode)
	case opcode <= 0x0022:
		execOpcode(d, c, r, 0x000E, opcode-0x001D, opcode)
	case opcode <= 0x0028:
		execOpcode(d, c, r, 0x000F, opcode-0x0023, opcode)
	case opcode <= 0x002E:
		execOpcode(d, c, r, 0x0010, opcode-0x0029, opcode)
	case opcode <= 0x0034:
		execOpcode(d, c, r, 0x0011, opcode-0x002F, opcode)
	case opcode <= 0x003A:
		execOpcode(d, c, r, 0x0012, opcode-0x0035, opcode)
	case opcode <= 0x0041 && opcode >= 0x003B:
		execOpcode(d, c, r, opcode-0x003B+0x0015, parameter, opcode)
	case opcode == 0x0042:
		must(getStatement[*ast.VariableDeclarationStatement](c).SetKind("DIM"))
	case opcode == 0x0044:
		element, ok := c.Pop().(*ast.ArrayElement)
		if !ok {
			decodeErrorf("DIM without an array element")
		}
		name := element.Name
		if parameter != 0 {
			name.Suffix = d.BuiltinType(int(parameter))
		}
		must(c.PutDeclaration().SetName(name, element.Args))
		must(getStatement[*ast.VariableDeclarationStatement](c).SetKind("DIM"))
	case opcode >= 0x0045 && opcode <= 0x0130:
		execOpcode(d, c, r, opcode-0x0045+0x001C, parameter, opcode)
	case opcode == 0x0131:
		execOpcode(d, c, r, 0x0108, 4, opcode)
	case opcode == 0x0132:
		execOpcode(d, c, r, 0x0109, parameter, opcode)
	case opcode == 0x0133:
		execOpcode(d, c, r, 0x0108, 1, opcode)
	case opcode == 0x0134:
		execOpcode(d, c, r, 0x0108, 2, opcode)
	case opcode == 0x0135:
		execOpcode(d, c, r, 0x010A, parameter, opcode)
	case opcode == 0x0136:
		execOpcode(d, c, r, 0x010B, parameter, opcode)
	case opcode == 0x0137:
		execOpcode(d, c, r, 0x0108, 3, opcode)
	case opcode >= 0x0138 && opcode <= 0x018F:
		execOpcode(d, c, r, opcode-0x0138+0x010C, parameter, opcode)
	case opcode >= 0x0190 && opcode <= 0x019A:
		execOpcode(d, c, r, 0x0164, opcode-0x0190, opcode)
	case opcode >= 0x019B && opcode <= 0x01AF:
		execOpcode(d, c, r, opcode-0x019B+0x0165, parameter, opcode)
	default:
		decodeErrorf("invalid opcode 0x%04X", opcode)
	}
}
