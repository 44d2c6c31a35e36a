package qb

import (
	"fmt"
	"io"

	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// nameEntry is a cached name-table record: either textual bytes or a
// numeric label.
type nameEntry struct {
	text    []byte
	number  int
	numeric bool
}

func (e nameEntry) identifier(offset uint16) *ast.Identifier {
	if e.numeric {
		return ast.NewNumericIdentifier(e.number, int(offset))
	}
	return ast.NewIdentifier(e.text, int(offset))
}

// File is one decoded tokenized program: its dialect, name table, the main
// procedure plus any trailing procedures, and the form object tree of a
// VBDOS file that has one.
type File struct {
	Dialect          Dialect
	HeaderSize       int
	ProceduresOffset int
	Procedures       []*ast.Procedure
	MainForm         *FormObject

	names      map[uint16]nameEntry
	nextOffset int
	ctx        *Context

	lastOpcodeAt int64
	lastOpcode   uint16
}

func newFile(d Dialect) *File {
	f := &File{
		Dialect:          d,
		HeaderSize:       d.HeaderSize(),
		ProceduresOffset: d.DefaultProcedureOffset(),
		Procedures:       []*ast.Procedure{{}},
		names:            make(map[uint16]nameEntry),
		nextOffset:       0x56,
		lastOpcodeAt:     -1,
	}
	f.ctx = newContext(f)
	return f
}

// NewFile builds an empty file for the named dialect ("40", "45", "70",
// "71" or "vb"), ready for programmatic construction via AddVariable.
func NewFile(version string) (*File, error) {
	d := dialectByName(version)
	if d == nil {
		return nil, fmt.Errorf("unknown dialect %q", version)
	}
	return newFile(d), nil
}

// AddVariable appends a name to the synthetic name table, advancing the
// next-free-offset counter and the procedures offset by the record size.
func (f *File) AddVariable(name []byte) *ast.Identifier {
	id := ast.NewIdentifier(name, f.nextOffset)
	entry := nameEntry{text: name}
	if n, ok := id.Number(); ok {
		entry = nameEntry{number: n, numeric: true}
	}
	f.names[uint16(f.nextOffset)] = entry
	length := 6
	if !entry.numeric {
		length = 4 + len(name)
	}
	f.nextOffset += length
	f.ProceduresOffset += length
	return id
}

// ReadVar resolves a name offset into an identifier. The first resolution
// seeks into the name region past the fixed header; later resolutions of
// the same offset come from the cache and are observably identical.
func (f *File) ReadVar(r *binio.Reader, offset uint16) *ast.Identifier {
	if entry, ok := f.names[offset]; ok {
		return entry.identifier(offset)
	}
	current := r.Tell()
	r.Seek(int64(f.HeaderSize) + int64(offset) + 2)
	flags := r.U8()
	length := int(r.U8())
	var entry nameEntry
	if flags&0x02 != 0 && length == 2 {
		entry = nameEntry{number: int(r.U16()), numeric: true}
	} else {
		entry = nameEntry{text: r.Bytes(length)}
	}
	f.names[offset] = entry
	r.Seek(current)
	return entry.identifier(offset)
}

// Decode reads a tokenized QuickBASIC or VBDOS program. A bad signature or
// version stamp fails outright with a nil file. Any later failure returns
// the partial result decoded so far together with a *DecodeError; trailing
// procedures are not attempted past the failure.
func Decode(src io.ReadSeeker) (*File, error) {
	r := binio.New(src)
	var stamp uint16
	if err := capture(func() {
		if sig := r.U8(); sig != 0xFC {
			panic(fmt.Errorf("%w 0x%02X", ErrInvalidSignature, sig))
		}
		stamp = r.U16()
	}); err != nil {
		return nil, err
	}
	d := dialectFor(stamp)
	if d == nil {
		return nil, fmt.Errorf("%w 0x%04X", ErrInvalidVersion, stamp)
	}
	f := newFile(d)
	return f, f.decodeBody(r)
}

func capture(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			panic(p)
		}
	}()
	fn()
	return nil
}

func (f *File) decodeBody(r *binio.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = f.wrapPanic(p)
		}
	}()

	f.Procedures = []*ast.Procedure{{}}
	end := r.End()
	f.Dialect.ParseHeader(f, r)
	r.Seek(int64(f.HeaderSize + f.ProceduresOffset))
	f.parseOpcodes(r)

	for r.Tell()+16 < end {
		r.SeekCurrent(16)
		r.Bytes(1)
		nameLength := int(r.U16())
		name := r.Bytes(nameLength)
		r.Bytes(2)
		flags := r.U8()
		f.Procedures = append(f.Procedures, &ast.Procedure{
			Name:   name,
			Static: flags&0x80 != 0,
		})
		f.parseOpcodes(r)
	}
	return nil
}

// parseOpcodes decodes one framed opcode stream: a u16 byte length, then
// opcode words until the frame is consumed.
func (f *File) parseOpcodes(r *binio.Reader) {
	length := int64(r.U16())
	start := r.Tell()
	for r.Tell() < start+length {
		f.lastOpcodeAt = r.Tell()
		opcode := r.U16()
		f.lastOpcode = opcode
		f.Dialect.ParseOpcode(f.ctx, r, opcode)
	}
}

func (f *File) wrapPanic(p any) error {
	cause, ok := p.(error)
	if !ok {
		cause = fmt.Errorf("%v", p)
	}
	return &DecodeError{Offset: f.lastOpcodeAt, Opcode: f.lastOpcode, Err: cause}
}

// Print writes the decoded program. A VBDOS form prints first as a
// Version 1.00 object tree; named procedures are separated by blank lines.
func (f *File) Print(w io.Writer) {
	if f.MainForm != nil {
		fmt.Fprintln(w, "Version 1.00")
		f.MainForm.Print(w, "")
	}
	for _, p := range f.Procedures {
		if p.Kind != "" {
			fmt.Fprintln(w)
		}
		p.Write(w)
	}
}
