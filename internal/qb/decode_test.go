package qb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/qbtools/detok/internal/binio"
)

func u16(v int) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return b[:]
}

func u32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// textName builds one name-table record holding raw name bytes.
func textName(name string) []byte {
	return cat(u16(0), []byte{0x00, byte(len(name))}, []byte(name))
}

// numName builds one name-table record holding a numeric label.
func numName(v int) []byte {
	return cat(u16(0), []byte{0x02, 0x02}, u16(v))
}

// buildQB45 assembles a QB45 file: signature, version stamp, fixed header
// with the procedures offset in its last two bytes, the name region, and a
// framed opcode stream.
func buildQB45(names, opcodes []byte) []byte {
	header := make([]byte, 0x1C)
	header[0] = 0xFC
	binary.LittleEndian.PutUint16(header[1:], StampQB45)
	binary.LittleEndian.PutUint16(header[0x1A:], uint16(len(names)))
	return cat(header, names, u16(len(opcodes)), opcodes)
}

func decodeString(t *testing.T, data []byte) string {
	t.Helper()
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var out strings.Builder
	f.Print(&out)
	return out.String()
}

func TestDecodeEmptyProgram(t *testing.T) {
	out := decodeString(t, buildQB45(nil, nil))
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}

func TestDecodeTrivialPrint(t *testing.T) {
	opcodes := cat(
		u16(0x0000),
		u16(0x016D), u16(2), []byte("HI"),
		u16(0x0096),
	)
	out := decodeString(t, buildQB45(nil, opcodes))
	if out != "PRINT \"HI\"\n" {
		t.Errorf("output = %q, want %q", out, "PRINT \"HI\"\n")
	}
}

func TestDecodeLabeledGoto(t *testing.T) {
	names := textName("start")
	opcodes := cat(
		u16(0x0004), u16(0), u16(0),
		u16(0x0000),
		u16(0x005B), u16(0),
	)
	out := decodeString(t, buildQB45(names, opcodes))
	lines := strings.Split(out, "\n")
	if strings.TrimRight(lines[0], " ") != "start:" {
		t.Errorf("line 0 = %q, want \"start:\"", lines[0])
	}
	if lines[1] != "GOTO start" {
		t.Errorf("line 1 = %q, want \"GOTO start\"", lines[1])
	}
}

func TestDecodeDefInt(t *testing.T) {
	tests := []struct {
		mask uint32
		want string
	}{
		{0xFFFFFFC0, "DEFINT A-Z\n"},
		{1<<31 | 1<<29 | 1<<28, "DEFINT A, C-D\n"},
	}
	for _, tt := range tests {
		opcodes := cat(u16(0x0000), u16(0x001B), u16(0), u32(tt.mask))
		out := decodeString(t, buildQB45(nil, opcodes))
		if out != tt.want {
			t.Errorf("mask 0x%08X: output = %q, want %q", tt.mask, out, tt.want)
		}
	}
}

func TestDecodeLineIfImplicitGoto(t *testing.T) {
	names := cat(textName("x"), numName(10), numName(20))
	opcodes := cat(
		u16(0x0000),
		u16(0x000B), u16(0),
		u16(0x005E), u16(5),
		u16(0x0172),
		u16(0x004C), u16(0), u16(11),
	)
	out := decodeString(t, buildQB45(names, opcodes))
	if out != "IF x THEN 10 ELSE 20\n" {
		t.Errorf("output = %q, want %q", out, "IF x THEN 10 ELSE 20\n")
	}
	if strings.Contains(out, "GOTO") {
		t.Errorf("implicit targets must not spell GOTO: %q", out)
	}
}

func TestDecodeOpenAllFlags(t *testing.T) {
	opcodes := cat(
		u16(0x0000),
		u16(0x016D), u16(1), []byte("f"), []byte{0x00}, // padded string
		u16(0x0164|1<<10), // literal 1 via the opcode parameter
		u16(0x008A),
		u16(0x0165), u16(128),
		u16(0x00CA), u16(0x4320),
	)
	out := decodeString(t, buildQB45(nil, opcodes))
	want := "OPEN \"f\" FOR BINARY ACCESS READ WRITE SHARED AS #1 LEN = 128\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestDecodeComment(t *testing.T) {
	opcodes := cat(
		u16(0x0000),
		u16(0x0097), u16(4), u16(4), []byte("hi"),
	)
	out := decodeString(t, buildQB45(nil, opcodes))
	if out != "    'hi\n" {
		t.Errorf("output = %q, want %q", out, "    'hi\n")
	}
}

func TestDecodeInvalidSignature(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x00, 0x00, 0x01}))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestDecodeInvalidVersion(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0xFC, 0x99, 0x09}))
	if !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("err = %v, want ErrInvalidVersion", err)
	}
}

func TestDecodePartialOutputOnError(t *testing.T) {
	opcodes := cat(
		u16(0x0000),
		u16(0x016D), u16(2), []byte("HI"),
		u16(0x0096),
		u16(0x0000),
		u16(0x03FF), // out of range
	)
	f, err := Decode(bytes.NewReader(buildQB45(nil, opcodes)))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err is %T, want *DecodeError", err)
	}
	var out strings.Builder
	f.Print(&out)
	if !strings.Contains(out.String(), "PRINT \"HI\"") {
		t.Errorf("partial output lost: %q", out.String())
	}
}

func TestOperandStackBalanced(t *testing.T) {
	opcodes := cat(
		u16(0x0000),
		u16(0x016D), u16(2), []byte("HI"),
		u16(0x0096),
	)
	f, err := Decode(bytes.NewReader(buildQB45(nil, opcodes)))
	if err != nil {
		t.Fatal(err)
	}
	if depth := f.ctx.Depth(); depth != 0 {
		t.Errorf("operand stack depth after decode = %d, want 0", depth)
	}
}

func TestReadVarIdempotent(t *testing.T) {
	names := textName("start")
	data := buildQB45(names, cat(u16(0x0004), u16(0), u16(0)))
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r := binio.New(bytes.NewReader(data))
	first := f.ReadVar(r, 0)
	second := f.ReadVar(r, 0)
	if first.Print(0) != second.Print(0) || first.IsNumber() != second.IsNumber() {
		t.Errorf("re-resolution differs: %q vs %q", first.Print(0), second.Print(0))
	}
}

func TestExpandComment(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("plain"), "plain"},
		{[]byte{0x0D, 3, 'x', 'y'}, "xxxy"},
		{[]byte{'a', 0x0D, 2, 'b', 'c'}, "abbc"},
		// a truncated run at the end stays literal
		{[]byte{0x0D, 2}, string([]byte{0x0D, 2})},
	}
	for _, tt := range tests {
		if got := string(expandComment(tt.in)); got != tt.want {
			t.Errorf("expandComment(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFileAddVariable(t *testing.T) {
	f, err := NewFile("45")
	if err != nil {
		t.Fatal(err)
	}
	before := f.ProceduresOffset
	id := f.AddVariable([]byte("FOO"))
	if id.Offset != 0x56 {
		t.Errorf("first variable offset = 0x%X, want 0x56", id.Offset)
	}
	if f.ProceduresOffset != before+4+3 {
		t.Errorf("procedures offset moved by %d, want 7", f.ProceduresOffset-before)
	}
	num := f.AddVariable([]byte("10"))
	if !num.IsNumber() {
		t.Error("digit-only variable should be numeric")
	}
	if num.Offset != 0x56+7 {
		t.Errorf("second variable offset = 0x%X, want 0x%X", num.Offset, 0x56+7)
	}

	if _, err := NewFile("99"); err == nil {
		t.Error("unknown dialect should fail")
	}
}

func TestDecodeSnapshot(t *testing.T) {
	names := cat(textName("start"), textName("x"), numName(10), numName(20))
	opcodes := cat(
		u16(0x0004), u16(0), u16(0),
		u16(0x0000),
		u16(0x016D), u16(2), []byte("HI"),
		u16(0x0096),
		u16(0x0000),
		u16(0x001B), u16(0), u32(0xFFFFFFC0),
		u16(0x0000),
		u16(0x000B), u16(9),
		u16(0x005E), u16(14),
		u16(0x0172),
		u16(0x004C), u16(0), u16(20),
		u16(0x0000),
		u16(0x016D), u16(1), []byte("f"), []byte{0x00},
		u16(0x0164|1<<10),
		u16(0x008A),
		u16(0x0165), u16(128),
		u16(0x00CA), u16(0x4320),
		u16(0x0000),
		u16(0x005B), u16(0),
	)
	out := decodeString(t, buildQB45(names, opcodes))
	snaps.MatchSnapshot(t, out)
}
