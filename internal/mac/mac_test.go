package mac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func u16be(v int) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return b[:]
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// lineRecord frames one tokenized line: the record length includes the two
// length bytes themselves; bit 15 marks a line number.
func lineRecord(lineNumber int, spaces int, content []byte) []byte {
	length := 2 + 1 + len(content)
	flags := 0
	var number []byte
	if lineNumber >= 0 {
		length += 2
		flags = 0x8000
		number = u16be(lineNumber)
	}
	return cat(u16be(length|flags), []byte{byte(spaces)}, number, content)
}

// buildFile assembles a Macintosh BASIC file: signature, line records, a
// zero terminator, the alignment byte(s), then the variable names.
func buildFile(records []byte, variables ...string) []byte {
	out := cat([]byte{0xF1}, records, u16be(0))
	if len(out)&1 == 0 {
		out = append(out, 0)
	} else {
		out = append(out, 0, 0)
	}
	for _, v := range variables {
		out = append(out, byte(len(v)))
		out = append(out, v...)
	}
	return out
}

func decodeString(t *testing.T, data []byte) string {
	t.Helper()
	var out strings.Builder
	if err := Decode(bytes.NewReader(data), &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out.String()
}

func TestDecodePrintLine(t *testing.T) {
	content := []byte{0xAC, ' ', '"', 'H', 'I', '"', 0x00}
	data := buildFile(lineRecord(10, 0, content))
	if got := decodeString(t, data); got != "10 PRINT \"HI\"\n" {
		t.Errorf("output = %q, want %q", got, "10 PRINT \"HI\"\n")
	}
}

func TestDecodeVariableReference(t *testing.T) {
	// LET token, space, variable 0, '=' token, digit token for 1
	content := []byte{0x9E, ' ', 0x01, 0x00, 0x00, 0xEA, 0x12, 0x00}
	data := buildFile(lineRecord(-1, 1, content), "total")
	if got := decodeString(t, data); got != " LET total=1\n" {
		t.Errorf("output = %q, want %q", got, " LET total=1\n")
	}
}

func TestDecodeSubTokens(t *testing.T) {
	// two-byte token pages: 0xF8 0x8F is END, 0xF9 0xFD is AS
	content := []byte{0xF8, 0x8F, ' ', 0xF9, 0xFD, 0x00}
	data := buildFile(lineRecord(-1, 0, content))
	if got := decodeString(t, data); got != "END AS\n" {
		t.Errorf("output = %q, want %q", got, "END AS\n")
	}
}

func TestDecodeUnknownSymbol(t *testing.T) {
	content := []byte{0x05, 0x00}
	data := buildFile(lineRecord(-1, 0, content))
	if got := decodeString(t, data); got != "[unknown symbol 05]\n" {
		t.Errorf("output = %q, want %q", got, "[unknown symbol 05]\n")
	}
}

func TestDecodeColonElseFixup(t *testing.T) {
	// ':' then the ELSE token collapses to a bare ELSE
	content := []byte{':', 0x8E, 0x00}
	data := buildFile(lineRecord(-1, 0, content))
	if got := decodeString(t, data); got != "ELSE\n" {
		t.Errorf("output = %q, want %q", got, "ELSE\n")
	}
}

func TestDecodeForeignSignatures(t *testing.T) {
	tests := []struct {
		first byte
		want  error
	}{
		{0xF0, ErrProtected},
		{0xFC, ErrQuickBASIC},
		{0xFD, ErrGWBASICDump},
		{0xFE, ErrGWBASICProt},
		{0xFF, ErrGWBASICToken},
		{0x42, ErrNotMacBasic},
	}
	for _, tt := range tests {
		err := Decode(bytes.NewReader([]byte{tt.first}), &strings.Builder{})
		if !errors.Is(err, tt.want) {
			t.Errorf("first byte 0x%02X: err = %v, want %v", tt.first, err, tt.want)
		}
	}
}
