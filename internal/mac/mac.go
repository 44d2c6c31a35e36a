// Package mac detokenizes Macintosh BASIC program files: big-endian line
// records holding one-byte and two-byte tokens, inline literals, and
// references into a variable-name table stored at the end of the file.
package mac

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// Signature errors for the formats the first byte can announce.
var (
	ErrProtected    = errors.New("protected Macintosh BASIC file, unable to parse")
	ErrQuickBASIC   = errors.New("QuickBASIC or Visual Basic for MS-DOS binary file, not supported")
	ErrGWBASICDump  = errors.New("GW-BASIC memory dump, not supported")
	ErrGWBASICProt  = errors.New("GW-BASIC protected file or MSX-BASIC memory dump, not supported")
	ErrGWBASICToken = errors.New("GW-BASIC or MSX-BASIC tokenized file, not supported")
	ErrNotMacBasic  = errors.New("not a Macintosh BASIC file")
)

// Decode reads a tokenized Macintosh BASIC program from src and writes the
// detokenized listing to w.
func Decode(src io.ReadSeeker, w io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			panic(p)
		}
	}()

	r := binio.New(src)
	r.Seek(0)
	switch first := r.U8(); first {
	case 0xF1:
		// tokenized Macintosh BASIC
	case 0xF0:
		return ErrProtected
	case 0xFC:
		return ErrQuickBASIC
	case 0xFD:
		return ErrGWBASICDump
	case 0xFE:
		return ErrGWBASICProt
	case 0xFF:
		return ErrGWBASICToken
	default:
		return ErrNotMacBasic
	}

	end := r.End()
	variables := readVariables(r, end)

	r.Seek(1)
	for {
		offset := r.Tell()
		word := r.U16BE()
		hasLineNumber := word&0x8000 != 0
		length := int64(word & 0x7FFF)
		if length == 0 {
			break
		}
		var line strings.Builder
		spaces := int(r.U8())
		if hasLineNumber {
			fmt.Fprintf(&line, "%d ", r.U16BE())
		}
		line.WriteString(strings.Repeat(" ", spaces))
		decodeLine(r, &line, variables)
		fmt.Fprintln(w, line.String())
		r.Seek(offset + length)
	}
	return nil
}

// readVariables skips past the line records and collects the name table
// that follows them.
func readVariables(r *binio.Reader, end int64) []string {
	r.Seek(1)
	for {
		offset := r.Tell()
		length := int64(r.U16BE() & 0x7FFF)
		if length == 0 {
			break
		}
		r.Seek(offset + length)
	}
	if r.Tell()&1 == 0 {
		r.SeekCurrent(1)
	} else {
		r.SeekCurrent(2)
	}
	var variables []string
	for r.Tell() < end {
		length := int(r.U8())
		variables = append(variables, string(r.Bytes(length)))
	}
	return variables
}

func variableName(variables []string, num uint32) string {
	if int(num) >= len(variables) {
		return fmt.Sprintf("[unknown variable %d]", num)
	}
	return variables[num]
}

// decodeLine expands one line's token bytes until the terminating zero.
func decodeLine(r *binio.Reader, line *strings.Builder, variables []string) {
	for {
		data := r.U8()
		switch {
		case data == 0:
			return
		case data >= 32 && data <= 126:
			line.WriteByte(data)
		case data == 0x01, data == 0x02:
			// variable reference, or a label definition followed by ':'
			line.WriteString(variableName(variables, uint32(r.U16BE())))
		case data == 0x03:
			// label reference
			line.WriteString(variableName(variables, r.U32BE()))
		case data == 0x08:
			// trails THEN, ELSE and CASE; role unknown, value ignored
			r.U32BE()
		case data == 0x0B:
			fmt.Fprintf(line, "&O%o", r.U16BE())
		case data == 0x0C:
			fmt.Fprintf(line, "&H%X", r.U16BE())
		case data == 0x0E:
			fmt.Fprintf(line, "%d", r.U32BE())
		case data == 0x0F:
			fmt.Fprintf(line, "%d", r.U8())
		case data == 0x1B:
			fmt.Fprintf(line, "&H%X&", r.U32BE())
		case data == 0x1C:
			fmt.Fprintf(line, "%d", r.U16BE())
		case data == 0x1D:
			line.WriteString(ast.FloatString(float64(r.F32BE())))
		case data == 0x1E:
			fmt.Fprintf(line, "%d&", r.U32BE())
		case data == 0x1F:
			line.WriteString(ast.FloatString(r.F64BE()) + "#")
		case data == 0x8E && strings.HasSuffix(line.String(), ":"):
			replaceTail(line, 1, "ELSE")
		case data == 0xE8 && strings.HasSuffix(line.String(), ":REM"):
			replaceTail(line, 4, "'")
		case data == 0xEC && strings.HasSuffix(line.String(), "WHILE"):
			// WHILE carries a spurious '+' token
		default:
			if sub, ok := subTokens[data]; ok {
				data2 := r.U8()
				if text, ok := sub[data2]; ok {
					line.WriteString(text)
				} else {
					fmt.Fprintf(line, "[unknown symbol %02X%02X]", data, data2)
				}
			} else if text, ok := tokens[data]; ok {
				line.WriteString(text)
			} else {
				fmt.Fprintf(line, "[unknown symbol %02X]", data)
			}
		}
	}
}

func replaceTail(line *strings.Builder, drop int, text string) {
	s := line.String()
	line.Reset()
	line.WriteString(s[:len(s)-drop] + text)
}
