package binio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestReaderLittleEndian(t *testing.T) {
	data := []byte{
		0x42,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01,
	}
	r := New(bytes.NewReader(data))

	if got := r.U8(); got != 0x42 {
		t.Errorf("U8() = 0x%02X, want 0x42", got)
	}
	if got := r.U16(); got != 0x1234 {
		t.Errorf("U16() = 0x%04X, want 0x1234", got)
	}
	if got := r.U32(); got != 0x12345678 {
		t.Errorf("U32() = 0x%08X, want 0x12345678", got)
	}
	if got := r.U64(); got != 0x0123456789ABCDEF {
		t.Errorf("U64() = 0x%016X, want 0x0123456789ABCDEF", got)
	}
	if got := r.Tell(); got != int64(len(data)) {
		t.Errorf("Tell() = %d, want %d", got, len(data))
	}
}

func TestReaderFloats(t *testing.T) {
	var data []byte
	f32 := math.Float32bits(3.5)
	data = append(data, byte(f32), byte(f32>>8), byte(f32>>16), byte(f32>>24))
	f64 := math.Float64bits(-1.25)
	for i := 0; i < 8; i++ {
		data = append(data, byte(f64>>(8*i)))
	}
	r := New(bytes.NewReader(data))

	if got := r.F32(); got != 3.5 {
		t.Errorf("F32() = %v, want 3.5", got)
	}
	if got := r.F64(); got != -1.25 {
		t.Errorf("F64() = %v, want -1.25", got)
	}
}

func TestReaderBigEndian(t *testing.T) {
	data := []byte{0x12, 0x34, 0x12, 0x34, 0x56, 0x78}
	r := New(bytes.NewReader(data))
	if got := r.U16BE(); got != 0x1234 {
		t.Errorf("U16BE() = 0x%04X, want 0x1234", got)
	}
	if got := r.U32BE(); got != 0x12345678 {
		t.Errorf("U32BE() = 0x%08X, want 0x12345678", got)
	}
}

func TestStrConsumesPadding(t *testing.T) {
	// odd length is followed by one padding byte
	data := []byte{0x03, 0x00, 'A', 'B', 'C', 0xFF, 0x99}
	r := New(bytes.NewReader(data))
	if got := r.Str(); string(got) != "ABC" {
		t.Errorf("Str() = %q, want \"ABC\"", got)
	}
	if got := r.U8(); got != 0x99 {
		t.Errorf("padding not consumed: next byte = 0x%02X, want 0x99", got)
	}

	// even length has no padding
	r = New(bytes.NewReader([]byte{0x02, 0x00, 'H', 'I', 0x7F}))
	if got := r.Str(); string(got) != "HI" {
		t.Errorf("Str() = %q, want \"HI\"", got)
	}
	if got := r.U8(); got != 0x7F {
		t.Errorf("next byte = 0x%02X, want 0x7F", got)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x01}))
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected a panic on short read")
		}
		err, ok := p.(*Error)
		if !ok {
			t.Fatalf("panic value is %T, want *Error", p)
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("cause = %v, want io.ErrUnexpectedEOF", err.Cause)
		}
	}()
	r.U32()
}
