// Package binio reads the primitive values that tokenized BASIC files are
// built from: little-endian integers, IEEE floats, and length-prefixed,
// word-aligned strings. The Macintosh save format stores its scalars
// big-endian, so the big-endian variants live here too.
package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Error reports a failed primitive read together with the file offset at
// which it was attempted.
type Error struct {
	Offset int64
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("read failed at offset 0x%X: %v", e.Offset, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Reader wraps a seekable byte source. Read methods panic with *Error on a
// short read; decoders establish a recover boundary per opcode stream, so
// the deeply nested handlers stay free of error plumbing.
type Reader struct {
	src io.ReadSeeker
}

// New returns a Reader over src.
func New(src io.ReadSeeker) *Reader {
	return &Reader{src: src}
}

// Tell reports the current offset.
func (r *Reader) Tell() int64 {
	pos, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		panic(&Error{Offset: -1, Cause: err})
	}
	return pos
}

// Seek positions the reader absolutely.
func (r *Reader) Seek(offset int64) {
	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		panic(&Error{Offset: offset, Cause: err})
	}
}

// SeekCurrent moves the reader relative to the current offset.
func (r *Reader) SeekCurrent(delta int64) {
	if _, err := r.src.Seek(delta, io.SeekCurrent); err != nil {
		panic(&Error{Offset: -1, Cause: err})
	}
}

// End reports the offset of end-of-file without disturbing the position.
func (r *Reader) End() int64 {
	pos := r.Tell()
	end, err := r.src.Seek(0, io.SeekEnd)
	if err != nil {
		panic(&Error{Offset: pos, Cause: err})
	}
	r.Seek(pos)
	return end
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int) []byte {
	pos := r.Tell()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(&Error{Offset: pos, Cause: err})
	}
	return buf
}

func (r *Reader) U8() uint8 {
	return r.Bytes(1)[0]
}

func (r *Reader) U16() uint16 {
	return binary.LittleEndian.Uint16(r.Bytes(2))
}

func (r *Reader) U32() uint32 {
	return binary.LittleEndian.Uint32(r.Bytes(4))
}

func (r *Reader) U64() uint64 {
	return binary.LittleEndian.Uint64(r.Bytes(8))
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

func (r *Reader) F64() float64 {
	return math.Float64frombits(r.U64())
}

// Str reads a u16 length-prefixed byte string. An odd length is followed by
// one padding byte, which is consumed and discarded.
func (r *Reader) Str() []byte {
	length := int(r.U16())
	text := r.Bytes(length)
	if length&1 != 0 {
		r.Bytes(1)
	}
	return text
}

func (r *Reader) U16BE() uint16 {
	return binary.BigEndian.Uint16(r.Bytes(2))
}

func (r *Reader) U32BE() uint32 {
	return binary.BigEndian.Uint32(r.Bytes(4))
}

func (r *Reader) U64BE() uint64 {
	return binary.BigEndian.Uint64(r.Bytes(8))
}

func (r *Reader) F32BE() float32 {
	return math.Float32frombits(r.U32BE())
}

func (r *Reader) F64BE() float64 {
	return math.Float64frombits(r.U64BE())
}
