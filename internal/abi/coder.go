// Package abi implements the subset of the Ethereum contract ABI used to talk
// to the consumer contract: 32-byte words, big-endian integers and head/tail
// tuples with offset-addressed dynamic values.
package abi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const wordSize = 32

var (
	// ErrMalformed is wrapped by every decoding failure.
	ErrMalformed = errors.New("abi: malformed data")
	// ErrOutOfRange reports a value that does not fit its declared type.
	ErrOutOfRange = errors.New("abi: value out of range")
	// ErrUnsupportedValue reports a Go value a coder cannot encode.
	ErrUnsupportedValue = errors.New("abi: unsupported value")
)

// Coder encodes and decodes one ABI type.
//
// Static coders produce and consume exactly Size() bytes in the tuple head.
// Dynamic coders produce the tail representation; the enclosing tuple writes
// its offset in the head. Decode receives the buffer starting at the value.
type Coder interface {
	Type() string
	Dynamic() bool
	Size() int
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// Encode packs values as a tuple of the given coders.
func Encode(coders []Coder, values []any) ([]byte, error) {
	if len(coders) != len(values) {
		return nil, fmt.Errorf("%w: %d values for %d fields", ErrUnsupportedValue, len(values), len(coders))
	}

	headSize := 0
	for _, c := range coders {
		headSize += headSizeOf(c)
	}

	head := make([]byte, 0, headSize)
	var tail []byte
	for i, c := range coders {
		enc, err := c.Encode(values[i])
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, c.Type(), err)
		}
		if c.Dynamic() {
			head = append(head, encodeLength(headSize+len(tail))...)
			tail = append(tail, enc...)
			continue
		}
		head = append(head, enc...)
	}

	return append(head, tail...), nil
}

// Decode unpacks a tuple of the given coders from data.
func Decode(coders []Coder, data []byte) ([]any, error) {
	values := make([]any, len(coders))
	offset := 0
	for i, c := range coders {
		size := headSizeOf(c)
		if offset+size > len(data) {
			return nil, fmt.Errorf("%w: field %d (%s) needs %d bytes at offset %d, have %d",
				ErrMalformed, i, c.Type(), size, offset, len(data))
		}

		var (
			v   any
			err error
		)
		if c.Dynamic() {
			ptr, perr := decodeLength(data[offset : offset+wordSize])
			if perr != nil {
				return nil, fmt.Errorf("field %d (%s) offset: %w", i, c.Type(), perr)
			}
			if ptr > len(data) {
				return nil, fmt.Errorf("%w: field %d (%s) offset %d beyond %d bytes",
					ErrMalformed, i, c.Type(), ptr, len(data))
			}
			v, err = c.Decode(data[ptr:])
		} else {
			v, err = c.Decode(data[offset : offset+size])
		}
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, c.Type(), err)
		}

		values[i] = v
		offset += size
	}
	return values, nil
}

func headSizeOf(c Coder) int {
	if c.Dynamic() {
		return wordSize
	}
	return c.Size()
}

func encodeLength(n int) []byte {
	word := make([]byte, wordSize)
	binary.BigEndian.PutUint64(word[wordSize-8:], uint64(n))
	return word
}

// decodeLength reads an offset or length word. Values that cannot index a Go
// slice are rejected as malformed.
func decodeLength(word []byte) (int, error) {
	if len(word) < wordSize {
		return 0, fmt.Errorf("%w: short length word", ErrMalformed)
	}
	for _, b := range word[:wordSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("%w: length exceeds 64 bits", ErrMalformed)
		}
	}
	n := binary.BigEndian.Uint64(word[wordSize-8 : wordSize])
	if n > uint64(maxInt) {
		return 0, fmt.Errorf("%w: length %d overflows int", ErrMalformed, n)
	}
	return int(n), nil
}

const maxInt = int(^uint(0) >> 1)

func padded(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}
