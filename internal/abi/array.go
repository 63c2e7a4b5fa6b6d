package abi

import (
	"fmt"
	"reflect"
)

// Fixed-length arrays of the consumer contract's batch calls.
var (
	AddressArray = NewArray(Address, 10)
	BytesArray   = NewArray(Bytes, 10)
	UintArray    = NewArray(Uint256, 10)
)

// ArrayCoder handles T[N]. It is encoded as a tuple of N elements and is
// dynamic exactly when T is. Encode accepts any slice or array of length N;
// Decode returns []any.
type ArrayCoder struct {
	elem   Coder
	length int
}

func NewArray(elem Coder, length int) *ArrayCoder {
	if length <= 0 {
		panic(fmt.Sprintf("abi: invalid array length %d", length))
	}
	return &ArrayCoder{elem: elem, length: length}
}

func (c *ArrayCoder) Type() string  { return fmt.Sprintf("%s[%d]", c.elem.Type(), c.length) }
func (c *ArrayCoder) Dynamic() bool { return c.elem.Dynamic() }

func (c *ArrayCoder) Size() int {
	if c.Dynamic() {
		return wordSize
	}
	return c.length * c.elem.Size()
}

func (c *ArrayCoder) Encode(value any) ([]byte, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, value, c.Type())
	}
	if rv.Len() != c.length {
		return nil, fmt.Errorf("%w: %d elements for %s", ErrOutOfRange, rv.Len(), c.Type())
	}

	values := make([]any, c.length)
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return Encode(c.elems(), values)
}

func (c *ArrayCoder) Decode(data []byte) (any, error) {
	return Decode(c.elems(), data)
}

func (c *ArrayCoder) elems() []Coder {
	coders := make([]Coder, c.length)
	for i := range coders {
		coders[i] = c.elem
	}
	return coders
}
