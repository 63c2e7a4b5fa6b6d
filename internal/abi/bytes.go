package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes is the coder for dynamic bytes fields.
var Bytes Coder = BytesCoder{}

// BytesCoder handles the dynamic bytes type: a length word followed by the
// data right-padded to a word boundary. Decoded values are []byte.
type BytesCoder struct{}

func (BytesCoder) Type() string  { return "bytes" }
func (BytesCoder) Dynamic() bool { return true }
func (BytesCoder) Size() int     { return wordSize }

func (BytesCoder) Encode(value any) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case hexutil.Bytes:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, fmt.Errorf("%w: %T for bytes", ErrUnsupportedValue, value)
	}

	out := encodeLength(len(b))
	return append(out, common.RightPadBytes(b, padded(len(b)))...), nil
}

func (BytesCoder) Decode(data []byte) (any, error) {
	n, err := decodeLength(data)
	if err != nil {
		return nil, err
	}
	if n > len(data)-wordSize || padded(n) > len(data)-wordSize {
		return nil, fmt.Errorf("%w: bytes length %d overruns %d available bytes",
			ErrMalformed, n, len(data)-wordSize)
	}
	return common.CopyBytes(data[wordSize : wordSize+n]), nil
}
