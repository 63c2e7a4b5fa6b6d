package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// Uint256 is the coder for uint256 fields.
var Uint256 = NewUint(256)

// UintCoder handles uint<N>. Decoded values are *big.Int.
type UintCoder struct {
	bits int
}

func NewUint(bits int) *UintCoder {
	if bits <= 0 || bits > 256 || bits%8 != 0 {
		panic(fmt.Sprintf("abi: invalid uint width %d", bits))
	}
	return &UintCoder{bits: bits}
}

func (c *UintCoder) Type() string  { return fmt.Sprintf("uint%d", c.bits) }
func (c *UintCoder) Dynamic() bool { return false }
func (c *UintCoder) Size() int     { return wordSize }

func (c *UintCoder) Encode(value any) ([]byte, error) {
	v, err := toBig(value)
	if err != nil {
		return nil, err
	}
	if v.Sign() < 0 || v.BitLen() > c.bits {
		return nil, fmt.Errorf("%w: %s does not fit %s", ErrOutOfRange, v, c.Type())
	}
	return math.PaddedBigBytes(v, wordSize), nil
}

func (c *UintCoder) Decode(data []byte) (any, error) {
	if len(data) < wordSize {
		return nil, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrMalformed, c.Type(), wordSize, len(data))
	}
	v := new(big.Int).SetBytes(data[:wordSize])
	if v.BitLen() > c.bits {
		return nil, fmt.Errorf("%w: value exceeds %s", ErrMalformed, c.Type())
	}
	return v, nil
}

func toBig(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrUnsupportedValue)
		}
		return v, nil
	case big.Int:
		return &v, nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("%w: %T for uint", ErrUnsupportedValue, value)
	}
}
