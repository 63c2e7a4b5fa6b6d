package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Address is the coder for address fields.
var Address Coder = AddressCoder{}

// AddressCoder handles 20-byte addresses left-padded to a word. Decoded
// values are common.Address.
type AddressCoder struct{}

func (AddressCoder) Type() string  { return "address" }
func (AddressCoder) Dynamic() bool { return false }
func (AddressCoder) Size() int     { return wordSize }

func (AddressCoder) Encode(value any) ([]byte, error) {
	var addr common.Address
	switch v := value.(type) {
	case common.Address:
		addr = v
	case *common.Address:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *common.Address", ErrUnsupportedValue)
		}
		addr = *v
	case string:
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("%w: %q is not an address", ErrOutOfRange, v)
		}
		addr = common.HexToAddress(v)
	default:
		return nil, fmt.Errorf("%w: %T for address", ErrUnsupportedValue, value)
	}
	return common.LeftPadBytes(addr.Bytes(), wordSize), nil
}

func (AddressCoder) Decode(data []byte) (any, error) {
	if len(data) < wordSize {
		return nil, fmt.Errorf("%w: address needs %d bytes, have %d", ErrMalformed, wordSize, len(data))
	}
	for _, b := range data[:wordSize-common.AddressLength] {
		if b != 0 {
			return nil, fmt.Errorf("%w: address has non-zero padding", ErrMalformed)
		}
	}
	return common.BytesToAddress(data[wordSize-common.AddressLength : wordSize]), nil
}
