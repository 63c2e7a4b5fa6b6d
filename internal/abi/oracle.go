package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"lensoracle/internal/domain"
)

var (
	requestCoders  = []Coder{Uint256, Bytes}
	responseCoders = []Coder{Uint256, Uint256, Uint256}
)

// ResponseSize is the length of every encoded response.
const ResponseSize = 3 * wordSize

// DecodeRequest parses the (uint256 requestId, bytes profileId) tuple.
func DecodeRequest(data []byte) (domain.Request, error) {
	values, err := Decode(requestCoders, data)
	if err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		ID:        values[0].(*big.Int),
		ProfileID: values[1].([]byte),
	}, nil
}

// EncodeRequest is the inverse of DecodeRequest, as the consumer contract
// would produce it.
func EncodeRequest(req domain.Request) ([]byte, error) {
	return Encode(requestCoders, []any{req.ID, req.ProfileID})
}

// EncodeResponse packs the three response words. It never fails: a nil
// request id encodes as zero and ids are reduced modulo 2^256.
func EncodeResponse(resp domain.Response) []byte {
	id := new(big.Int)
	if resp.RequestID != nil {
		id.Set(resp.RequestID)
	}
	out, err := Encode(responseCoders, []any{uint64(resp.Type), math.U256(id), resp.Payload})
	if err != nil {
		panic(fmt.Sprintf("abi: encode response: %v", err))
	}
	return out
}

// DecodeResponse parses a response produced by EncodeResponse. Type and
// payload words wider than 64 bits are rejected.
func DecodeResponse(data []byte) (domain.Response, error) {
	if len(data) != ResponseSize {
		return domain.Response{}, fmt.Errorf("%w: response is %d bytes, want %d", ErrMalformed, len(data), ResponseSize)
	}
	values, err := Decode(responseCoders, data)
	if err != nil {
		return domain.Response{}, err
	}

	typ, payload := values[0].(*big.Int), values[2].(*big.Int)
	if !typ.IsUint64() || !payload.IsUint64() {
		return domain.Response{}, fmt.Errorf("%w: response word exceeds 64 bits", ErrMalformed)
	}
	return domain.Response{
		Type:      domain.ResponseType(typ.Uint64()),
		RequestID: values[1].(*big.Int),
		Payload:   payload.Uint64(),
	}, nil
}
