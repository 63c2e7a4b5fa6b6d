package abi

import (
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensoracle/internal/domain"
)

func gethArgs(t *testing.T, types ...string) gethabi.Arguments {
	t.Helper()
	args := make(gethabi.Arguments, len(types))
	for i, name := range types {
		typ, err := gethabi.NewType(name, "", nil)
		require.NoError(t, err)
		args[i] = gethabi.Argument{Type: typ}
	}
	return args
}

func maxUint256() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}

func TestRequestRoundTrip(t *testing.T) {
	cases := []domain.Request{
		{ID: big.NewInt(0), ProfileID: []byte{}},
		{ID: big.NewInt(1), ProfileID: []byte("0x01")},
		{ID: maxUint256(), ProfileID: []byte(strings.Repeat("a", 33))},
		{ID: big.NewInt(42), ProfileID: []byte(strings.Repeat("\xff", 64))},
	}

	for _, req := range cases {
		enc, err := EncodeRequest(req)
		require.NoError(t, err)
		assert.Zero(t, len(enc)%wordSize)

		got, err := DecodeRequest(enc)
		require.NoError(t, err)
		assert.Equal(t, 0, req.ID.Cmp(got.ID), "id %s != %s", req.ID, got.ID)
		assert.Equal(t, req.ProfileID, got.ProfileID)
	}
}

func TestEncodeRequestMatchesGeth(t *testing.T) {
	args := gethArgs(t, "uint256", "bytes")
	want, err := args.Pack(big.NewInt(7), []byte("0x0001"))
	require.NoError(t, err)

	got, err := EncodeRequest(domain.Request{ID: big.NewInt(7), ProfileID: []byte("0x0001")})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRequestFromGeth(t *testing.T) {
	args := gethArgs(t, "uint256", "bytes")
	data, err := args.Pack(big.NewInt(99), []byte("0x3078303030"))
	require.NoError(t, err)

	req, err := DecodeRequest(data)
	require.NoError(t, err)
	assert.Equal(t, int64(99), req.ID.Int64())
	assert.Equal(t, []byte("0x3078303030"), req.ProfileID)
}

func TestDecodeRequestMalformed(t *testing.T) {
	valid, err := EncodeRequest(domain.Request{ID: big.NewInt(5), ProfileID: []byte("0x01")})
	require.NoError(t, err)

	offsetOverrun := common.CopyBytes(valid)
	offsetOverrun[63] = 0xff

	lengthOverrun := common.CopyBytes(valid)
	lengthOverrun[95] = 0x40

	hugeLength := common.CopyBytes(valid)
	hugeLength[64] = 0x01

	cases := map[string][]byte{
		"empty":          nil,
		"short head":     valid[:40],
		"no tail":        valid[:64],
		"offset overrun": offsetOverrun,
		"length overrun": lengthOverrun,
		"huge length":    hugeLength,
		"unpadded data":  valid[:len(valid)-1],
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRequest(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodeResponse(t *testing.T) {
	resp := domain.Response{Type: domain.ResponseTypeError, RequestID: big.NewInt(0x1234), Payload: 4}
	enc := EncodeResponse(resp)
	require.Len(t, enc, ResponseSize)

	want := make([]byte, ResponseSize)
	want[31] = 2
	want[62], want[63] = 0x12, 0x34
	want[95] = 4
	assert.Equal(t, want, enc)

	args := gethArgs(t, "uint256", "uint256", "uint256")
	packed, err := args.Pack(big.NewInt(2), big.NewInt(0x1234), big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, packed, enc)
}

func TestEncodeResponseIsTotal(t *testing.T) {
	enc := EncodeResponse(domain.Response{})
	assert.Equal(t, make([]byte, ResponseSize), enc)

	overflow := new(big.Int).Lsh(big.NewInt(1), 256)
	enc = EncodeResponse(domain.Response{RequestID: overflow.Add(overflow, big.NewInt(3))})
	assert.Len(t, enc, ResponseSize)
	assert.Equal(t, byte(3), enc[63])
}

func TestResponseRoundTrip(t *testing.T) {
	cases := []domain.Response{
		{Type: domain.ResponseTypeResponse, RequestID: big.NewInt(1), Payload: 5},
		{Type: domain.ResponseTypeError, RequestID: big.NewInt(0), Payload: 1},
		{Type: domain.ResponseTypeResponse, RequestID: maxUint256(), Payload: ^uint64(0)},
	}
	for _, resp := range cases {
		got, err := DecodeResponse(EncodeResponse(resp))
		require.NoError(t, err)
		assert.Equal(t, resp.Type, got.Type)
		assert.Equal(t, 0, resp.RequestID.Cmp(got.RequestID))
		assert.Equal(t, resp.Payload, got.Payload)
	}

	_, err := DecodeResponse(make([]byte, 95))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestUintWidth(t *testing.T) {
	u8 := NewUint(8)

	_, err := u8.Encode(256)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Uint256.Encode(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Uint256.Encode("1")
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	word := make([]byte, wordSize)
	word[30] = 1
	_, err = u8.Decode(word)
	assert.ErrorIs(t, err, ErrMalformed)

	word[30] = 0
	word[31] = 0xff
	v, err := u8.Decode(word)
	require.NoError(t, err)
	assert.Equal(t, int64(255), v.(*big.Int).Int64())

	assert.Panics(t, func() { NewUint(7) })
}

func TestAddressCoder(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000DeaDBeef")
	enc, err := Address.Encode(addr)
	require.NoError(t, err)

	args := gethArgs(t, "address")
	want, err := args.Pack(addr)
	require.NoError(t, err)
	assert.Equal(t, want, enc)

	got, err := Address.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	enc[0] = 1
	_, err = Address.Decode(enc)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Address.Encode("not an address")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStaticArraysMatchGeth(t *testing.T) {
	var (
		uints [10]*big.Int
		addrs [10]common.Address
	)
	for i := range uints {
		uints[i] = big.NewInt(int64(i * 1000))
		addrs[i] = common.BigToAddress(big.NewInt(int64(i + 1)))
	}

	assert.False(t, UintArray.Dynamic())
	assert.Equal(t, 320, UintArray.Size())
	assert.Equal(t, "uint256[10]", UintArray.Type())

	gotUints, err := Encode([]Coder{UintArray}, []any{uints})
	require.NoError(t, err)
	wantUints, err := gethArgs(t, "uint256[10]").Pack(uints)
	require.NoError(t, err)
	assert.Equal(t, wantUints, gotUints)

	gotAddrs, err := Encode([]Coder{AddressArray}, []any{addrs})
	require.NoError(t, err)
	wantAddrs, err := gethArgs(t, "address[10]").Pack(addrs)
	require.NoError(t, err)
	assert.Equal(t, wantAddrs, gotAddrs)

	decoded, err := Decode([]Coder{AddressArray}, gotAddrs)
	require.NoError(t, err)
	elems := decoded[0].([]any)
	require.Len(t, elems, 10)
	assert.Equal(t, addrs[9], elems[9])
}

func TestBytesArrayMatchesGeth(t *testing.T) {
	var values [10][]byte
	for i := range values {
		values[i] = []byte(strings.Repeat("x", i*7))
	}

	assert.True(t, BytesArray.Dynamic())

	got, err := Encode([]Coder{Uint256, BytesArray}, []any{uint64(3), values})
	require.NoError(t, err)
	want, err := gethArgs(t, "uint256", "bytes[10]").Pack(big.NewInt(3), values)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := Decode([]Coder{Uint256, BytesArray}, got)
	require.NoError(t, err)
	elems := decoded[1].([]any)
	for i := range values {
		assert.Equal(t, values[i], elems[i])
	}

	_, err = BytesArray.Encode(values[:9])
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeArity(t *testing.T) {
	_, err := Encode([]Coder{Uint256, Bytes}, []any{1})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}
