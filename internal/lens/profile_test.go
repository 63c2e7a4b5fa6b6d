package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensoracle/internal/domain"
)

func TestParseProfileID(t *testing.T) {
	cases := map[string]string{
		"0x3078303030": "0x000",
		"0x30783031":   "0x01",
		"0X3078304131": "0x0A1",
		"0x41":         "A",
		"0x414":        "A\x04",
		"0xff00":       "\xff\x00",
	}
	for in, want := range cases {
		got, err := ParseProfileID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseProfileIDRejectsNonHex(t *testing.T) {
	for _, in := range []string{"", "0x", "not-hex", "0xZZ", "3078", "0x30 78", " 0x30"} {
		_, err := ParseProfileID(in)
		require.Error(t, err, in)
		assert.Equal(t, domain.BadLensProfileID, domain.KindOf(err), in)
	}
}

func TestProfileIDFromBytes(t *testing.T) {
	for _, in := range []string{"0x01", "0x2a", "0xdeadbeef"} {
		got, err := ProfileIDFromBytes([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, in, got)
	}

	for _, in := range []string{"", "not-hex", "0x", "0x0A", "01", "0x01 "} {
		_, err := ProfileIDFromBytes([]byte(in))
		require.Error(t, err, in)
		assert.Equal(t, domain.BadLensProfileID, domain.KindOf(err), in)
	}
}
