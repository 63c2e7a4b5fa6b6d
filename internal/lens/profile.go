package lens

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"lensoracle/internal/domain"
)

var hexLiteral = regexp.MustCompile(`^0x[0-9a-f]+$`)

// ParseProfileID recovers the profile id embedded in a request. The input is
// the 0x-prefixed hex rendering of the request's bytes field; every pair of
// hex digits becomes one byte of the id. A trailing unpaired digit is decoded
// as a byte on its own.
func ParseProfileID(hexText string) (string, error) {
	lower := strings.ToLower(hexText)
	if !hexLiteral.MatchString(lower) {
		return "", domain.Errorf(domain.BadLensProfileID, "%q is not a hex literal", hexText)
	}

	digits := lower[2:]
	var sb strings.Builder
	sb.Grow((len(digits) + 1) / 2)
	for i := 0; i < len(digits); i += 2 {
		end := min(i+2, len(digits))
		b, err := strconv.ParseUint(digits[i:end], 16, 8)
		if err != nil {
			return "", domain.NewError(domain.BadLensProfileID, err)
		}
		sb.WriteByte(byte(b))
	}
	return sb.String(), nil
}

// ProfileIDFromBytes translates the raw bytes field of a request. The bytes
// must spell a lowercase 0x-prefixed hex literal themselves.
func ProfileIDFromBytes(b []byte) (string, error) {
	id, err := ParseProfileID(hexutil.Encode(b))
	if err != nil {
		return "", err
	}
	if !hexLiteral.MatchString(id) {
		return "", domain.Errorf(domain.BadLensProfileID, "profile id %q is not a hex literal", id)
	}
	return id, nil
}
