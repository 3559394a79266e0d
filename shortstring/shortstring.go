// Package shortstring converts between Cairo short strings and field
// elements. A short string is at most 31 ASCII bytes packed big-endian into
// a single felt; the zero felt decodes to the empty string.
package shortstring

import (
	"errors"
	"fmt"

	"github.com/dojoengine/worldscan/core/felt"
)

// MaxLength is the longest encodable string: one felt holds 31 bytes of text.
const MaxLength = 31

var (
	ErrTooLong      = errors.New("short string exceeds 31 bytes")
	ErrNonASCII     = errors.New("short string contains a non-ASCII byte")
	ErrOutOfRange   = errors.New("felt value out of short string range")
	ErrEmbeddedNull = errors.New("unexpected null byte inside short string")
)

// Decode unpacks a felt into its short string. It fails if the value does
// not fit in 31 bytes, if a null byte appears after the first text byte, or
// if any byte is outside the ASCII range.
func Decode(f *felt.Felt) (string, error) {
	if f.IsZero() {
		return "", nil
	}

	b := f.Bytes()
	if b[0] != 0 {
		return "", ErrOutOfRange
	}

	buf := make([]byte, 0, MaxLength)
	for _, c := range b[1:] {
		switch {
		case c == 0:
			if len(buf) > 0 {
				return "", ErrEmbeddedNull
			}
		case c >= 0x80:
			return "", fmt.Errorf("%w: %#x", ErrNonASCII, c)
		default:
			buf = append(buf, c)
		}
	}

	return string(buf), nil
}

// Encode packs a short string into a felt. The input must be at most 31
// ASCII bytes.
func Encode(s string) (*felt.Felt, error) {
	if len(s) > MaxLength {
		return nil, ErrTooLong
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return nil, fmt.Errorf("%w: %#x", ErrNonASCII, s[i])
		}
	}

	return new(felt.Felt).SetBytes([]byte(s)), nil
}
