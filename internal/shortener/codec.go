package shortener

import (
	"fmt"
	"math"

	"github.com/sqids/sqids-go"
)

// MinCodeLength is the minimum length of a generated short code. Sqids pads
// short ids algorithmically, so small ids still produce full-length codes.
const MinCodeLength = 6

// Codec is the reversible bijection between registry ids and short codes.
type Codec struct {
	sqids *sqids.Sqids
}

// NewCodec creates a codec with the default alphabet and MinCodeLength.
func NewCodec() (*Codec, error) {
	s, err := sqids.New(sqids.Options{MinLength: MinCodeLength})
	if err != nil {
		return nil, fmt.Errorf("init sqids: %w", err)
	}

	return &Codec{sqids: s}, nil
}

// Encode derives the short code for a registry id.
func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("encode: negative id %d", id)
	}

	return c.sqids.Encode([]uint64{uint64(id)})
}

// Decode returns the id a short code was minted from. ok is false for any
// string Encode never produced; malformed input reports absence, never panics.
func (c *Codec) Decode(code string) (id int64, ok bool) {
	numbers := c.sqids.Decode(code)
	if len(numbers) != 1 || numbers[0] > math.MaxInt64 {
		return 0, false
	}

	// Sqids decodes many spellings to some number; only the one Encode mints
	// is a valid short code.
	canonical, err := c.sqids.Encode(numbers)
	if err != nil || canonical != code {
		return 0, false
	}

	return int64(numbers[0]), true
}
