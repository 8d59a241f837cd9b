package blob

import (
	"fmt"

	"github.com/arloliu/stabkit/compress"
	"github.com/arloliu/stabkit/endian"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/internal/options"
)

// Option configures an Encoder.
type Option = options.Option[*Encoder]

func applyOptions(e *Encoder, opts ...Option) error {
	return options.Apply(e, opts...)
}

// WithCompression selects the payload compression codec.
func WithCompression(t compress.Type) Option {
	return options.New(func(e *Encoder) error {
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown compression type 0x%02x", errs.ErrInvalidArgument, uint8(t))
		}
		e.ctype = t

		return nil
	})
}

// WithLittleEndian stores payload bit words in little-endian order.
// This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetLittleEndianEngine()
		e.bigEndian = false
	})
}

// WithBigEndian stores payload bit words in big-endian order, for readers on
// big-endian hosts that map the payload directly.
func WithBigEndian() Option {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetBigEndianEngine()
		e.bigEndian = true
	})
}
