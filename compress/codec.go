package compress

import "fmt"

// Type identifies a compression algorithm in a blob header.
//
// The values are part of the serialized format and must not be renumbered.
type Type uint8

const (
	// TypeNone stores the payload uncompressed.
	TypeNone Type = 0x1
	// TypeZstd selects Zstandard compression.
	TypeZstd Type = 0x2
	// TypeS2 selects S2 (Snappy-compatible) compression.
	TypeS2 Type = 0x3
	// TypeLZ4 selects LZ4 block compression.
	TypeLZ4 Type = 0x4
)

// IsValid reports whether t is a known compression type.
func (t Type) IsValid() bool {
	return t >= TypeNone && t <= TypeLZ4
}

// String returns the lowercase codec name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(t))
	}
}

// Compressor compresses a payload.
//
// The returned slice is newly allocated and owned by the caller (the no-op
// codec, which returns its input, is the documented exception); the input is
// never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same type. It validates the
// compressed framing and fails on corrupted or mismatched input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
