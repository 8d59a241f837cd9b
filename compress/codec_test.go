package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCodec(t *testing.T) {
	for _, ctype := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	for _, ctype := range []Type{Type(0), Type(9), Type(0xff)} {
		_, err := GetCodec(ctype)
		require.Error(t, err)
	}
}

func TestType_String(t *testing.T) {
	require.Equal(t, "none", TypeNone.String())
	require.Equal(t, "zstd", TypeZstd.String())
	require.Equal(t, "s2", TypeS2.String())
	require.Equal(t, "lz4", TypeLZ4.String())
	require.Equal(t, "unknown(0x09)", Type(9).String())
}

func TestType_IsValid(t *testing.T) {
	require.True(t, TypeNone.IsValid())
	require.True(t, TypeLZ4.IsValid())
	require.False(t, Type(0).IsValid())
	require.False(t, Type(5).IsValid())
}

func TestCodec_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      nil,
		"short row":  append(make([]byte, 30), 0x01, 0x00, 0x80),
		"repetitive": bytes.Repeat([]byte{0x00, 0x00, 0x00, 0x01, 0xff, 0x00, 0x00, 0x00}, 512),
	}

	for _, ctype := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		for name, payload := range payloads {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err, "%s compress %s", ctype, name)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err, "%s decompress %s", ctype, name)
			if len(payload) == 0 {
				require.Empty(t, decompressed)
			} else {
				require.Equal(t, payload, decompressed, "%s round trip %s", ctype, name)
			}
		}
	}
}

func TestCodec_RepetitiveInputShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte{0x00, 0x00, 0x00, 0x01, 0xff, 0x00, 0x00, 0x00}, 512)
	for _, ctype := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "%s", ctype)
	}
}

func TestNoOpCompressor_PassesThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte{0x01, 0x02, 0x03}

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestLZ4Compressor_DecompressGrowsBuffer(t *testing.T) {
	// A long zero run compresses far below a quarter of its original size, so
	// the decompressor's initial 4x guess is too small and must double.
	codec := NewLZ4Compressor()
	payload := make([]byte, 1<<16)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(payload))

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}
