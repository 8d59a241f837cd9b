package compress

// ZstdCompressor compresses with Zstandard, trading speed for the best
// ratio of the supported codecs. The right choice for archiving large
// tableau collections or shipping them over constrained links.
//
// Two implementations exist behind build tags: a cgo binding and a pure-Go
// fallback with pooled encoder/decoder state.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
