package blob

import (
	"fmt"

	"github.com/arloliu/stabkit/compress"
	"github.com/arloliu/stabkit/endian"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/internal/hash"
	"github.com/arloliu/stabkit/internal/pool"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

const (
	// blobVersion is the current format version.
	blobVersion = 1
	// headerSize is the fixed byte length of the blob header.
	headerSize = 22
	// flagBigEndian marks payload words stored in big-endian order.
	flagBigEndian = 0x10
	// flagCompressionMask extracts the compression type from the flags byte.
	flagCompressionMask = 0x0f
)

// blobMagic identifies a stabkit tableau blob.
var blobMagic = [4]byte{'S', 'T', 'B', 'K'}

// Header fields after the flags byte are always little-endian; the endian
// option applies to the payload's packed bit words only.
var headerEngine = endian.GetLittleEndianEngine()

// Encoder serializes tableaus with a fixed compression and word-order
// configuration. An Encoder is immutable after construction and safe for
// concurrent use.
type Encoder struct {
	engine    endian.EndianEngine
	bigEndian bool
	ctype     compress.Type
}

// NewEncoder creates an encoder. The default configuration is little-endian
// payload words with S2 compression.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		engine: endian.GetLittleEndianEngine(),
		ctype:  compress.TypeS2,
	}
	if err := applyOptions(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode serializes the tableau to a self-describing blob.
func (e *Encoder) Encode(t tableau.Tableau) ([]byte, error) {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)
	buf.B = appendPayload(buf.B, t, e.engine)

	codec, err := compress.GetCodec(e.ctype)
	if err != nil {
		return nil, err
	}
	stored, err := codec.Compress(buf.B)
	if err != nil {
		return nil, fmt.Errorf("compress tableau payload: %w", err)
	}

	flags := uint8(e.ctype) & flagCompressionMask
	if e.bigEndian {
		flags |= flagBigEndian
	}

	out := make([]byte, 0, headerSize+len(stored))
	out = append(out, blobMagic[:]...)
	out = append(out, blobVersion, flags)
	out = headerEngine.AppendUint32(out, uint32(t.NumQubits()))
	out = headerEngine.AppendUint32(out, uint32(len(stored)))
	out = headerEngine.AppendUint64(out, hash.Sum64(stored))
	out = append(out, stored...)

	return out, nil
}

// Decode deserializes a blob produced by any Encoder configuration.
func Decode(data []byte) (tableau.Tableau, error) {
	if len(data) < headerSize {
		return tableau.Tableau{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", errs.ErrInvalidBlob, len(data), headerSize)
	}
	if [4]byte(data[:4]) != blobMagic {
		return tableau.Tableau{}, fmt.Errorf("%w: bad magic", errs.ErrInvalidBlob)
	}
	if data[4] != blobVersion {
		return tableau.Tableau{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidBlob, data[4])
	}
	flags := data[5]
	ctype := compress.Type(flags & flagCompressionMask)
	if !ctype.IsValid() {
		return tableau.Tableau{}, fmt.Errorf("%w: unknown compression type 0x%02x", errs.ErrInvalidBlob, uint8(ctype))
	}
	engine := endian.GetLittleEndianEngine()
	if flags&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	n := int(headerEngine.Uint32(data[6:10]))
	storedLen := int(headerEngine.Uint32(data[10:14]))
	checksum := headerEngine.Uint64(data[14:22])
	if len(data) != headerSize+storedLen {
		return tableau.Tableau{}, fmt.Errorf("%w: payload length %d does not match remaining %d bytes", errs.ErrInvalidBlob, storedLen, len(data)-headerSize)
	}
	stored := data[headerSize:]
	if hash.Sum64(stored) != checksum {
		return tableau.Tableau{}, fmt.Errorf("%w: payload checksum does not match header", errs.ErrChecksumMismatch)
	}

	codec, err := compress.GetCodec(ctype)
	if err != nil {
		return tableau.Tableau{}, err
	}
	payload, err := codec.Decompress(stored)
	if err != nil {
		return tableau.Tableau{}, fmt.Errorf("%w: decompress payload: %v", errs.ErrInvalidBlob, err)
	}
	if len(payload) != payloadSize(n) {
		return tableau.Tableau{}, fmt.Errorf("%w: payload is %d bytes, expected %d for %d qubits", errs.ErrInvalidBlob, len(payload), payloadSize(n), n)
	}

	xs := make([]pauli.String, n)
	zs := make([]pauli.String, n)
	off := 0
	for i := 0; i < n; i++ {
		xs[i], off = readRow(payload, off, n, engine)
	}
	for i := 0; i < n; i++ {
		zs[i], off = readRow(payload, off, n, engine)
	}

	t, err := tableau.FromRows(xs, zs)
	if err != nil {
		return tableau.Tableau{}, fmt.Errorf("%w: %v", errs.ErrInvalidBlob, err)
	}

	return t, nil
}

// rowWords returns the number of 64-bit words covering n qubits.
func rowWords(n int) int { return (n + 63) / 64 }

// payloadSize returns the uncompressed payload size for n qubits: 2n rows of
// X words, Z words and a sign byte.
func payloadSize(n int) int { return 2 * n * (16*rowWords(n) + 1) }

// appendPayload packs all 2n generator images, X images first.
func appendPayload(dst []byte, t tableau.Tableau, engine endian.EndianEngine) []byte {
	n := t.NumQubits()
	for i := 0; i < n; i++ {
		dst = appendRow(dst, t.XOutput(i), engine)
	}
	for i := 0; i < n; i++ {
		dst = appendRow(dst, t.ZOutput(i), engine)
	}

	return dst
}

// appendRow packs one signed Pauli row: X bit words, Z bit words, sign byte.
func appendRow(dst []byte, p pauli.String, engine endian.EndianEngine) []byte {
	n := p.Len()
	for _, pick := range [2]func(int) bool{p.X, p.Z} {
		for w := 0; w < rowWords(n); w++ {
			var word uint64
			for b := 0; b < 64 && w*64+b < n; b++ {
				if pick(w*64 + b) {
					word |= 1 << b
				}
			}
			dst = engine.AppendUint64(dst, word)
		}
	}
	sign := byte(0)
	if p.Negative() {
		sign = 1
	}

	return append(dst, sign)
}

// readRow unpacks one row starting at off and returns the next offset.
func readRow(payload []byte, off, n int, engine endian.EndianEngine) (pauli.String, int) {
	p := pauli.NewString(n)
	for _, set := range [2]func(int, bool){p.SetX, p.SetZ} {
		for w := 0; w < rowWords(n); w++ {
			word := engine.Uint64(payload[off : off+8])
			off += 8
			for b := 0; b < 64 && w*64+b < n; b++ {
				set(w*64+b, word&(1<<b) != 0)
			}
		}
	}
	p.SetNegative(payload[off] == 1)
	off++

	return p, off
}

// Fingerprint returns a stable 64-bit fingerprint of a tableau: the xxHash64
// of its canonical (little-endian, uncompressed) payload. Equal tableaus
// always fingerprint equally, independent of encoder configuration.
func Fingerprint(t tableau.Tableau) uint64 {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)
	buf.B = appendPayload(buf.B, t, endian.GetLittleEndianEngine())

	return hash.Sum64(buf.B)
}
