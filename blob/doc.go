// Package blob serializes tableaus to a compact, checksummed binary format.
//
// A blob is a fixed header followed by the packed symplectic rows of the
// tableau: for each generator image, its X bit words, its Z bit words, and a
// sign byte. The payload may be compressed with any codec from the compress
// package and is protected by an xxHash64 checksum verified before decoding.
//
// # Encoding
//
//	enc, err := blob.NewEncoder(
//	    blob.WithCompression(compress.TypeZstd),
//	)
//	data, err := enc.Encode(t)
//
// # Decoding
//
//	t, err := blob.Decode(data)
//
// Decoding is self-describing: the header carries the compression type, the
// payload word order and the qubit count, so no encoder configuration is
// needed. Corrupted framing fails with errs.ErrInvalidBlob and a payload
// that does not match its checksum fails with errs.ErrChecksumMismatch.
package blob
