// Package compress provides the compression codecs used by tableau blob
// serialization.
//
// Tableau payloads are packed symplectic bit rows: long runs of zero words
// for sparse generators and strong regularity for structured codes, which
// makes them compress well with fast block codecs. Four algorithms are
// supported:
//
//   - None: passthrough, for tiny tableaus where framing overhead dominates
//   - Zstd: best ratio, for archival of large tableau collections
//   - S2: fastest, the default trade-off
//   - LZ4: fast with slightly better ratios than S2 on dense rows
//
// All codecs are stateless values safe for concurrent use; pooled scratch
// state is handled internally.
package compress
