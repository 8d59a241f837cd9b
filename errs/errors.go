// Package errs defines the sentinel errors shared across stabkit packages.
//
// Callers discriminate failure classes with errors.Is:
//
//	tab, err := conv.UnitaryToTableau(matrix, true)
//	if errors.Is(err, errs.ErrInvalidArgument) {
//	    // the matrix is malformed or not a Clifford operation
//	}
//
// Every sentinel is wrapped with fmt.Errorf("%w: ...") at the failure site so
// the returned error carries both the class and the concrete detail.
package errs

import "errors"

var (
	// ErrInvalidArgument indicates malformed or inconsistent input: a
	// non-Clifford unitary or state vector, an unknown synthesis method name,
	// a redundant or contradictory stabilizer without the permissive flag, or
	// an unresolved anticommutation during region propagation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation indicates a circuit contains a non-unitary
	// instruction in a context where only unitary instructions are allowed.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidBlob indicates a tableau blob with a bad magic, version,
	// header field, or truncated payload.
	ErrInvalidBlob = errors.New("invalid tableau blob")

	// ErrChecksumMismatch indicates a tableau blob whose payload checksum
	// does not match its header.
	ErrChecksumMismatch = errors.New("blob checksum mismatch")
)
