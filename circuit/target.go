package circuit

import (
	"fmt"

	"github.com/arloliu/stabkit/pauli"
)

// TargetKind discriminates the target variants an instruction may carry.
type TargetKind uint8

const (
	// TargetQubit addresses a qubit by index.
	TargetQubit TargetKind = iota
	// TargetRec addresses a prior measurement record; Value is the lookback
	// distance k, meaning "the k-th most recent record" (rec[-k]).
	TargetRec
	// TargetPauliX, TargetPauliY and TargetPauliZ address a qubit as one
	// factor of a Pauli-product target (used by MPP).
	TargetPauliX
	TargetPauliY
	TargetPauliZ
)

// Target is one entry of an instruction's target list.
type Target struct {
	Kind TargetKind
	// Value is a qubit index, or a record lookback distance for TargetRec.
	Value int
	// Inverted marks a negated Pauli-product factor ("!X0"). Only meaningful
	// on the first factor of a product.
	Inverted bool
}

// Qubit returns a plain qubit target.
func Qubit(q int) Target { return Target{Kind: TargetQubit, Value: q} }

// Rec returns a measurement-record target with lookback k (rec[-k], k >= 1).
func Rec(k int) Target { return Target{Kind: TargetRec, Value: k} }

// PauliTarget returns a Pauli-product factor for the given letter on qubit q.
// The letter must not be the identity.
func PauliTarget(l pauli.Letter, q int, inverted bool) Target {
	switch l {
	case pauli.LetterX:
		return Target{Kind: TargetPauliX, Value: q, Inverted: inverted}
	case pauli.LetterY:
		return Target{Kind: TargetPauliY, Value: q, Inverted: inverted}
	case pauli.LetterZ:
		return Target{Kind: TargetPauliZ, Value: q, Inverted: inverted}
	default:
		panic("identity letter has no pauli target")
	}
}

// IsQubit reports whether the target addresses a qubit directly or as a
// Pauli-product factor.
func (t Target) IsQubit() bool { return t.Kind != TargetRec }

// IsPauli reports whether the target is a Pauli-product factor.
func (t Target) IsPauli() bool {
	return t.Kind == TargetPauliX || t.Kind == TargetPauliY || t.Kind == TargetPauliZ
}

// PauliLetter returns the letter of a Pauli-product factor, or the identity
// for other target kinds.
func (t Target) PauliLetter() pauli.Letter {
	switch t.Kind {
	case TargetPauliX:
		return pauli.LetterX
	case TargetPauliY:
		return pauli.LetterY
	case TargetPauliZ:
		return pauli.LetterZ
	default:
		return pauli.LetterI
	}
}

// String formats the target in the conventional text form.
func (t Target) String() string {
	prefix := ""
	if t.Inverted {
		prefix = "!"
	}
	switch t.Kind {
	case TargetQubit:
		return fmt.Sprintf("%d", t.Value)
	case TargetRec:
		return fmt.Sprintf("rec[-%d]", t.Value)
	case TargetPauliX:
		return fmt.Sprintf("%sX%d", prefix, t.Value)
	case TargetPauliY:
		return fmt.Sprintf("%sY%d", prefix, t.Value)
	case TargetPauliZ:
		return fmt.Sprintf("%sZ%d", prefix, t.Value)
	default:
		return fmt.Sprintf("?%d", t.Value)
	}
}
