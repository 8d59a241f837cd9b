// Package pauli provides signed Pauli strings and phase-tracked Pauli algebra.
//
// A String is a sign bit plus one Pauli letter (I, X, Y, Z) per qubit. A Flex
// extends the sign to a full fourth-root-of-unity phase, which is required
// while multiplying anticommuting terms or conjugating through gates.
//
// Letters are stored as bit-packed X and Z planes: letter = x + 2z, so
// I=(0,0), X=(1,0), Z=(0,1) and Y=(1,1). The packing width is a storage
// detail and never affects semantics.
package pauli

import (
	"fmt"
	"strings"
)

// Letter is a single-qubit Pauli letter encoded as x + 2z.
type Letter uint8

const (
	LetterI Letter = 0
	LetterX Letter = 1
	LetterZ Letter = 2
	LetterY Letter = 3
)

var letterChars = [4]byte{'_', 'X', 'Z', 'Y'}

// String returns the conventional character for the letter, with '_' for identity.
func (l Letter) String() string {
	if l > 3 {
		return "?"
	}

	return string(letterChars[l])
}

// String is a signed Pauli operator on a fixed number of qubits.
//
// The zero sign is +1. Strings are value objects: methods never mutate the
// receiver except the explicit Set* methods, and conversions always return
// freshly owned results.
type String struct {
	neg    bool
	n      int
	xs, zs []uint64
}

// NewString creates the positive identity string on n qubits.
func NewString(n int) String {
	w := words(n)
	return String{n: n, xs: make([]uint64, w), zs: make([]uint64, w)}
}

// Parse parses a Pauli string such as "+XZ_Y", "-ZZ" or "XIX".
// An optional leading '+' or '-' sets the sign. Both '_' and 'I' denote the
// identity letter.
func Parse(s string) (String, error) {
	body := s
	neg := false
	if strings.HasPrefix(body, "+") {
		body = body[1:]
	} else if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}

	p := NewString(len(body))
	p.neg = neg
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '_', 'I':
		case 'X':
			p.SetLetter(i, LetterX)
		case 'Y':
			p.SetLetter(i, LetterY)
		case 'Z':
			p.SetLetter(i, LetterZ)
		default:
			return String{}, fmt.Errorf("invalid pauli character %q in %q", body[i], s)
		}
	}

	return p, nil
}

// MustParse is Parse that panics on malformed input. Intended for tests and
// constant-like literals.
func MustParse(s string) String {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// Len returns the number of qubits.
func (p String) Len() int { return p.n }

// Negative reports whether the sign is -1.
func (p String) Negative() bool { return p.neg }

// SetNegative sets the sign to -1 (true) or +1 (false).
func (p *String) SetNegative(neg bool) { p.neg = neg }

// Sign returns +1 or -1.
func (p String) Sign() int {
	if p.neg {
		return -1
	}

	return 1
}

// X reports the X bit of qubit q.
func (p String) X(q int) bool { return bitGet(p.xs, q) }

// Z reports the Z bit of qubit q.
func (p String) Z(q int) bool { return bitGet(p.zs, q) }

// SetX sets the X bit of qubit q.
func (p *String) SetX(q int, v bool) { bitSet(p.xs, q, v) }

// SetZ sets the Z bit of qubit q.
func (p *String) SetZ(q int, v bool) { bitSet(p.zs, q, v) }

// Letter returns the Pauli letter at qubit q.
func (p String) Letter(q int) Letter {
	var l Letter
	if bitGet(p.xs, q) {
		l |= LetterX
	}
	if bitGet(p.zs, q) {
		l |= LetterZ
	}

	return l
}

// SetLetter sets the Pauli letter at qubit q.
func (p *String) SetLetter(q int, l Letter) {
	bitSet(p.xs, q, l&LetterX != 0)
	bitSet(p.zs, q, l&LetterZ != 0)
}

// Weight returns the number of non-identity letters.
func (p String) Weight() int {
	w := 0
	for q := 0; q < p.n; q++ {
		if p.Letter(q) != LetterI {
			w++
		}
	}

	return w
}

// IsIdentity reports whether every letter is the identity, ignoring sign.
func (p String) IsIdentity() bool {
	return allZero(p.xs) && allZero(p.zs)
}

// Commutes reports whether p commutes with other.
// Both strings must have the same qubit count.
func (p String) Commutes(other String) bool {
	if p.n != other.n {
		panic(fmt.Sprintf("pauli length mismatch: %d vs %d", p.n, other.n))
	}

	return symplecticParity(p.xs, p.zs, other.xs, other.zs) == 0
}

// Equal reports whether p and other have identical sign and letters.
func (p String) Equal(other String) bool {
	if p.n != other.n || p.neg != other.neg {
		return false
	}

	return slicesEqual(p.xs, other.xs) && slicesEqual(p.zs, other.zs)
}

// Copy returns an independent copy of p.
func (p String) Copy() String {
	c := NewString(p.n)
	c.neg = p.neg
	copy(c.xs, p.xs)
	copy(c.zs, p.zs)

	return c
}

// Flex returns p as a Flex with phase +1 or -1.
func (p String) Flex() Flex {
	f := NewFlex(p.n)
	copy(f.xs, p.xs)
	copy(f.zs, p.zs)
	if p.neg {
		f.phase = 2
	}

	return f
}

// String formats p with a sign prefix, e.g. "+X_Z" or "-YY".
func (p String) String() string {
	var b strings.Builder
	b.Grow(p.n + 1)
	if p.neg {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	for q := 0; q < p.n; q++ {
		b.WriteByte(letterChars[p.Letter(q)])
	}

	return b.String()
}

func words(n int) int { return (n + 63) / 64 }

func bitGet(ws []uint64, q int) bool {
	return ws[q>>6]&(1<<(uint(q)&63)) != 0
}

func bitSet(ws []uint64, q int, v bool) {
	if v {
		ws[q>>6] |= 1 << (uint(q) & 63)
	} else {
		ws[q>>6] &^= 1 << (uint(q) & 63)
	}
}

func allZero(ws []uint64) bool {
	for _, w := range ws {
		if w != 0 {
			return false
		}
	}

	return true
}

func slicesEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// symplecticParity returns the parity (0 or 1) of the symplectic inner
// product between (x1,z1) and (x2,z2). Parity 1 means anticommuting.
func symplecticParity(x1, z1, x2, z2 []uint64) int {
	var acc uint64
	for i := range x1 {
		acc ^= x1[i]&z2[i] ^ z1[i]&x2[i]
	}

	return popcountParity(acc)
}

func popcountParity(w uint64) int {
	w ^= w >> 32
	w ^= w >> 16
	w ^= w >> 8
	w ^= w >> 4
	w ^= w >> 2
	w ^= w >> 1

	return int(w & 1)
}
