package pauli

import (
	"fmt"
	"strings"
)

// Flex is a Pauli string whose scalar prefactor is any fourth root of unity:
// i^phase with phase in {0,1,2,3}, i.e. +1, i, -1, -i.
//
// Flex is needed wherever a plain sign is insufficient: multiplying
// anticommuting Pauli terms, decomposing Y as i·X·Z during tableau
// conjugation, and snapshotting detecting regions.
type Flex struct {
	phase  uint8
	n      int
	xs, zs []uint64
}

// phaseTable[a][b] is the exponent of i contributed by multiplying letter a
// by letter b, with letters encoded as x + 2z.
//
// Examples: X*Z = -iY contributes 3, Z*X = iY contributes 1.
var phaseTable = [4][4]uint8{
	{0, 0, 0, 0},
	{0, 0, 3, 1},
	{0, 1, 0, 3},
	{0, 3, 1, 0},
}

var phasePrefixes = [4]string{"+", "i", "-", "-i"}

// NewFlex creates the positive identity Flex on n qubits.
func NewFlex(n int) Flex {
	w := words(n)
	return Flex{n: n, xs: make([]uint64, w), zs: make([]uint64, w)}
}

// ParseFlex parses a phase-prefixed Pauli string such as "iXZ", "-iY_" or "+XX".
func ParseFlex(s string) (Flex, error) {
	body := s
	phase := uint8(0)
	switch {
	case strings.HasPrefix(body, "-i"):
		phase = 3
		body = body[2:]
	case strings.HasPrefix(body, "+i"), strings.HasPrefix(body, "i"):
		phase = 1
		body = strings.TrimPrefix(strings.TrimPrefix(body, "+"), "i")
	case strings.HasPrefix(body, "-"):
		phase = 2
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	p, err := Parse(body)
	if err != nil {
		return Flex{}, err
	}
	f := p.Flex()
	f.phase = (f.phase + phase) & 3

	return f, nil
}

// Len returns the number of qubits.
func (f Flex) Len() int { return f.n }

// Phase returns the exponent k of the i^k prefactor.
func (f Flex) Phase() uint8 { return f.phase }

// MulPhase multiplies the prefactor by i^k.
func (f *Flex) MulPhase(k uint8) { f.phase = (f.phase + k) & 3 }

// SetPhase overwrites the prefactor exponent.
func (f *Flex) SetPhase(k uint8) { f.phase = k & 3 }

// X reports the X bit of qubit q.
func (f Flex) X(q int) bool { return bitGet(f.xs, q) }

// Z reports the Z bit of qubit q.
func (f Flex) Z(q int) bool { return bitGet(f.zs, q) }

// SetX sets the X bit of qubit q.
func (f *Flex) SetX(q int, v bool) { bitSet(f.xs, q, v) }

// SetZ sets the Z bit of qubit q.
func (f *Flex) SetZ(q int, v bool) { bitSet(f.zs, q, v) }

// Letter returns the Pauli letter at qubit q.
func (f Flex) Letter(q int) Letter {
	var l Letter
	if bitGet(f.xs, q) {
		l |= LetterX
	}
	if bitGet(f.zs, q) {
		l |= LetterZ
	}

	return l
}

// SetLetter sets the Pauli letter at qubit q.
func (f *Flex) SetLetter(q int, l Letter) {
	bitSet(f.xs, q, l&LetterX != 0)
	bitSet(f.zs, q, l&LetterZ != 0)
}

// ClearQubit resets qubit q to the identity letter.
func (f *Flex) ClearQubit(q int) {
	bitSet(f.xs, q, false)
	bitSet(f.zs, q, false)
}

// IsIdentity reports whether every letter is the identity, ignoring phase.
func (f Flex) IsIdentity() bool {
	return allZero(f.xs) && allZero(f.zs)
}

// Weight returns the number of non-identity letters.
func (f Flex) Weight() int {
	w := 0
	for q := 0; q < f.n; q++ {
		if f.Letter(q) != LetterI {
			w++
		}
	}

	return w
}

// Commutes reports whether f commutes with other.
func (f Flex) Commutes(other Flex) bool {
	if f.n != other.n {
		panic(fmt.Sprintf("pauli length mismatch: %d vs %d", f.n, other.n))
	}

	return symplecticParity(f.xs, f.zs, other.xs, other.zs) == 0
}

// CommutesString reports whether f commutes with a plain String.
func (f Flex) CommutesString(other String) bool {
	if f.n != other.n {
		panic(fmt.Sprintf("pauli length mismatch: %d vs %d", f.n, other.n))
	}

	return symplecticParity(f.xs, f.zs, other.xs, other.zs) == 0
}

// MulAssign multiplies f by other in place: f = f * other.
// The phase accumulates letter by letter, so anticommuting factors are exact.
func (f *Flex) MulAssign(other Flex) {
	if f.n != other.n {
		panic(fmt.Sprintf("pauli length mismatch: %d vs %d", f.n, other.n))
	}

	phase := f.phase + other.phase
	for q := 0; q < f.n; q++ {
		phase += phaseTable[f.Letter(q)][other.Letter(q)]
	}
	for i := range f.xs {
		f.xs[i] ^= other.xs[i]
		f.zs[i] ^= other.zs[i]
	}
	f.phase = phase & 3
}

// MulString multiplies f in place by a plain signed String.
func (f *Flex) MulString(other String) {
	f.MulAssign(other.Flex())
}

// ToString converts f to a plain signed String.
// Fails if the phase is imaginary, since a String carries only a sign.
func (f Flex) ToString() (String, error) {
	if f.phase&1 != 0 {
		return String{}, fmt.Errorf("pauli string %v has an imaginary phase", f)
	}

	p := NewString(f.n)
	copy(p.xs, f.xs)
	copy(p.zs, f.zs)
	p.neg = f.phase == 2

	return p, nil
}

// Equal reports whether f and other have identical phase and letters.
func (f Flex) Equal(other Flex) bool {
	if f.n != other.n || f.phase != other.phase {
		return false
	}

	return slicesEqual(f.xs, other.xs) && slicesEqual(f.zs, other.zs)
}

// Copy returns an independent copy of f.
func (f Flex) Copy() Flex {
	c := NewFlex(f.n)
	c.phase = f.phase
	copy(c.xs, f.xs)
	copy(c.zs, f.zs)

	return c
}

// String formats f with a phase prefix, e.g. "+X_Z", "iY", "-i_Z".
func (f Flex) String() string {
	var b strings.Builder
	b.Grow(f.n + 2)
	b.WriteString(phasePrefixes[f.phase])
	for q := 0; q < f.n; q++ {
		b.WriteByte(letterChars[f.Letter(q)])
	}

	return b.String()
}
