package convert

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// TableauToUnitary builds the 2^n x 2^n unitary matrix of the tableau's
// operation, with rows and columns indexed per the requested endianness.
//
// The matrix is produced by simulating the elimination synthesis of the
// tableau column by column, which fixes the global phase to a deterministic
// convention.
func (cv *Converter) TableauToUnitary(t tableau.Tableau, littleEndian bool) [][]complex128 {
	n := t.NumQubits()
	size := 1 << n
	c := cv.tableauToCircuitElimination(t)

	u := make([][]complex128, size)
	for r := range u {
		u[r] = make([]complex128, size)
	}
	state := make([]complex128, size)
	for col := 0; col < size; col++ {
		for i := range state {
			state[i] = 0
		}
		state[col] = 1
		for inst := range c.All() {
			g, err := cv.lookupGate(inst.Gate)
			if err != nil {
				panic(err)
			}
			qubits, err := qubitTargets(g, inst)
			if err != nil {
				panic(err)
			}
			applyInstruction(state, g, qubits)
		}
		for r := 0; r < size; r++ {
			u[r][col] = state[r]
		}
	}

	if !littleEndian {
		u = bitReversedMatrix(u, n)
	}

	return u
}

// UnitaryToTableau infers the tableau of a Clifford unitary by reading off
// the images of the X and Z generators under conjugation, then rebuilds the
// candidate tableau's unitary and compares it to the input up to a global
// phase within Tolerance.
//
// Fails with ErrInvalidArgument when the matrix dimension is not a power of
// two or the matrix is not a Clifford operation.
func (cv *Converter) UnitaryToTableau(u [][]complex128, littleEndian bool) (tableau.Tableau, error) {
	size := len(u)
	if size == 0 || size&(size-1) != 0 {
		return tableau.Tableau{}, fmt.Errorf("%w: matrix dimension %d is not a power of two", errs.ErrInvalidArgument, size)
	}
	for _, row := range u {
		if len(row) != size {
			return tableau.Tableau{}, fmt.Errorf("%w: matrix is not square", errs.ErrInvalidArgument)
		}
	}
	n := bits.TrailingZeros(uint(size))

	work := u
	if !littleEndian {
		work = bitReversedMatrix(u, n)
	}

	xImages := make([]pauli.String, n)
	zImages := make([]pauli.String, n)
	for q := 0; q < n; q++ {
		var err error
		if xImages[q], err = conjugatedGenerator(work, n, q, false); err != nil {
			return tableau.Tableau{}, err
		}
		if zImages[q], err = conjugatedGenerator(work, n, q, true); err != nil {
			return tableau.Tableau{}, err
		}
	}

	t, err := tableau.FromRows(xImages, zImages)
	if err != nil {
		return tableau.Tableau{}, fmt.Errorf("%w: matrix is not Clifford: %v", errs.ErrInvalidArgument, err)
	}

	rebuilt := cv.TableauToUnitary(t, true)
	if !matricesEqualUpToPhase(work, rebuilt) {
		return tableau.Tableau{}, fmt.Errorf("%w: matrix is not Clifford", errs.ErrInvalidArgument)
	}

	return t, nil
}

// conjugatedGenerator recovers the signed Pauli P with U G U† = P, where G
// is X_q (zBasis false) or Z_q (zBasis true).
//
// Entries of M = U·G·U† are probed directly: M's column c is (U·G) times the
// conjugated c-th row of U, so only the entries a Pauli matrix pins down are
// computed. Column zero locates the X mask, single-bit columns fix the Z
// mask, and the anchor entry fixes the sign.
func conjugatedGenerator(u [][]complex128, n, q int, zBasis bool) (pauli.String, error) {
	size := 1 << n
	bit := 1 << q

	// ug returns (U·G)[r][k].
	ug := func(r, k int) complex128 {
		if !zBasis {
			return u[r][k^bit]
		}
		if k&bit != 0 {
			return -u[r][k]
		}

		return u[r][k]
	}
	entry := func(r, c int) complex128 {
		var acc complex128
		for k := 0; k < size; k++ {
			acc += ug(r, k) * cmplx.Conj(u[c][k])
		}

		return acc
	}

	xmask := -1
	var anchor complex128
	for r := 0; r < size; r++ {
		v := entry(r, 0)
		if cmplx.Abs(v) > 0.5 {
			xmask = r
			anchor = v
			break
		}
	}
	if xmask < 0 {
		return pauli.String{}, fmt.Errorf("%w: matrix is not Clifford: conjugated generator has no Pauli structure", errs.ErrInvalidArgument)
	}

	zmask := 0
	for j := 0; j < n; j++ {
		c := 1 << j
		ratio := entry(xmask^c, c) / anchor
		switch {
		case cmplx.Abs(ratio-1) < 0.5:
		case cmplx.Abs(ratio+1) < 0.5:
			zmask |= c
		default:
			return pauli.String{}, fmt.Errorf("%w: matrix is not Clifford: conjugated generator has no Pauli structure", errs.ErrInvalidArgument)
		}
	}

	p := pauli.NewString(n)
	yCount := 0
	for j := 0; j < n; j++ {
		x := xmask&(1<<j) != 0
		z := zmask&(1<<j) != 0
		p.SetX(j, x)
		p.SetZ(j, z)
		if x && z {
			yCount++
		}
	}
	// A positive Pauli's anchor entry is i^{#Y}.
	expected := complex(1, 0)
	switch yCount % 4 {
	case 1:
		expected = complex(0, 1)
	case 2:
		expected = complex(-1, 0)
	case 3:
		expected = complex(0, -1)
	}
	switch {
	case cmplx.Abs(anchor-expected) < 0.5:
	case cmplx.Abs(anchor+expected) < 0.5:
		p.SetNegative(true)
	default:
		return pauli.String{}, fmt.Errorf("%w: matrix is not Clifford: conjugated generator has no Pauli structure", errs.ErrInvalidArgument)
	}

	return p, nil
}

// matricesEqualUpToPhase reports whether a equals b after aligning b by a
// single global phase factor, within Tolerance per entry.
//
// The phase is anchored on b's maximum-magnitude entry: a uniformly dense
// n-qubit Clifford has every entry at magnitude 2^(-n/2), so no fixed cutoff
// can locate an anchor.
func matricesEqualUpToPhase(a, b [][]complex128) bool {
	size := len(a)
	var phase complex128
	best := 0.0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if m := cmplx.Abs(b[r][c]); m > best {
				best = m
				phase = a[r][c] / b[r][c]
			}
		}
	}
	if best <= Tolerance || math.Abs(cmplx.Abs(phase)-1) > Tolerance {
		return false
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if cmplx.Abs(a[r][c]-phase*b[r][c]) > Tolerance {
				return false
			}
		}
	}

	return true
}

// reverseBits reverses the low n bits of v.
func reverseBits(v, n int) int {
	out := 0
	for j := 0; j < n; j++ {
		if v&(1<<j) != 0 {
			out |= 1 << (n - 1 - j)
		}
	}

	return out
}

// bitReversedVector returns a copy of the state with every index's qubit
// bits reversed, converting between the two endian conventions.
func bitReversedVector(state []complex128, n int) []complex128 {
	out := make([]complex128, len(state))
	for i := range state {
		out[reverseBits(i, n)] = state[i]
	}

	return out
}

// bitReversedMatrix returns a copy of the matrix with the qubit bits of both
// row and column indices reversed.
func bitReversedMatrix(u [][]complex128, n int) [][]complex128 {
	size := len(u)
	out := make([][]complex128, size)
	for r := range out {
		out[r] = make([]complex128, size)
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			out[reverseBits(r, n)][reverseBits(c, n)] = u[r][c]
		}
	}

	return out
}
