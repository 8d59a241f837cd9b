// Package tableau provides the symplectic representation of Clifford
// operations.
//
// A Tableau records, for each input generator X_i and Z_i of an n-qubit
// system, the signed Pauli string the operation conjugates it to. A tableau
// is valid only when those images satisfy the canonical commutation
// relations: the images of X_i and Z_i anticommute, and every other pair of
// images commutes.
//
// Tableaus are value objects: conversions construct them fresh and never
// mutate them afterwards. The bit-packed storage inside pauli.String is a
// layout detail with no semantic effect.
package tableau

import (
	"fmt"
	"strings"

	"github.com/arloliu/stabkit/pauli"
)

// Tableau is the symplectic encoding of an n-qubit Clifford operation.
type Tableau struct {
	n  int
	xs []pauli.String // images of X_0 .. X_{n-1}
	zs []pauli.String // images of Z_0 .. Z_{n-1}
}

// Identity returns the identity operation on n qubits.
func Identity(n int) Tableau {
	t := Tableau{n: n, xs: make([]pauli.String, n), zs: make([]pauli.String, n)}
	for i := 0; i < n; i++ {
		x := pauli.NewString(n)
		x.SetLetter(i, pauli.LetterX)
		z := pauli.NewString(n)
		z.SetLetter(i, pauli.LetterZ)
		t.xs[i] = x
		t.zs[i] = z
	}

	return t
}

// FromRows builds a tableau from explicit generator images and validates the
// canonical commutation invariant.
func FromRows(xImages, zImages []pauli.String) (Tableau, error) {
	n := len(xImages)
	if len(zImages) != n {
		return Tableau{}, fmt.Errorf("generator count mismatch: %d X images vs %d Z images", n, len(zImages))
	}
	for i := 0; i < n; i++ {
		if xImages[i].Len() != n || zImages[i].Len() != n {
			return Tableau{}, fmt.Errorf("generator image %d does not span %d qubits", i, n)
		}
	}

	t := Tableau{n: n, xs: make([]pauli.String, n), zs: make([]pauli.String, n)}
	for i := 0; i < n; i++ {
		t.xs[i] = xImages[i].Copy()
		t.zs[i] = zImages[i].Copy()
	}
	if err := t.validate(); err != nil {
		return Tableau{}, err
	}

	return t, nil
}

func (t Tableau) validate() error {
	for i := 0; i < t.n; i++ {
		if t.xs[i].Commutes(t.zs[i]) {
			return fmt.Errorf("images of X%d and Z%d do not anticommute", i, i)
		}
		for j := i + 1; j < t.n; j++ {
			if !t.xs[i].Commutes(t.xs[j]) {
				return fmt.Errorf("images of X%d and X%d do not commute", i, j)
			}
			if !t.zs[i].Commutes(t.zs[j]) {
				return fmt.Errorf("images of Z%d and Z%d do not commute", i, j)
			}
			if !t.xs[i].Commutes(t.zs[j]) {
				return fmt.Errorf("images of X%d and Z%d do not commute", i, j)
			}
			if !t.zs[i].Commutes(t.xs[j]) {
				return fmt.Errorf("images of Z%d and X%d do not commute", i, j)
			}
		}
	}

	return nil
}

// NumQubits returns the qubit count n.
func (t Tableau) NumQubits() int { return t.n }

// XOutput returns a copy of the image of generator X_i.
func (t Tableau) XOutput(i int) pauli.String { return t.xs[i].Copy() }

// ZOutput returns a copy of the image of generator Z_i.
func (t Tableau) ZOutput(i int) pauli.String { return t.zs[i].Copy() }

// Conjugate returns the image of p under the tableau's operation: U p U†.
//
// The image is assembled as a phase-tracked product of generator images,
// decomposing each Y letter as i·X·Z.
func (t Tableau) Conjugate(p pauli.Flex) pauli.Flex {
	if p.Len() != t.n {
		panic(fmt.Sprintf("pauli length %d does not match tableau qubit count %d", p.Len(), t.n))
	}

	acc := pauli.NewFlex(t.n)
	acc.MulPhase(p.Phase())
	for q := 0; q < t.n; q++ {
		x, z := p.X(q), p.Z(q)
		if x {
			acc.MulString(t.xs[q])
		}
		if z {
			acc.MulString(t.zs[q])
		}
		if x && z {
			acc.MulPhase(1)
		}
	}

	return acc
}

// Then returns the composition "t followed by next" (next ∘ t).
func (t Tableau) Then(next Tableau) Tableau {
	if t.n != next.n {
		panic(fmt.Sprintf("qubit count mismatch: %d vs %d", t.n, next.n))
	}

	out := Tableau{n: t.n, xs: make([]pauli.String, t.n), zs: make([]pauli.String, t.n)}
	for i := 0; i < t.n; i++ {
		out.xs[i] = mustReal(next.Conjugate(t.xs[i].Flex()))
		out.zs[i] = mustReal(next.Conjugate(t.zs[i].Flex()))
	}

	return out
}

// Inverse returns the tableau of the inverse operation.
//
// The bit part inverts the 2n x 2n symplectic matrix over GF(2); each image
// sign is then fixed so that conjugating the result through t reproduces the
// original generator exactly.
func (t Tableau) Inverse() Tableau {
	n := t.n
	dim := 2 * n

	// Column g of a holds the bit vector of the image of generator g, with
	// generators and bit positions both ordered X_0..X_{n-1}, Z_0..Z_{n-1}.
	a := newBitMatrix(dim, dim)
	inv := newBitMatrix(dim, dim) // accumulates the inverse via Gauss-Jordan
	for g := 0; g < dim; g++ {
		img := t.generatorImage(g)
		for q := 0; q < n; q++ {
			a.set(q, g, img.X(q))
			a.set(n+q, g, img.Z(q))
		}
		inv.set(g, g, true)
	}

	for col := 0; col < dim; col++ {
		pivot := -1
		for row := col; row < dim; row++ {
			if a.get(row, col) {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			panic("tableau is not invertible")
		}
		a.swapRows(col, pivot)
		inv.swapRows(col, pivot)
		for row := 0; row < dim; row++ {
			if row != col && a.get(row, col) {
				a.xorRow(row, col)
				inv.xorRow(row, col)
			}
		}
	}

	out := Tableau{n: n, xs: make([]pauli.String, n), zs: make([]pauli.String, n)}
	for g := 0; g < dim; g++ {
		img := pauli.NewString(n)
		for q := 0; q < n; q++ {
			img.SetX(q, inv.get(q, g))
			img.SetZ(q, inv.get(n+q, g))
		}
		// Forward-conjugating the candidate must give back the generator,
		// up to sign; a -1 there means the candidate's sign is -1.
		check := t.Conjugate(img.Flex())
		switch check.Phase() {
		case 0:
		case 2:
			img.SetNegative(true)
		default:
			panic("inverse image has an imaginary phase")
		}
		if g < n {
			out.xs[g] = img
		} else {
			out.zs[g-n] = img
		}
	}

	return out
}

func (t Tableau) generatorImage(g int) pauli.String {
	if g < t.n {
		return t.xs[g]
	}

	return t.zs[g-t.n]
}

// Equal reports whether two tableaus have identical generator images.
func (t Tableau) Equal(other Tableau) bool {
	if t.n != other.n {
		return false
	}
	for i := 0; i < t.n; i++ {
		if !t.xs[i].Equal(other.xs[i]) || !t.zs[i].Equal(other.zs[i]) {
			return false
		}
	}

	return true
}

// String formats the tableau one generator image per line.
func (t Tableau) String() string {
	var b strings.Builder
	for i := 0; i < t.n; i++ {
		fmt.Fprintf(&b, "X%d -> %s\n", i, t.xs[i])
	}
	for i := 0; i < t.n; i++ {
		fmt.Fprintf(&b, "Z%d -> %s", i, t.zs[i])
		if i < t.n-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func mustReal(f pauli.Flex) pauli.String {
	p, err := f.ToString()
	if err != nil {
		panic(err)
	}

	return p
}

// bitMatrix is a dense GF(2) matrix with 64-bit packed rows.
type bitMatrix struct {
	cols int
	rows [][]uint64
}

func newBitMatrix(rows, cols int) *bitMatrix {
	m := &bitMatrix{cols: cols, rows: make([][]uint64, rows)}
	w := (cols + 63) / 64
	for i := range m.rows {
		m.rows[i] = make([]uint64, w)
	}

	return m
}

func (m *bitMatrix) get(r, c int) bool {
	return m.rows[r][c>>6]&(1<<(uint(c)&63)) != 0
}

func (m *bitMatrix) set(r, c int, v bool) {
	if v {
		m.rows[r][c>>6] |= 1 << (uint(c) & 63)
	} else {
		m.rows[r][c>>6] &^= 1 << (uint(c) & 63)
	}
}

func (m *bitMatrix) swapRows(a, b int) {
	m.rows[a], m.rows[b] = m.rows[b], m.rows[a]
}

func (m *bitMatrix) xorRow(dst, src int) {
	for i := range m.rows[dst] {
		m.rows[dst][i] ^= m.rows[src][i]
	}
}
