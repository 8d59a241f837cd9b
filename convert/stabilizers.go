package convert

import (
	"fmt"

	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// StabilizersToTableau completes a list of stabilizer generators into a full
// tableau whose Z-generator images are the accepted stabilizers in input
// order and whose X-generator images are derived destabilizers.
//
// Every stabilizer must span the same qubit count and commute with the
// others. A stabilizer dependent on earlier ones is dropped when
// allowRedundant is set and rejected otherwise; a dependency that multiplies
// to -identity is always rejected. When the accepted generators do not fix a
// unique state, allowUnderconstrained selects a deterministic canonical
// completion instead of an error. With invert the inverse tableau is
// returned.
func StabilizersToTableau(stabilizers []pauli.String, allowRedundant, allowUnderconstrained, invert bool) (tableau.Tableau, error) {
	n := 0
	if len(stabilizers) > 0 {
		n = stabilizers[0].Len()
	}
	for i, s := range stabilizers {
		if s.Len() != n {
			return tableau.Tableau{}, fmt.Errorf("%w: stabilizer %d spans %d qubits, expected %d", errs.ErrInvalidArgument, i, s.Len(), n)
		}
	}

	var accepted []pauli.String
	leaders := map[int]pauli.Flex{} // first symplectic bit -> reduced vector

	reduce := func(f *pauli.Flex) {
		for {
			b := firstSymplecticBit(*f)
			if b < 0 {
				return
			}
			e, ok := leaders[b]
			if !ok {
				return
			}
			f.MulAssign(e)
		}
	}

	for i, s := range stabilizers {
		for j, prev := range accepted {
			if !prev.Commutes(s) {
				return tableau.Tableau{}, fmt.Errorf("%w: stabilizer %d anticommutes with stabilizer %d", errs.ErrInvalidArgument, i, j)
			}
		}
		r := s.Flex()
		reduce(&r)
		b := firstSymplecticBit(r)
		if b < 0 {
			if r.Phase() != 0 {
				return tableau.Tableau{}, fmt.Errorf("%w: stabilizer %d contradicts earlier stabilizers (product is -identity)", errs.ErrInvalidArgument, i)
			}
			if !allowRedundant {
				return tableau.Tableau{}, fmt.Errorf("%w: stabilizer %d is redundant", errs.ErrInvalidArgument, i)
			}
			continue
		}
		leaders[b] = r
		accepted = append(accepted, s.Copy())
	}

	if len(accepted) < n {
		if !allowUnderconstrained {
			return tableau.Tableau{}, fmt.Errorf("%w: %d stabilizers do not constrain %d qubits", errs.ErrInvalidArgument, len(accepted), n)
		}
		for len(accepted) < n {
			fill := canonicalFill(accepted, n, leaders, reduce)
			b := firstSymplecticBit(fill)
			leaders[b] = fill
			p := pauli.NewString(n)
			for q := 0; q < n; q++ {
				p.SetX(q, fill.X(q))
				p.SetZ(q, fill.Z(q))
			}
			accepted = append(accepted, p)
		}
	}

	destabs := solveDestabilizers(accepted, n)
	xImages := make([]pauli.String, n)
	for i, d := range destabs {
		p := pauli.NewString(n)
		for q := 0; q < n; q++ {
			p.SetX(q, d.X(q))
			p.SetZ(q, d.Z(q))
		}
		xImages[i] = p
	}

	t, err := tableau.FromRows(xImages, accepted)
	if err != nil {
		return tableau.Tableau{}, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	if invert {
		t = t.Inverse()
	}

	return t, nil
}

// firstSymplecticBit returns the index of the first set bit of f in the
// symplectic bit order (X_0..X_{n-1} then Z_0..Z_{n-1}), or -1.
func firstSymplecticBit(f pauli.Flex) int {
	n := f.Len()
	for q := 0; q < n; q++ {
		if f.X(q) {
			return q
		}
	}
	for q := 0; q < n; q++ {
		if f.Z(q) {
			return n + q
		}
	}

	return -1
}

// canonicalFill returns the first element, in a fixed kernel-basis order, of
// the commutant of the accepted stabilizers that is independent of them. One
// always exists while the accepted count is below the qubit count.
func canonicalFill(accepted []pauli.String, n int, leaders map[int]pauli.Flex, reduce func(*pauli.Flex)) pauli.Flex {
	k := newGF2(len(accepted), 2*n)
	for i, s := range accepted {
		for q := 0; q < n; q++ {
			k.set(i, q, s.Z(q))
			k.set(i, n+q, s.X(q))
		}
	}
	pivots := k.rowReduce(2 * n)

	pivotCols := map[int]int{} // column -> pivot row
	for r, c := range pivots {
		pivotCols[c] = r
	}
	for c := 0; c < 2*n; c++ {
		if _, ok := pivotCols[c]; ok {
			continue
		}
		// Kernel basis vector for free column c.
		v := pauli.NewFlex(n)
		setSymplecticBit(&v, c, n)
		for r, p := range pivots {
			if k.get(r, c) {
				setSymplecticBit(&v, p, n)
			}
		}
		reduce(&v)
		if firstSymplecticBit(v) >= 0 {
			v.SetPhase(0)

			return v
		}
	}

	panic("accepted stabilizers already constrain every qubit")
}

// solveDestabilizers derives, for each accepted stabilizer, a destabilizer
// anticommuting with it and commuting with every other generator.
func solveDestabilizers(accepted []pauli.String, n int) []pauli.Flex {
	// Augmented system [K | I]: K row i is stabilizer i's symplectic form
	// ((z|x) layout, so a GF(2) dot product is a commutation parity).
	k := newGF2(n, 3*n)
	for i, s := range accepted {
		for q := 0; q < n; q++ {
			k.set(i, q, s.Z(q))
			k.set(i, n+q, s.X(q))
		}
		k.set(i, 2*n+i, true)
	}
	pivots := k.rowReduce(2 * n)

	destabs := make([]pauli.Flex, n)
	for i := 0; i < n; i++ {
		d := pauli.NewFlex(n)
		for r, p := range pivots {
			if k.get(r, 2*n+i) {
				setSymplecticBit(&d, p, n)
			}
		}
		destabs[i] = d
	}

	// Destabilizer pairs must commute; multiplying by stabilizer j flips the
	// parity against destabilizer j and nothing else.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !destabs[i].Commutes(destabs[j]) {
				destabs[i].MulString(accepted[j])
			}
		}
	}
	for i := range destabs {
		destabs[i].SetPhase(0)
	}

	return destabs
}

// setSymplecticBit sets bit b of f in the symplectic bit order.
func setSymplecticBit(f *pauli.Flex, b, n int) {
	if b < n {
		f.SetX(b, true)
	} else {
		f.SetZ(b-n, true)
	}
}

// gf2 is a dense GF(2) matrix with 64-bit packed rows.
type gf2 struct {
	rows [][]uint64
}

func newGF2(rows, cols int) *gf2 {
	m := &gf2{rows: make([][]uint64, rows)}
	w := (cols + 63) / 64
	for i := range m.rows {
		m.rows[i] = make([]uint64, w)
	}

	return m
}

func (m *gf2) get(r, c int) bool { return m.rows[r][c>>6]&(1<<(uint(c)&63)) != 0 }

func (m *gf2) set(r, c int, v bool) {
	if v {
		m.rows[r][c>>6] |= 1 << (uint(c) & 63)
	} else {
		m.rows[r][c>>6] &^= 1 << (uint(c) & 63)
	}
}

func (m *gf2) xorRow(dst, src int) {
	for i := range m.rows[dst] {
		m.rows[dst][i] ^= m.rows[src][i]
	}
}

// rowReduce brings the first solveCols columns to reduced row echelon form
// and returns the pivot column of each pivot row, in row order.
func (m *gf2) rowReduce(solveCols int) []int {
	var pivots []int
	row := 0
	for col := 0; col < solveCols && row < len(m.rows); col++ {
		sel := -1
		for r := row; r < len(m.rows); r++ {
			if m.get(r, col) {
				sel = r
				break
			}
		}
		if sel < 0 {
			continue
		}
		m.rows[row], m.rows[sel] = m.rows[sel], m.rows[row]
		for r := 0; r < len(m.rows); r++ {
			if r != row && m.get(r, col) {
				m.xorRow(r, row)
			}
		}
		pivots = append(pivots, col)
		row++
	}

	return pivots
}
