package convert

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"sort"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
)

// CircuitToOutputStateVector simulates a unitary circuit applied to the
// all-zero state and returns the 2^n output amplitudes, indexed per the
// requested endianness. Annotations are skipped; any other non-unitary
// instruction aborts with ErrUnsupportedOperation naming it.
func (cv *Converter) CircuitToOutputStateVector(c *circuit.Circuit, littleEndian bool) ([]complex128, error) {
	n := c.NumQubits()
	state := make([]complex128, 1<<n)
	state[0] = 1

	for inst := range c.All() {
		g, err := cv.lookupGate(inst.Gate)
		if err != nil {
			return nil, err
		}
		if g.IsAnnotation() {
			continue
		}
		if !g.IsUnitary() {
			return nil, fmt.Errorf("%w: not unitary: %s", errs.ErrUnsupportedOperation, inst)
		}
		qubits, err := qubitTargets(g, inst)
		if err != nil {
			return nil, err
		}
		applyInstruction(state, g, qubits)
	}

	if !littleEndian {
		state = bitReversedVector(state, n)
	}

	return state, nil
}

// StabilizerStateVectorToCircuit synthesizes a circuit mapping the all-zero
// state to the given amplitude vector (or the reverse mapping when inverted),
// up to a global phase.
//
// The vector is reduced to the all-zero state by recorded Clifford gates:
// X shifts move a maximal amplitude to index zero, CX gates collapse the
// GF(2) support lattice onto single qubits, CZ gates cancel pairwise sign
// correlations, and per-qubit rotations finish with an H layer. A vector
// that survives with unit amplitude at index zero is a stabilizer state and
// the gate record (inverted when preparing) is the answer; anything else
// aborts with ErrInvalidArgument.
func (cv *Converter) StabilizerStateVectorToCircuit(state []complex128, littleEndian, inverted bool) (*circuit.Circuit, error) {
	size := len(state)
	if size == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: amplitude count %d is not a power of two", errs.ErrInvalidArgument, size)
	}
	n := bits.TrailingZeros(uint(size))

	norm := 0.0
	for _, a := range state {
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	if math.Abs(norm-1) > Tolerance {
		return nil, fmt.Errorf("%w: state vector norm %v is not 1", errs.ErrInvalidArgument, norm)
	}

	work := make([]complex128, size)
	copy(work, state)
	if !littleEndian {
		work = bitReversedVector(work, n)
	}

	var rec []recordedOp
	apply1 := func(id gate.ID, q int) {
		g, _ := cv.reg.Get(id)
		applyMat2(work, g.Unitary, q)
		rec = append(rec, recordedOp{id: id, a: q, b: -1})
	}
	apply2 := func(id gate.ID, a, b int) {
		g, _ := cv.reg.Get(id)
		applyMat4(work, g.Unitary, a, b)
		rec = append(rec, recordedOp{id: id, a: a, b: b})
	}

	// Move a maximal amplitude to index zero.
	best := 0
	for i, a := range work {
		if cmplx.Abs(a) > cmplx.Abs(work[best]) {
			best = i
		}
	}
	maxAmp := cmplx.Abs(work[best])
	for q := 0; q < n; q++ {
		if best&(1<<q) != 0 {
			apply1(gate.X, q)
		}
	}

	// The support of a stabilizer state is a coset of a GF(2) subspace and
	// every supported amplitude has the same magnitude, so half the maximum
	// cleanly separates support from numeric noise.
	threshold := maxAmp / 2
	var support []int
	for i, a := range work {
		if cmplx.Abs(a) > threshold {
			support = append(support, i)
		}
	}

	leaders := map[int]int{} // leading bit -> reduced basis vector
	for _, v := range support {
		r := v
		for r != 0 {
			bv, ok := leaders[bits.Len(uint(r))-1]
			if !ok {
				break
			}
			r ^= bv
		}
		if r != 0 {
			leaders[bits.Len(uint(r))-1] = r
		}
	}
	if 1<<len(leaders) != len(support) {
		return nil, fmt.Errorf("%w: amplitude support is not a stabilizer lattice", errs.ErrInvalidArgument)
	}

	// Reduced row echelon form, so each leading bit appears in exactly one
	// basis vector; the CX collapse below then leaves other vectors alone.
	order := make([]int, 0, len(leaders))
	for h := range leaders {
		order = append(order, h)
	}
	sort.Ints(order)
	for _, h := range order {
		v := leaders[h]
		for _, h2 := range order {
			if h2 != h && v&(1<<h2) != 0 {
				v ^= leaders[h2]
			}
		}
		leaders[h] = v
	}

	for _, l := range order {
		v := leaders[l]
		for t := 0; t < n; t++ {
			if t != l && v&(1<<t) != 0 {
				apply2(gate.CX, l, t)
			}
		}
	}

	for i, l1 := range order {
		for _, l2 := range order[i+1:] {
			ratio := work[(1<<l1)|(1<<l2)] * work[0] / (work[1<<l1] * work[1<<l2])
			switch {
			case cmplx.Abs(ratio-1) < 0.5:
			case cmplx.Abs(ratio+1) < 0.5:
				apply2(gate.CZ, l1, l2)
			default:
				return nil, fmt.Errorf("%w: amplitude correlations are not stabilizer signs", errs.ErrInvalidArgument)
			}
		}
	}

	for _, l := range order {
		t := work[1<<l] / work[0]
		switch {
		case cmplx.Abs(t-1) < 0.5:
		case cmplx.Abs(t+1) < 0.5:
			apply1(gate.Z, l)
		case cmplx.Abs(t-1i) < 0.5:
			apply1(gate.SDag, l)
		case cmplx.Abs(t+1i) < 0.5:
			apply1(gate.S, l)
		default:
			return nil, fmt.Errorf("%w: amplitude ratio %v is not a fourth root of unity", errs.ErrInvalidArgument, t)
		}
		apply1(gate.H, l)
	}

	if math.Abs(cmplx.Abs(work[0])-1) > Tolerance {
		return nil, fmt.Errorf("%w: vector is not a stabilizer state", errs.ErrInvalidArgument)
	}

	out := circuit.New()
	if inverted {
		for _, op := range rec {
			appendRecorded(out, op.id, op.a, op.b)
		}
		padToWidth(out, n)

		return out, nil
	}
	for i := len(rec) - 1; i >= 0; i-- {
		g, _ := cv.reg.Get(rec[i].id)
		appendRecorded(out, g.Inverse, rec[i].a, rec[i].b)
	}
	padToWidth(out, n)

	return out, nil
}

func appendRecorded(c *circuit.Circuit, id gate.ID, a, b int) {
	if b < 0 {
		c.AppendGate(id, a)
	} else {
		c.AppendGate(id, a, b)
	}
}

// applyInstruction applies a unitary instruction to a state vector in the
// internal little-endian convention, walking targets singly or in pairs.
func applyInstruction(state []complex128, g *gate.Gate, qubits []int) {
	if g.TargetsPairs() {
		for k := 0; k+1 < len(qubits); k += 2 {
			applyMat4(state, g.Unitary, qubits[k], qubits[k+1])
		}

		return
	}
	for _, q := range qubits {
		applyMat2(state, g.Unitary, q)
	}
}

// applyMat2 applies a single-qubit matrix to qubit q of a state vector.
func applyMat2(state []complex128, m [][]complex128, q int) {
	mask := 1 << q
	for i := range state {
		if i&mask != 0 {
			continue
		}
		j := i | mask
		a, b := state[i], state[j]
		state[i] = m[0][0]*a + m[0][1]*b
		state[j] = m[1][0]*a + m[1][1]*b
	}
}

// applyMat4 applies a two-qubit matrix to qubits (a, b) of a state vector,
// with a addressing the matrix's high index bit.
func applyMat4(state []complex128, m [][]complex128, a, b int) {
	ma, mb := 1<<a, 1<<b
	for i := range state {
		if i&ma != 0 || i&mb != 0 {
			continue
		}
		s0, s1, s2, s3 := state[i], state[i|mb], state[i|ma], state[i|ma|mb]
		state[i] = m[0][0]*s0 + m[0][1]*s1 + m[0][2]*s2 + m[0][3]*s3
		state[i|mb] = m[1][0]*s0 + m[1][1]*s1 + m[1][2]*s2 + m[1][3]*s3
		state[i|ma] = m[2][0]*s0 + m[2][1]*s1 + m[2][2]*s2 + m[2][3]*s3
		state[i|ma|mb] = m[3][0]*s0 + m[3][1]*s1 + m[3][2]*s2 + m[3][3]*s3
	}
}
