package convert

import (
	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// tableauToCircuitGraph synthesizes a state-preparation circuit in graph-state
// form: an RX layer putting every qubit in |+>, a CZ layer wiring the graph
// edges, and a trailing single-qubit fixup layer.
//
// The stabilizer rows (the Z-generator images) are reduced to graph form by
// GF(2) row multiplication; reduction steps that require a basis change on a
// qubit are recorded and replayed, inverted and in reverse order, as the
// fixup layer. Only the stabilizer group of the prepared state is preserved,
// not the generator choice or the sign conventions of the input rows.
func (cv *Converter) tableauToCircuitGraph(t tableau.Tableau) *circuit.Circuit {
	n := t.NumQubits()
	rows := make([]pauli.Flex, n)
	for i := 0; i < n; i++ {
		rows[i] = t.ZOutput(i).Flex()
	}
	var fixups []recordedOp

	// Reduce the X block to the identity. When a pivot column holds no X the
	// rows must reach it through Z, so a Hadamard swaps the column's roles;
	// the inverse Hadamard becomes a fixup.
	for k := 0; k < n; k++ {
		pivot := findXPivot(rows, k)
		if pivot < 0 {
			for i := range rows {
				rows[i].ConjugateH(k)
			}
			fixups = append(fixups, recordedOp{id: gate.H, a: k, b: -1})
			pivot = findXPivot(rows, k)
		}
		if pivot < 0 {
			panic("stabilizer rows violate the commutation invariant")
		}
		rows[k], rows[pivot] = rows[pivot], rows[k]
		for j := range rows {
			if j != k && rows[j].X(k) {
				rows[j].MulAssign(rows[k])
			}
		}
	}

	// A Y on the diagonal reduces to X under S† conjugation; the other rows
	// hold at most a Z there and are unaffected.
	for i := 0; i < n; i++ {
		if rows[i].Z(i) {
			for j := range rows {
				rows[j].ConjugateSDag(i)
			}
			fixups = append(fixups, recordedOp{id: gate.S, a: i, b: -1})
		}
	}

	// A negated row reduces to positive under Z conjugation, which flips only
	// the row holding the X on that qubit.
	for i := 0; i < n; i++ {
		if rows[i].Phase() == 2 {
			for j := range rows {
				rows[j].ConjugateZ(i)
			}
			fixups = append(fixups, recordedOp{id: gate.Z, a: i, b: -1})
		}
	}

	out := circuit.New()
	all := make([]int, n)
	for q := range all {
		all[q] = q
	}
	out.AppendGate(gate.RX, all...)

	var edges []int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rows[i].Z(j) {
				edges = append(edges, i, j)
			}
		}
	}
	if len(edges) > 0 {
		out.AppendGate(gate.CZ, edges...)
	}

	for i := len(fixups) - 1; i >= 0; i-- {
		out.AppendGate(fixups[i].id, fixups[i].a)
	}

	return out
}

// findXPivot returns the first row at or below k with an X on qubit k.
func findXPivot(rows []pauli.Flex, k int) int {
	for r := k; r < len(rows); r++ {
		if rows[r].X(k) {
			return r
		}
	}

	return -1
}
