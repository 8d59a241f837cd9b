package convert

import (
	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// TableauToCircuitMPP synthesizes a state-preparation circuit that measures
// each stabilizer of the tableau's state as a Pauli-product measurement.
//
// One MPP instruction is emitted per stabilizer row, with a negated row
// expressed by inverting the product's first factor. Unless skipSign is set,
// the measurements are followed by record-controlled Pauli corrections built
// from the matching destabilizer rows, which force every measurement outcome
// to the stabilizer's declared sign. With skipSign the corrections are
// omitted and the prepared state's signs depend on the measurement outcomes.
func (cv *Converter) TableauToCircuitMPP(t tableau.Tableau, skipSign bool) *circuit.Circuit {
	n := t.NumQubits()
	out := circuit.New()

	for k := 0; k < n; k++ {
		stab := t.ZOutput(k)
		var targets []circuit.Target
		first := true
		for q := 0; q < n; q++ {
			l := stab.Letter(q)
			if l == pauli.LetterI {
				continue
			}
			targets = append(targets, circuit.PauliTarget(l, q, first && stab.Negative()))
			first = false
		}
		out.Append(circuit.Instruction{Gate: gate.MPP, Targets: targets})
	}
	if skipSign {
		return out
	}

	// All stabilizer measurements commute, so the corrections can run after
	// the full measurement layer: the destabilizer of row k anticommutes with
	// that row only, flipping its sign without disturbing the others.
	for k := 0; k < n; k++ {
		destab := t.XOutput(k)
		rec := circuit.Rec(n - k)
		for q := 0; q < n; q++ {
			var id gate.ID
			switch destab.Letter(q) {
			case pauli.LetterX:
				id = gate.CX
			case pauli.LetterY:
				id = gate.CY
			case pauli.LetterZ:
				id = gate.CZ
			default:
				continue
			}
			out.Append(circuit.Instruction{Gate: id, Targets: []circuit.Target{rec, circuit.Qubit(q)}})
		}
	}

	return out
}
