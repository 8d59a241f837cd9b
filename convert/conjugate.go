package convert

import (
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
)

// conjugateByGate replaces f with G f G† for the unitary gate id applied to
// one qubit (q1 < 0) or one qubit pair. Composite gates decompose into the
// pauli package's conjugation primitives; for a product U = A·B the
// innermost factor's conjugation applies first.
//
// Returns false for ids without a unitary action.
func conjugateByGate(f *pauli.Flex, id gate.ID, q0, q1 int) bool {
	switch id {
	case gate.I:
	case gate.X:
		f.ConjugateX(q0)
	case gate.Y:
		f.ConjugateY(q0)
	case gate.Z:
		f.ConjugateZ(q0)
	case gate.H:
		f.ConjugateH(q0)
	case gate.S:
		f.ConjugateS(q0)
	case gate.SDag:
		f.ConjugateSDag(q0)
	case gate.SqrtX: // SQRT_X = H·S·H
		f.ConjugateH(q0)
		f.ConjugateS(q0)
		f.ConjugateH(q0)
	case gate.SqrtXDag: // SQRT_X_DAG = H·S†·H
		f.ConjugateH(q0)
		f.ConjugateSDag(q0)
		f.ConjugateH(q0)
	case gate.SqrtY: // SQRT_Y = H·Z up to global phase
		f.ConjugateZ(q0)
		f.ConjugateH(q0)
	case gate.SqrtYDag: // SQRT_Y_DAG = Z·H up to global phase
		f.ConjugateH(q0)
		f.ConjugateZ(q0)
	case gate.CX:
		f.ConjugateCX(q0, q1)
	case gate.CY: // CY = S_t·CX·S†_t
		f.ConjugateSDag(q1)
		f.ConjugateCX(q0, q1)
		f.ConjugateS(q1)
	case gate.CZ:
		f.ConjugateCZ(q0, q1)
	case gate.Swap:
		f.ConjugateSwap(q0, q1)
	case gate.ISwap: // ISWAP = SWAP·CZ·(S⊗S)
		f.ConjugateS(q1)
		f.ConjugateS(q0)
		f.ConjugateCZ(q0, q1)
		f.ConjugateSwap(q0, q1)
	case gate.ISwapDag: // ISWAP_DAG = (S†⊗S†)·CZ·SWAP
		f.ConjugateSwap(q0, q1)
		f.ConjugateCZ(q0, q1)
		f.ConjugateSDag(q0)
		f.ConjugateSDag(q1)
	default:
		return false
	}

	return true
}

// conjugateByInstruction conjugates f through every application of a unitary
// instruction, walking targets singly or in pairs per the gate metadata.
func conjugateByInstruction(f *pauli.Flex, g *gate.Gate, qubits []int) bool {
	if g.TargetsPairs() {
		for k := 0; k+1 < len(qubits); k += 2 {
			if !conjugateByGate(f, g.ID, qubits[k], qubits[k+1]) {
				return false
			}
		}

		return true
	}
	for _, q := range qubits {
		if !conjugateByGate(f, g.ID, q, -1) {
			return false
		}
	}

	return true
}
