// Package convert implements the conversion and synthesis engine between
// equivalent representations of Clifford operations and stabilizer states:
// symplectic tableaus, generator circuits, dense unitary matrices and
// basis-state amplitude vectors. It also converts between error-channel
// parameterizations and computes detecting regions for error-correction
// analysis.
//
// All operations are synchronous and pure: inputs are read-only borrows and
// every result is freshly owned. Failures follow the errs taxonomy:
// errs.ErrInvalidArgument for malformed or inconsistent input and
// errs.ErrUnsupportedOperation for circuits carrying non-unitary
// instructions where only unitary ones are allowed.
package convert

import (
	"fmt"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
)

// Tolerance is the absolute per-entry tolerance used by floating-point
// verification after global-phase alignment.
const Tolerance = 1e-6

// Converter binds the conversion codecs to a gate-metadata registry.
//
// A Converter is stateless apart from the injected registry and is safe for
// concurrent use.
type Converter struct {
	reg *gate.Registry
}

// NewConverter creates a converter using the given registry.
func NewConverter(reg *gate.Registry) *Converter {
	return &Converter{reg: reg}
}

// NewDefaultConverter creates a converter bound to the built-in registry.
func NewDefaultConverter() *Converter {
	return &Converter{reg: gate.Default()}
}

// lookupGate resolves a gate id, mapping unknown ids to ErrInvalidArgument.
func (cv *Converter) lookupGate(id gate.ID) (*gate.Gate, error) {
	g, ok := cv.reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown gate id %d", errs.ErrInvalidArgument, id)
	}

	return g, nil
}

// qubitTargets extracts plain qubit indices from an instruction, validating
// the target kinds and, for paired-target gates, the target count parity.
func qubitTargets(g *gate.Gate, inst circuit.Instruction) ([]int, error) {
	qubits := make([]int, 0, len(inst.Targets))
	for _, t := range inst.Targets {
		if t.Kind != circuit.TargetQubit || t.Value < 0 {
			return nil, fmt.Errorf("%w: instruction has a non-qubit target: %s", errs.ErrInvalidArgument, inst)
		}
		qubits = append(qubits, t.Value)
	}
	if g.TargetsPairs() && len(qubits)%2 != 0 {
		return nil, fmt.Errorf("%w: paired-target instruction has an odd target count: %s", errs.ErrInvalidArgument, inst)
	}

	return qubits, nil
}
