package convert

import (
	"fmt"
	"math"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/dem"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
)

// regionState tracks one detector or observable during the backward pass.
type regionState struct {
	meas map[int]bool // absolute measurement indices the target senses
	cur  pauli.Flex
}

// CircuitToDetectingRegions computes, for each requested detector and
// observable, the Pauli operator it senses at each requested TICK of the
// circuit.
//
// A forward pass resolves every DETECTOR and OBSERVABLE_INCLUDE declaration
// to absolute measurement indices. A backward pass then propagates each
// target's operator through the circuit: measurements fold their measured
// Pauli into the targets sensing them, resets absorb their basis, unitaries
// conjugate by the inverse gate, noise and annotations pass through, and
// crossing an included TICK snapshots every non-identity operator.
//
// A region that anticommutes with a measurement or reset is nondeterministic
// and aborts with ErrInvalidArgument, unless ignoreAnticommutationErrors is
// set, in which case the conflicting qubits are dropped from the region.
// Empty includedTargets or includedTicks mean "all". Targets that never
// produce a snapshot are absent from the result.
func (cv *Converter) CircuitToDetectingRegions(c *circuit.Circuit, includedTargets []dem.Target, includedTicks []int, ignoreAnticommutationErrors bool) (map[dem.Target]map[int]pauli.Flex, error) {
	n := c.NumQubits()

	measSets, tickTotal, measTotal, err := cv.resolveTargets(c)
	if err != nil {
		return nil, err
	}

	tracked := map[dem.Target]*regionState{}
	if len(includedTargets) == 0 {
		for t, set := range measSets {
			tracked[t] = &regionState{meas: set, cur: pauli.NewFlex(n)}
		}
	} else {
		for _, t := range includedTargets {
			set, ok := measSets[t]
			if !ok {
				continue
			}
			tracked[t] = &regionState{meas: set, cur: pauli.NewFlex(n)}
		}
	}

	var tickFilter map[int]bool
	if len(includedTicks) > 0 {
		tickFilter = make(map[int]bool, len(includedTicks))
		for _, t := range includedTicks {
			tickFilter[t] = true
		}
	}

	result := map[dem.Target]map[int]pauli.Flex{}
	measCounter := measTotal
	tickCounter := tickTotal

	for inst := range c.Reverse() {
		g, err := cv.lookupGate(inst.Gate)
		if err != nil {
			return nil, err
		}
		switch {
		case g.ID == gate.Tick:
			tickCounter--
			if tickFilter != nil && !tickFilter[tickCounter] {
				continue
			}
			for t, st := range tracked {
				if st.cur.IsIdentity() {
					continue
				}
				if result[t] == nil {
					result[t] = map[int]pauli.Flex{}
				}
				result[t][tickCounter] = st.cur.Copy()
			}
		case g.IsAnnotation():
		case g.IsMeasurement():
			measCounter, err = propagateMeasurement(tracked, inst, g, n, measCounter, ignoreAnticommutationErrors)
			if err != nil {
				return nil, err
			}
		case g.IsReset():
			if err := propagateReset(tracked, inst, g, ignoreAnticommutationErrors); err != nil {
				return nil, err
			}
		case g.IsNoise():
		case g.IsUnitary():
			qubits, err := qubitTargets(g, inst)
			if err != nil {
				return nil, err
			}
			conjugateRegionsBackward(tracked, g, qubits)
		default:
			return nil, fmt.Errorf("%w: cannot propagate through instruction: %s", errs.ErrUnsupportedOperation, inst)
		}
	}

	return result, nil
}

// resolveTargets performs the forward pass: it counts measurements and
// ticks, and maps every DETECTOR and OBSERVABLE_INCLUDE declaration to the
// set of absolute measurement indices it senses (duplicates toggle, since
// detectors are parities).
func (cv *Converter) resolveTargets(c *circuit.Circuit) (map[dem.Target]map[int]bool, int, int, error) {
	measSets := map[dem.Target]map[int]bool{}
	measSoFar := 0
	tickTotal := 0
	detectorCount := uint64(0)

	for inst := range c.All() {
		g, err := cv.lookupGate(inst.Gate)
		if err != nil {
			return nil, 0, 0, err
		}
		switch g.ID {
		case gate.Tick:
			tickTotal++
			continue
		case gate.Detector, gate.ObservableInclude:
			var target dem.Target
			if g.ID == gate.Detector {
				target = dem.Detector(detectorCount)
				detectorCount++
			} else {
				if len(inst.Args) != 1 || inst.Args[0] < 0 || inst.Args[0] != math.Trunc(inst.Args[0]) {
					return nil, 0, 0, fmt.Errorf("%w: observable index must be a non-negative integer: %s", errs.ErrInvalidArgument, inst)
				}
				target = dem.Observable(uint64(inst.Args[0]))
			}
			set := measSets[target]
			if set == nil {
				set = map[int]bool{}
				measSets[target] = set
			}
			for _, t := range inst.Targets {
				if t.Kind != circuit.TargetRec || t.Value < 1 {
					return nil, 0, 0, fmt.Errorf("%w: expected a measurement-record target: %s", errs.ErrInvalidArgument, inst)
				}
				idx := measSoFar - t.Value
				if idx < 0 {
					return nil, 0, 0, fmt.Errorf("%w: record lookback reaches before the circuit: %s", errs.ErrInvalidArgument, inst)
				}
				if set[idx] {
					delete(set, idx)
				} else {
					set[idx] = true
				}
			}
			continue
		}
		if g.IsMeasurement() {
			if g.ID == gate.MPP {
				measSoFar++
			} else {
				measSoFar += len(inst.Targets)
			}
		}
	}

	return measSets, tickTotal, measSoFar, nil
}

// measuredPauli returns the Pauli observable one measurement instruction
// result senses: the basis letter for plain measurements, or the whole
// product for MPP.
func measuredPauli(n int, g *gate.Gate, inst circuit.Instruction, target circuit.Target) (pauli.Flex, error) {
	obs := pauli.NewFlex(n)
	if g.ID == gate.MPP {
		for _, t := range inst.Targets {
			if !t.IsPauli() || t.Value < 0 {
				return pauli.Flex{}, fmt.Errorf("%w: expected Pauli-product targets: %s", errs.ErrInvalidArgument, inst)
			}
			obs.SetLetter(t.Value, t.PauliLetter())
		}

		return obs, nil
	}
	if target.Kind != circuit.TargetQubit || target.Value < 0 {
		return pauli.Flex{}, fmt.Errorf("%w: instruction has a non-qubit target: %s", errs.ErrInvalidArgument, inst)
	}
	switch g.ID {
	case gate.MX:
		obs.SetLetter(target.Value, pauli.LetterX)
	case gate.MY:
		obs.SetLetter(target.Value, pauli.LetterY)
	default:
		obs.SetLetter(target.Value, pauli.LetterZ)
	}

	return obs, nil
}

// propagateMeasurement walks one measurement instruction's results in
// reverse, folding each measured Pauli into the targets sensing it and then
// collapse-checking every tracked region against it. MR also absorbs its
// reset half first (the reset happens after the measurement in time).
func propagateMeasurement(tracked map[dem.Target]*regionState, inst circuit.Instruction, g *gate.Gate, n, measCounter int, ignore bool) (int, error) {
	if g.IsReset() {
		if err := propagateReset(tracked, inst, g, ignore); err != nil {
			return measCounter, err
		}
	}

	results := len(inst.Targets)
	if g.ID == gate.MPP {
		results = 1
	}
	for i := results - 1; i >= 0; i-- {
		measCounter--
		idx := measCounter

		var sample circuit.Target
		if g.ID != gate.MPP {
			sample = inst.Targets[i]
		}
		obs, err := measuredPauli(n, g, inst, sample)
		if err != nil {
			return measCounter, err
		}

		for _, st := range tracked {
			if st.meas[idx] {
				st.cur.MulAssign(obs)
			}
		}
		for _, st := range tracked {
			if st.cur.Commutes(obs) {
				continue
			}
			if !ignore {
				return measCounter, fmt.Errorf("%w: detecting region anticommutes with measurement: %s", errs.ErrInvalidArgument, inst)
			}
			for q := 0; q < st.cur.Len(); q++ {
				if obs.Letter(q) != pauli.LetterI {
					st.cur.ClearQubit(q)
				}
			}
		}
	}

	return measCounter, nil
}

// propagateReset absorbs each reset's basis letter out of every tracked
// region; a region holding an anticommuting letter on a reset qubit is
// nondeterministic.
func propagateReset(tracked map[dem.Target]*regionState, inst circuit.Instruction, g *gate.Gate, ignore bool) error {
	basis := pauli.LetterZ
	switch g.ID {
	case gate.RX:
		basis = pauli.LetterX
	case gate.RY:
		basis = pauli.LetterY
	}

	for _, t := range inst.Targets {
		if t.Kind != circuit.TargetQubit || t.Value < 0 {
			return fmt.Errorf("%w: instruction has a non-qubit target: %s", errs.ErrInvalidArgument, inst)
		}
		for _, st := range tracked {
			l := st.cur.Letter(t.Value)
			if l == pauli.LetterI {
				continue
			}
			if l != basis && !ignore {
				return fmt.Errorf("%w: detecting region anticommutes with reset: %s", errs.ErrInvalidArgument, inst)
			}
			st.cur.ClearQubit(t.Value)
		}
	}

	return nil
}

// conjugateRegionsBackward conjugates every tracked region by the inverse of
// a unitary instruction, walking its target groups in reverse.
func conjugateRegionsBackward(tracked map[dem.Target]*regionState, g *gate.Gate, qubits []int) {
	inv := g.Inverse
	if g.TargetsPairs() {
		for k := len(qubits) - 2; k >= 0; k -= 2 {
			for _, st := range tracked {
				conjugateByGate(&st.cur, inv, qubits[k], qubits[k+1])
			}
		}

		return
	}
	for k := len(qubits) - 1; k >= 0; k-- {
		for _, st := range tracked {
			conjugateByGate(&st.cur, inv, qubits[k], -1)
		}
	}
}
