// Package stabkit converts between equivalent representations of stabilizer
// (Clifford-group) quantum operations and states: symplectic tableaus,
// generator circuits, dense unitary matrices and basis-state amplitude
// vectors.
//
// # Core Features
//
//   - Circuit <-> tableau conversion with three synthesis strategies
//     (elimination, graph state, Pauli-product measurement)
//   - Tableau <-> unitary matrix conversion with Clifford validation
//   - Stabilizer state vector <-> preparation circuit conversion
//   - Completion of partial stabilizer lists into full tableaus
//   - Error-channel parameter conversions (independent/disjoint,
//     depolarizing per-channel)
//   - Detecting-region analysis for error-correction circuits
//   - Compact checksummed tableau serialization with optional compression
//     (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Deriving a tableau from a circuit and synthesizing an equivalent circuit:
//
//	import "github.com/arloliu/stabkit"
//
//	c := circuit.New()
//	c.AppendGate(gate.H, 0)
//	c.AppendGate(gate.CX, 0, 1)
//
//	t, _ := stabkit.CircuitToTableau(c, false, false, false)
//	again, _ := stabkit.TableauToCircuit(t, stabkit.MethodElimination)
//
// Serializing a tableau:
//
//	data, _ := stabkit.EncodeTableau(t)
//	back, _ := stabkit.DecodeTableau(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the convert and
// blob packages, simplifying the most common use cases. For fine-grained
// control (custom gate registries, encoder options), use those packages
// directly.
package stabkit

import (
	"github.com/arloliu/stabkit/blob"
	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/convert"
	"github.com/arloliu/stabkit/dem"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// Synthesis method names accepted by TableauToCircuit.
const (
	MethodElimination = convert.MethodElimination
	MethodGraphState  = convert.MethodGraphState
	MethodMPP         = convert.MethodMPP
)

var defaultConverter = convert.NewDefaultConverter()

// CircuitToTableau compiles a circuit's Clifford action into a tableau using
// the built-in gate registry. See convert.Converter.CircuitToTableau.
func CircuitToTableau(c *circuit.Circuit, ignoreNoise, ignoreMeasurement, ignoreReset bool) (tableau.Tableau, error) {
	return defaultConverter.CircuitToTableau(c, ignoreNoise, ignoreMeasurement, ignoreReset)
}

// TableauToCircuit synthesizes a circuit implementing the tableau using the
// named method. See convert.Converter.TableauToCircuit.
func TableauToCircuit(t tableau.Tableau, method string) (*circuit.Circuit, error) {
	return defaultConverter.TableauToCircuit(t, method)
}

// UnitaryCircuitInverse returns the exact algebraic inverse of a circuit of
// unitary instructions. See convert.Converter.UnitaryCircuitInverse.
func UnitaryCircuitInverse(c *circuit.Circuit) (*circuit.Circuit, error) {
	return defaultConverter.UnitaryCircuitInverse(c)
}

// TableauToUnitary builds the dense unitary matrix of the tableau's
// operation. See convert.Converter.TableauToUnitary.
func TableauToUnitary(t tableau.Tableau, littleEndian bool) [][]complex128 {
	return defaultConverter.TableauToUnitary(t, littleEndian)
}

// UnitaryToTableau infers the tableau of a Clifford unitary matrix.
// See convert.Converter.UnitaryToTableau.
func UnitaryToTableau(u [][]complex128, littleEndian bool) (tableau.Tableau, error) {
	return defaultConverter.UnitaryToTableau(u, littleEndian)
}

// CircuitToOutputStateVector simulates a unitary circuit applied to the
// all-zero state. See convert.Converter.CircuitToOutputStateVector.
func CircuitToOutputStateVector(c *circuit.Circuit, littleEndian bool) ([]complex128, error) {
	return defaultConverter.CircuitToOutputStateVector(c, littleEndian)
}

// StabilizerStateVectorToCircuit synthesizes a circuit preparing (or, when
// inverted, unpreparing) the given stabilizer state.
// See convert.Converter.StabilizerStateVectorToCircuit.
func StabilizerStateVectorToCircuit(state []complex128, littleEndian, inverted bool) (*circuit.Circuit, error) {
	return defaultConverter.StabilizerStateVectorToCircuit(state, littleEndian, inverted)
}

// StabilizersToTableau completes a stabilizer generator list into a full
// tableau. See convert.StabilizersToTableau.
func StabilizersToTableau(stabilizers []pauli.String, allowRedundant, allowUnderconstrained, invert bool) (tableau.Tableau, error) {
	return convert.StabilizersToTableau(stabilizers, allowRedundant, allowUnderconstrained, invert)
}

// CircuitToDetectingRegions computes the Pauli operator each detector and
// observable senses at each circuit tick.
// See convert.Converter.CircuitToDetectingRegions.
func CircuitToDetectingRegions(c *circuit.Circuit, includedTargets []dem.Target, includedTicks []int, ignoreAnticommutationErrors bool) (map[dem.Target]map[int]pauli.Flex, error) {
	return defaultConverter.CircuitToDetectingRegions(c, includedTargets, includedTicks, ignoreAnticommutationErrors)
}

// EncodeTableau serializes a tableau with the default encoder configuration.
func EncodeTableau(t tableau.Tableau) ([]byte, error) {
	enc, err := blob.NewEncoder()
	if err != nil {
		return nil, err
	}

	return enc.Encode(t)
}

// DecodeTableau deserializes a tableau blob of any encoder configuration.
func DecodeTableau(data []byte) (tableau.Tableau, error) {
	return blob.Decode(data)
}
