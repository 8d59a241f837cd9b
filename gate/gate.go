// Package gate defines the gate-metadata registry consumed by the conversion
// codecs.
//
// The registry is a read-only lookup from gate id to name, classification
// flags, the id of the algebraic inverse, and (for unitary gates) the dense
// matrix. It is constructed once and injected into codecs explicitly rather
// than accessed through hidden global state, so it is safe for concurrent use
// and trivial to substitute in tests.
package gate

import "fmt"

// ID identifies a gate.
type ID uint8

// Gate ids. The unitary ids cover the single- and two-qubit Clifford gates
// the synthesis methods emit; the rest cover measurement, reset, noise and
// annotation instructions that circuits may carry.
const (
	I ID = iota
	X
	Y
	Z
	H
	S
	SDag
	SqrtX
	SqrtXDag
	SqrtY
	SqrtYDag
	CX
	CY
	CZ
	Swap
	ISwap
	ISwapDag
	M
	MX
	MY
	MR
	R
	RX
	RY
	MPP
	XError
	YError
	ZError
	Depolarize1
	Depolarize2
	Tick
	Detector
	ObservableInclude

	numGates
)

// Flags classify a gate.
type Flags uint16

const (
	// FlagUnitary marks gates with a unitary action and a registered inverse.
	FlagUnitary Flags = 1 << iota
	// FlagPairs marks gates whose targets are consumed two at a time.
	FlagPairs
	// FlagMeasurement marks gates that produce measurement records.
	FlagMeasurement
	// FlagReset marks gates that deterministically reinitialize qubits.
	FlagReset
	// FlagNoise marks probabilistic error channels.
	FlagNoise
	// FlagAnnotation marks instructions with no effect on the quantum state.
	FlagAnnotation
	// FlagPauliTargets marks gates that consume Pauli-product targets.
	FlagPauliTargets
)

// Gate is the immutable metadata for one gate id.
type Gate struct {
	ID      ID
	Name    string
	Flags   Flags
	Inverse ID
	// Unitary is the dense matrix of a unitary gate (2x2 or 4x4, with the
	// first target as the high-order basis bit), nil otherwise.
	Unitary [][]complex128
}

// IsUnitary reports whether the gate has a unitary action.
func (g *Gate) IsUnitary() bool { return g.Flags&FlagUnitary != 0 }

// TargetsPairs reports whether the gate consumes targets two at a time.
func (g *Gate) TargetsPairs() bool { return g.Flags&FlagPairs != 0 }

// IsMeasurement reports whether the gate produces measurement records.
func (g *Gate) IsMeasurement() bool { return g.Flags&FlagMeasurement != 0 }

// IsReset reports whether the gate resets qubits.
func (g *Gate) IsReset() bool { return g.Flags&FlagReset != 0 }

// IsNoise reports whether the gate is a probabilistic error channel.
func (g *Gate) IsNoise() bool { return g.Flags&FlagNoise != 0 }

// IsAnnotation reports whether the gate has no effect on the quantum state.
func (g *Gate) IsAnnotation() bool { return g.Flags&FlagAnnotation != 0 }

// String returns the gate name.
func (g *Gate) String() string { return g.Name }

// String returns the registered name of the id, or a numeric placeholder for
// ids outside the registry.
func (id ID) String() string {
	if int(id) < len(gateNames) {
		return gateNames[id]
	}

	return fmt.Sprintf("GATE_%d", uint8(id))
}

var gateNames = [numGates]string{
	I:                 "I",
	X:                 "X",
	Y:                 "Y",
	Z:                 "Z",
	H:                 "H",
	S:                 "S",
	SDag:              "S_DAG",
	SqrtX:             "SQRT_X",
	SqrtXDag:          "SQRT_X_DAG",
	SqrtY:             "SQRT_Y",
	SqrtYDag:          "SQRT_Y_DAG",
	CX:                "CX",
	CY:                "CY",
	CZ:                "CZ",
	Swap:              "SWAP",
	ISwap:             "ISWAP",
	ISwapDag:          "ISWAP_DAG",
	M:                 "M",
	MX:                "MX",
	MY:                "MY",
	MR:                "MR",
	R:                 "R",
	RX:                "RX",
	RY:                "RY",
	MPP:               "MPP",
	XError:            "X_ERROR",
	YError:            "Y_ERROR",
	ZError:            "Z_ERROR",
	Depolarize1:       "DEPOLARIZE1",
	Depolarize2:       "DEPOLARIZE2",
	Tick:              "TICK",
	Detector:          "DETECTOR",
	ObservableInclude: "OBSERVABLE_INCLUDE",
}
