package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/dem"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
)

func rec(k int) circuit.Target { return circuit.Rec(k) }

func TestCircuitToDetectingRegions_BellParity(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.AppendGate(gate.CX, 0, 1)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.AppendGate(gate.M, 1)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1), rec(2)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	d0 := regions[dem.Detector(0)]
	require.Len(t, d0, 1)
	require.Equal(t, "+ZZ", d0[0].String())
}

func TestCircuitToDetectingRegions_Observable(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.X, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.Append(circuit.Instruction{
		Gate:    gate.ObservableInclude,
		Targets: []circuit.Target{rec(1)},
		Args:    []float64{3},
	})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)

	l3 := regions[dem.Observable(3)]
	require.Len(t, l3, 1)
	require.Equal(t, "+Z", l3[0].String())
}

func TestCircuitToDetectingRegions_MultipleTicks(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.CX, 0, 1)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.AppendGate(gate.M, 1)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1), rec(2)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)

	d0 := regions[dem.Detector(0)]
	require.Len(t, d0, 2)
	require.Equal(t, "+_Z", d0[0].String()) // before the CX, qubit 0 is not yet involved
	require.Equal(t, "+ZZ", d0[1].String())
}

func TestCircuitToDetectingRegions_Filters(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.CX, 0, 1)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.AppendGate(gate.M, 1)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1), rec(2)}})

	t.Run("tick filter", func(t *testing.T) {
		regions, err := cv.CircuitToDetectingRegions(c, nil, []int{1}, false)
		require.NoError(t, err)
		d0 := regions[dem.Detector(0)]
		require.Len(t, d0, 1)
		require.Equal(t, "+ZZ", d0[1].String())
	})

	t.Run("target filter keeps requested targets", func(t *testing.T) {
		regions, err := cv.CircuitToDetectingRegions(c, []dem.Target{dem.Detector(0)}, nil, false)
		require.NoError(t, err)
		require.Len(t, regions, 1)
	})

	t.Run("unknown target yields no regions", func(t *testing.T) {
		regions, err := cv.CircuitToDetectingRegions(c, []dem.Target{dem.Detector(7)}, nil, false)
		require.NoError(t, err)
		require.Empty(t, regions)
	})
}

func TestCircuitToDetectingRegions_DuplicateRecordsToggle(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1), rec(1)}})

	// The same record twice cancels to an empty parity, so the detector
	// senses nothing and never snapshots.
	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)
	require.Empty(t, regions)
}

func TestCircuitToDetectingRegions_ResetAbsorbs(t *testing.T) {
	cv := NewDefaultConverter()

	// The reset pins qubit 0 to |0>, so the region ends at the reset and the
	// earlier X cannot reach it.
	c := circuit.New()
	c.AppendGate(gate.X, 0)
	c.AppendGate(gate.R, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.M, 0)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)
	d0 := regions[dem.Detector(0)]
	require.Equal(t, "+Z", d0[0].String())
}

func TestCircuitToDetectingRegions_AnticommutingReset(t *testing.T) {
	cv := NewDefaultConverter()

	// Measuring |+> in the Z basis is nondeterministic: the detecting region
	// propagates back onto the reset as an X and conflicts with its Z basis.
	c := circuit.New()
	c.AppendGate(gate.R, 0)
	c.AppendGate(gate.H, 0)
	c.AppendGate(gate.M, 0)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1)}})

	_, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = cv.CircuitToDetectingRegions(c, nil, nil, true)
	require.NoError(t, err)
}

func TestCircuitToDetectingRegions_MeasureReset(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.X, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.AppendGate(gate.MR, 0)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)
	d0 := regions[dem.Detector(0)]
	require.Equal(t, "+Z", d0[0].String())
}

func TestCircuitToDetectingRegions_NoiseAndUnitariesPassThrough(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.Append(circuit.Instruction{Gate: gate.Depolarize1, Targets: []circuit.Target{circuit.Qubit(0)}, Args: []float64{0.001}})
	c.AppendGate(gate.MX, 0)
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)

	// The noise channel does not disturb the region: at the tick the MX
	// measurement is still sensed as X.
	d0 := regions[dem.Detector(0)]
	require.Equal(t, "+X", d0[0].String())
}

func TestCircuitToDetectingRegions_MPP(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.Append(circuit.Instruction{Gate: gate.MPP, Targets: []circuit.Target{
		circuit.PauliTarget(pauli.LetterX, 0, false),
		circuit.PauliTarget(pauli.LetterZ, 1, false),
	}})
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(1)}})

	regions, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
	require.NoError(t, err)
	d0 := regions[dem.Detector(0)]
	require.Equal(t, "+XZ", d0[0].String())
}

func TestCircuitToDetectingRegions_DeclarationErrors(t *testing.T) {
	cv := NewDefaultConverter()

	t.Run("lookback before the circuit", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.M, 0)
		c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{rec(2)}})
		_, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("non-record detector target", func(t *testing.T) {
		c := circuit.New()
		c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{circuit.Qubit(0)}})
		_, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("fractional observable index", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.M, 0)
		c.Append(circuit.Instruction{
			Gate:    gate.ObservableInclude,
			Targets: []circuit.Target{rec(1)},
			Args:    []float64{0.5},
		})
		_, err := cv.CircuitToDetectingRegions(c, nil, nil, false)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}
