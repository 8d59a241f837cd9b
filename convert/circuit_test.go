package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/tableau"
)

func TestCircuitToTableau_SingleGates(t *testing.T) {
	cv := NewDefaultConverter()

	t.Run("H", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.H, 0)
		tab, err := cv.CircuitToTableau(c, false, false, false)
		require.NoError(t, err)
		require.Equal(t, "+Z", tab.XOutput(0).String())
		require.Equal(t, "+X", tab.ZOutput(0).String())
	})

	t.Run("CX", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.CX, 0, 1)
		tab, err := cv.CircuitToTableau(c, false, false, false)
		require.NoError(t, err)
		require.Equal(t, "+XX", tab.XOutput(0).String())
		require.Equal(t, "+_X", tab.XOutput(1).String())
		require.Equal(t, "+Z_", tab.ZOutput(0).String())
		require.Equal(t, "+ZZ", tab.ZOutput(1).String())
	})

	t.Run("S composes to Z", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.S, 0)
		c.AppendGate(gate.S, 0)
		tab, err := cv.CircuitToTableau(c, false, false, false)
		require.NoError(t, err)
		require.Equal(t, "-X", tab.XOutput(0).String())
		require.Equal(t, "+Z", tab.ZOutput(0).String())
	})
}

func TestCircuitToTableau_EmptyCircuit(t *testing.T) {
	cv := NewDefaultConverter()
	tab, err := cv.CircuitToTableau(circuit.New(), false, false, false)
	require.NoError(t, err)
	require.True(t, tab.Equal(tableau.Identity(0)))
}

func TestCircuitToTableau_SkipsAnnotations(t *testing.T) {
	cv := NewDefaultConverter()
	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.Append(circuit.Instruction{Gate: gate.Tick})
	c.Append(circuit.Instruction{Gate: gate.Detector, Targets: []circuit.Target{circuit.Rec(1)}})
	tab, err := cv.CircuitToTableau(c, false, false, false)
	require.NoError(t, err)
	require.Equal(t, "+Z", tab.XOutput(0).String())
}

func TestCircuitToTableau_NonUnitaryInstructions(t *testing.T) {
	cv := NewDefaultConverter()

	build := func(id gate.ID, args ...float64) *circuit.Circuit {
		c := circuit.New()
		c.AppendGate(gate.H, 0)
		c.Append(circuit.Instruction{Gate: id, Targets: []circuit.Target{circuit.Qubit(0)}, Args: args})
		return c
	}

	t.Run("noise rejected", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.XError, 0.1), false, false, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
		require.Contains(t, err.Error(), "X_ERROR")
	})
	t.Run("noise ignored", func(t *testing.T) {
		tab, err := cv.CircuitToTableau(build(gate.XError, 0.1), true, false, false)
		require.NoError(t, err)
		require.Equal(t, "+Z", tab.XOutput(0).String())
	})
	t.Run("measurement rejected", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.M), false, false, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	})
	t.Run("measurement ignored", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.M), false, true, false)
		require.NoError(t, err)
	})
	t.Run("reset rejected", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.R), false, false, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	})
	t.Run("reset ignored", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.R), false, false, true)
		require.NoError(t, err)
	})
	t.Run("measure-reset needs both flags", func(t *testing.T) {
		_, err := cv.CircuitToTableau(build(gate.MR), false, true, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
		_, err = cv.CircuitToTableau(build(gate.MR), false, true, true)
		require.NoError(t, err)
	})
}

func TestCircuitToTableau_RejectsOddPairedTargets(t *testing.T) {
	cv := NewDefaultConverter()
	c := circuit.New()
	c.AppendGate(gate.CX, 0, 1, 2)
	_, err := cv.CircuitToTableau(c, false, false, false)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

// The conjugation rules and the dense gate matrices describe the same
// operations; converting a one-gate circuit to a tableau and rebuilding its
// unitary must reproduce the registry matrix up to a global phase. The
// registry lays out matrices with the first target as the high-order basis
// bit, which matches the big-endian index convention.
func TestCircuitToTableau_AgreesWithGateMatrices(t *testing.T) {
	cv := NewDefaultConverter()
	reg := gate.Default()
	for id := gate.I; id <= gate.ISwapDag; id++ {
		g, ok := reg.Get(id)
		require.True(t, ok)
		t.Run(g.Name, func(t *testing.T) {
			c := circuit.New()
			if g.TargetsPairs() {
				c.AppendGate(id, 0, 1)
			} else {
				c.AppendGate(id, 0)
			}
			tab, err := cv.CircuitToTableau(c, false, false, false)
			require.NoError(t, err)
			u := cv.TableauToUnitary(tab, false)
			require.True(t, matricesEqualUpToPhase(u, g.Unitary),
				"tableau unitary of %s does not match its matrix", g.Name)
		})
	}
}

func TestTableauToCircuit_UnknownMethod(t *testing.T) {
	cv := NewDefaultConverter()
	_, err := cv.TableauToCircuit(tableau.Identity(1), "nope")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestTableauToCircuitElimination_RoundTrip(t *testing.T) {
	cv := NewDefaultConverter()

	tests := []struct {
		name  string
		build func(c *circuit.Circuit)
	}{
		{"single H", func(c *circuit.Circuit) {
			c.AppendGate(gate.H, 0)
		}},
		{"bell pair", func(c *circuit.Circuit) {
			c.AppendGate(gate.H, 0)
			c.AppendGate(gate.CX, 0, 1)
		}},
		{"mixed cliffords", func(c *circuit.Circuit) {
			c.AppendGate(gate.H, 0)
			c.AppendGate(gate.CX, 0, 1)
			c.AppendGate(gate.S, 1)
			c.AppendGate(gate.H, 2)
			c.AppendGate(gate.CZ, 1, 2)
		}},
		{"iswap and roots", func(c *circuit.Circuit) {
			c.AppendGate(gate.ISwap, 0, 1)
			c.AppendGate(gate.SqrtX, 0)
			c.AppendGate(gate.SqrtYDag, 1)
		}},
		{"pauli layer", func(c *circuit.Circuit) {
			c.AppendGate(gate.X, 0)
			c.AppendGate(gate.Y, 1)
			c.AppendGate(gate.Z, 2)
			c.AppendGate(gate.Swap, 0, 2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := circuit.New()
			tt.build(c)
			tab, err := cv.CircuitToTableau(c, false, false, false)
			require.NoError(t, err)

			synth, err := cv.TableauToCircuit(tab, MethodElimination)
			require.NoError(t, err)
			for inst := range synth.All() {
				require.Contains(t, []gate.ID{gate.H, gate.S, gate.CX, gate.I}, inst.Gate)
			}

			back, err := cv.CircuitToTableau(synth, false, false, false)
			require.NoError(t, err)
			require.True(t, back.Equal(tab), "round trip changed the tableau:\nwant:\n%v\ngot:\n%v", tab, back)
		})
	}
}

func TestTableauToCircuitElimination_NegativeSigns(t *testing.T) {
	cv := NewDefaultConverter()

	// The X-gate tableau: X -> X, Z -> -Z. The sign pass must reproduce it.
	c := circuit.New()
	c.AppendGate(gate.X, 0)
	tab, err := cv.CircuitToTableau(c, false, false, false)
	require.NoError(t, err)
	require.Equal(t, "-Z", tab.ZOutput(0).String())

	synth, err := cv.TableauToCircuit(tab, MethodElimination)
	require.NoError(t, err)
	back, err := cv.CircuitToTableau(synth, false, false, false)
	require.NoError(t, err)
	require.True(t, back.Equal(tab))
}

func TestTableauToCircuitElimination_IdleQubits(t *testing.T) {
	cv := NewDefaultConverter()

	t.Run("identity tableau keeps its width", func(t *testing.T) {
		synth, err := cv.TableauToCircuit(tableau.Identity(2), MethodElimination)
		require.NoError(t, err)
		require.Equal(t, 2, synth.NumQubits())

		back, err := cv.CircuitToTableau(synth, false, false, false)
		require.NoError(t, err)
		require.True(t, back.Equal(tableau.Identity(2)))
	})

	t.Run("trailing idle qubit keeps its width", func(t *testing.T) {
		// H on qubit 0 only; no elimination gate touches qubit 1, so the
		// synthesized circuit must carry an explicit placeholder for it.
		c := circuit.New()
		c.AppendGate(gate.H, 0)
		c.AppendGate(gate.I, 1)
		tab, err := cv.CircuitToTableau(c, false, false, false)
		require.NoError(t, err)

		synth, err := cv.TableauToCircuit(tab, MethodElimination)
		require.NoError(t, err)
		require.Equal(t, 2, synth.NumQubits())

		back, err := cv.CircuitToTableau(synth, false, false, false)
		require.NoError(t, err)
		require.True(t, back.Equal(tab))
	})
}

func TestUnitaryCircuitInverse(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.H, 0)
	c.AppendGate(gate.S, 0)
	c.AppendGate(gate.CX, 0, 1)

	inv, err := cv.UnitaryCircuitInverse(c)
	require.NoError(t, err)

	want := circuit.New()
	want.AppendGate(gate.CX, 0, 1)
	want.AppendGate(gate.SDag, 0)
	want.AppendGate(gate.H, 0)
	require.True(t, inv.Equal(want), "got:\n%v", inv)

	// Composing the circuit with its inverse gives the identity tableau.
	tab, err := cv.CircuitToTableau(c, false, false, false)
	require.NoError(t, err)
	tabInv, err := cv.CircuitToTableau(inv, false, false, false)
	require.NoError(t, err)
	require.True(t, tab.Then(tabInv).Equal(tableau.Identity(2)))
}

func TestUnitaryCircuitInverse_ReversesPairOrder(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.AppendGate(gate.CX, 0, 1, 2, 3)
	inv, err := cv.UnitaryCircuitInverse(c)
	require.NoError(t, err)

	want := circuit.New()
	want.AppendGate(gate.CX, 2, 3, 0, 1)
	require.True(t, inv.Equal(want), "got:\n%v", inv)
}

func TestUnitaryCircuitInverse_PreservesArgs(t *testing.T) {
	cv := NewDefaultConverter()

	c := circuit.New()
	c.Append(circuit.Instruction{Gate: gate.S, Targets: []circuit.Target{circuit.Qubit(0)}, Args: []float64{1.5}})
	inv, err := cv.UnitaryCircuitInverse(c)
	require.NoError(t, err)
	require.Equal(t, gate.SDag, inv.At(0).Gate)
	require.Equal(t, []float64{1.5}, inv.At(0).Args)
}

func TestUnitaryCircuitInverse_Errors(t *testing.T) {
	cv := NewDefaultConverter()

	t.Run("non-unitary", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.M, 0)
		_, err := cv.UnitaryCircuitInverse(c)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
		require.Contains(t, err.Error(), "not unitary")
	})

	t.Run("odd paired targets", func(t *testing.T) {
		c := circuit.New()
		c.AppendGate(gate.CZ, 0, 1, 2)
		_, err := cv.UnitaryCircuitInverse(c)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}
