package convert

import (
	"fmt"

	"github.com/arloliu/stabkit/circuit"
	"github.com/arloliu/stabkit/errs"
	"github.com/arloliu/stabkit/gate"
	"github.com/arloliu/stabkit/pauli"
	"github.com/arloliu/stabkit/tableau"
)

// Synthesis method names accepted by TableauToCircuit.
const (
	// MethodElimination cancels off-diagonal symplectic entries with Gaussian
	// elimination. Gate set: H, S, CX, plus a trailing I when no gate touches
	// the last qubit. O(n²) operations and depth, and the output reconstructs
	// the input tableau exactly.
	MethodElimination = "elimination"
	// MethodGraphState prepares the tableau's state with a graph-state
	// circuit: an RX layer, a CZ coupling layer, and a single-qubit rotation
	// layer. It preserves the stabilizer group but not the generator choice,
	// and its output may differ between versions.
	MethodGraphState = "graph_state"
	// MethodMPP prepares the tableau's state from multi-Pauli-product
	// measurements followed by record-controlled sign corrections.
	MethodMPP = "mpp"
)

// CircuitToTableau compiles a circuit's Clifford action into a tableau.
//
// Unitary instructions compose in order; annotations are skipped. A noise,
// measurement or reset instruction aborts with ErrUnsupportedOperation
// naming the instruction, unless the matching ignore flag is set, in which
// case it is skipped with no effect.
func (cv *Converter) CircuitToTableau(c *circuit.Circuit, ignoreNoise, ignoreMeasurement, ignoreReset bool) (tableau.Tableau, error) {
	n := c.NumQubits()
	rows := newGeneratorRows(n)

	for inst := range c.All() {
		g, err := cv.lookupGate(inst.Gate)
		if err != nil {
			return tableau.Tableau{}, err
		}
		switch {
		case g.IsAnnotation():
			continue
		case g.IsNoise():
			if !ignoreNoise {
				return tableau.Tableau{}, fmt.Errorf("%w: circuit contains noise: %s", errs.ErrUnsupportedOperation, inst)
			}
			continue
		case g.IsMeasurement() || g.IsReset():
			if g.IsMeasurement() && !ignoreMeasurement {
				return tableau.Tableau{}, fmt.Errorf("%w: circuit contains a measurement: %s", errs.ErrUnsupportedOperation, inst)
			}
			if g.IsReset() && !ignoreReset {
				return tableau.Tableau{}, fmt.Errorf("%w: circuit contains a reset: %s", errs.ErrUnsupportedOperation, inst)
			}
			continue
		}

		qubits, err := qubitTargets(g, inst)
		if err != nil {
			return tableau.Tableau{}, err
		}
		if !rows.conjugateAll(g, qubits) {
			return tableau.Tableau{}, fmt.Errorf("%w: instruction has no tableau action: %s", errs.ErrInvalidArgument, inst)
		}
	}

	return rows.toTableau()
}

// UnitaryCircuitInverse returns the exact algebraic inverse of a circuit of
// unitary instructions.
//
// Instructions are emitted in reverse order with each gate replaced by its
// registered inverse; paired-target instructions additionally reverse the
// order of their target pairs, and argument values are preserved. A
// non-unitary instruction aborts with ErrInvalidArgument naming it.
func (cv *Converter) UnitaryCircuitInverse(c *circuit.Circuit) (*circuit.Circuit, error) {
	out := circuit.New()
	for inst := range c.Reverse() {
		g, err := cv.lookupGate(inst.Gate)
		if err != nil {
			return nil, err
		}
		if !g.IsUnitary() {
			return nil, fmt.Errorf("%w: not unitary: %s", errs.ErrInvalidArgument, inst)
		}

		step := 1
		if g.TargetsPairs() {
			step = 2
			if len(inst.Targets)%2 != 0 {
				return nil, fmt.Errorf("%w: paired-target instruction has an odd target count: %s", errs.ErrInvalidArgument, inst)
			}
		}
		targets := make([]circuit.Target, 0, len(inst.Targets))
		for k := len(inst.Targets); k > 0; k -= step {
			targets = append(targets, inst.Targets[k-step:k]...)
		}
		args := make([]float64, len(inst.Args))
		copy(args, inst.Args)
		out.Append(circuit.Instruction{Gate: g.Inverse, Targets: targets, Args: args})
	}

	return out, nil
}

// TableauToCircuit synthesizes a circuit implementing the tableau's Clifford
// operation using the named method. Unknown method names abort with
// ErrInvalidArgument.
//
// Synthesis results are allowed to vary between calls or versions; only the
// tableau semantics of the output are contractual.
func (cv *Converter) TableauToCircuit(t tableau.Tableau, method string) (*circuit.Circuit, error) {
	switch method {
	case MethodElimination:
		return cv.tableauToCircuitElimination(t), nil
	case MethodGraphState:
		return cv.tableauToCircuitGraph(t), nil
	case MethodMPP:
		return cv.TableauToCircuitMPP(t, false), nil
	default:
		return nil, fmt.Errorf("%w: unknown synthesis method %q", errs.ErrInvalidArgument, method)
	}
}

// generatorRows tracks the images of all 2n generators while instructions
// are composed onto a working tableau.
type generatorRows struct {
	n     int
	xRows []pauli.Flex
	zRows []pauli.Flex
}

func newGeneratorRows(n int) *generatorRows {
	r := &generatorRows{n: n, xRows: make([]pauli.Flex, n), zRows: make([]pauli.Flex, n)}
	for i := 0; i < n; i++ {
		x := pauli.NewFlex(n)
		x.SetLetter(i, pauli.LetterX)
		z := pauli.NewFlex(n)
		z.SetLetter(i, pauli.LetterZ)
		r.xRows[i] = x
		r.zRows[i] = z
	}

	return r
}

func (r *generatorRows) conjugateAll(g *gate.Gate, qubits []int) bool {
	for i := 0; i < r.n; i++ {
		if !conjugateByInstruction(&r.xRows[i], g, qubits) {
			return false
		}
		if !conjugateByInstruction(&r.zRows[i], g, qubits) {
			return false
		}
	}

	return true
}

func (r *generatorRows) toTableau() (tableau.Tableau, error) {
	xs := make([]pauli.String, r.n)
	zs := make([]pauli.String, r.n)
	for i := 0; i < r.n; i++ {
		var err error
		if xs[i], err = r.xRows[i].ToString(); err != nil {
			return tableau.Tableau{}, err
		}
		if zs[i], err = r.zRows[i].ToString(); err != nil {
			return tableau.Tableau{}, err
		}
	}

	return tableau.FromRows(xs, zs)
}

// recordedOp is one gate recorded while reducing a working tableau.
type recordedOp struct {
	id   gate.ID
	a, b int // b < 0 for single-qubit gates
}

// eliminator reduces a working copy of a tableau to the identity, recording
// the gates it applies.
type eliminator struct {
	*generatorRows
	ops []recordedOp
}

func (e *eliminator) apply1(id gate.ID, q int) {
	for i := 0; i < e.n; i++ {
		conjugateByGate(&e.xRows[i], id, q, -1)
		conjugateByGate(&e.zRows[i], id, q, -1)
	}
	e.ops = append(e.ops, recordedOp{id: id, a: q, b: -1})
}

func (e *eliminator) apply2(id gate.ID, a, b int) {
	for i := 0; i < e.n; i++ {
		conjugateByGate(&e.xRows[i], id, a, b)
		conjugateByGate(&e.zRows[i], id, a, b)
	}
	e.ops = append(e.ops, recordedOp{id: id, a: a, b: b})
}

// tableauToCircuitElimination synthesizes a circuit using only H, S and CX.
//
// The working tableau starts as a copy of the input, and recorded gates are
// composed onto it until it becomes the identity; the output circuit is then
// the reversed, inverted gate record (S inverts as three S applications).
// Columns are cleared in ascending qubit order, which makes the output
// deterministic for a fixed input.
func (cv *Converter) tableauToCircuitElimination(t tableau.Tableau) *circuit.Circuit {
	n := t.NumQubits()
	e := &eliminator{generatorRows: newGeneratorRows(n)}
	for i := 0; i < n; i++ {
		e.xRows[i] = t.XOutput(i).Flex()
		e.zRows[i] = t.ZOutput(i).Flex()
	}

	for k := 0; k < n; k++ {
		// Bring the X_k image to X_k. Its support is confined to columns
		// >= k because earlier generators are already in canonical form.
		pivot := -1
		for q := k; q < n; q++ {
			if e.xRows[k].X(q) {
				pivot = q
				break
			}
		}
		if pivot < 0 {
			for q := k; q < n; q++ {
				if e.xRows[k].Z(q) {
					e.apply1(gate.H, q)
					pivot = q
					break
				}
			}
		}
		if pivot < 0 {
			panic("tableau violates the commutation invariant")
		}
		if pivot != k {
			e.apply2(gate.CX, k, pivot)
			e.apply2(gate.CX, pivot, k)
			e.apply2(gate.CX, k, pivot)
		}
		for q := k + 1; q < n; q++ {
			if e.xRows[k].X(q) {
				e.apply2(gate.CX, k, q)
			}
		}
		if e.xRows[k].Z(k) {
			e.apply1(gate.S, k)
		}
		for q := k + 1; q < n; q++ {
			if e.xRows[k].Z(q) {
				e.apply1(gate.H, q)
				e.apply2(gate.CX, k, q)
			}
		}

		// Bring the Z_k image to Z_k without disturbing the X_k image:
		// convert trailing letters to Z, fix a Y on the diagonal with the
		// H·S·H conjugation (which fixes X_k), then cancel trailing Zs.
		for q := k + 1; q < n; q++ {
			x, z := e.zRows[k].X(q), e.zRows[k].Z(q)
			switch {
			case x && z:
				e.apply1(gate.S, q)
				e.apply1(gate.H, q)
			case x:
				e.apply1(gate.H, q)
			}
		}
		if e.zRows[k].X(k) {
			e.apply1(gate.H, k)
			e.apply1(gate.S, k)
			e.apply1(gate.H, k)
		}
		for q := k + 1; q < n; q++ {
			if e.zRows[k].Z(q) {
				e.apply2(gate.CX, q, k)
			}
		}
	}

	// Sign pass: S·S acts as Z and flips a negated X image; H·S·S·H acts as
	// X and flips a negated Z image.
	for i := 0; i < n; i++ {
		if e.xRows[i].Phase() == 2 {
			e.apply1(gate.S, i)
			e.apply1(gate.S, i)
		}
		if e.zRows[i].Phase() == 2 {
			e.apply1(gate.H, i)
			e.apply1(gate.S, i)
			e.apply1(gate.S, i)
			e.apply1(gate.H, i)
		}
	}

	out := circuit.New()
	for i := len(e.ops) - 1; i >= 0; i-- {
		op := e.ops[i]
		switch {
		case op.id == gate.S:
			out.AppendGate(gate.S, op.a)
			out.AppendGate(gate.S, op.a)
			out.AppendGate(gate.S, op.a)
		case op.b < 0:
			out.AppendGate(op.id, op.a)
		default:
			out.AppendGate(op.id, op.a, op.b)
		}
	}
	padToWidth(out, n)

	return out
}

// padToWidth appends an I on the last qubit when the emitted gates leave
// trailing qubits untouched, so the circuit's qubit count round-trips the
// input width.
func padToWidth(c *circuit.Circuit, n int) {
	if n > 0 && c.NumQubits() < n {
		c.AppendGate(gate.I, n-1)
	}
}
