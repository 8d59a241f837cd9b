// Package circuit provides the ordered instruction sequence consumed and
// produced by the conversion codecs.
//
// A Circuit is append-only while being built and treated as immutable
// afterwards. Codecs iterate it forward or in reverse through iter.Seq
// sequences and never retain references into a caller's circuit.
package circuit

import (
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/stabkit/gate"
)

// Instruction is one gate application: a gate id, an ordered target list, and
// optional numeric arguments (e.g. error probabilities).
type Instruction struct {
	Gate    gate.ID
	Targets []Target
	Args    []float64
}

// String formats the instruction in the conventional text form, e.g.
// "CX 0 1" or "X_ERROR(0.125) 2".
func (inst Instruction) String() string {
	var b strings.Builder
	b.WriteString(inst.Gate.String())
	if len(inst.Args) > 0 {
		b.WriteByte('(')
		for i, a := range inst.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", a)
		}
		b.WriteByte(')')
	}
	for _, t := range inst.Targets {
		b.WriteByte(' ')
		b.WriteString(t.String())
	}

	return b.String()
}

// Circuit is an ordered sequence of instructions.
type Circuit struct {
	instructions []Instruction
}

// New creates an empty circuit.
func New() *Circuit {
	return &Circuit{}
}

// Append adds an instruction to the end of the circuit.
func (c *Circuit) Append(inst Instruction) {
	c.instructions = append(c.instructions, inst)
}

// AppendGate adds an instruction built from a gate id and qubit targets.
func (c *Circuit) AppendGate(g gate.ID, qubits ...int) {
	targets := make([]Target, len(qubits))
	for i, q := range qubits {
		targets[i] = Qubit(q)
	}
	c.Append(Instruction{Gate: g, Targets: targets})
}

// Len returns the number of instructions.
func (c *Circuit) Len() int { return len(c.instructions) }

// At returns the instruction at index i.
func (c *Circuit) At(i int) Instruction { return c.instructions[i] }

// All iterates the instructions in order.
func (c *Circuit) All() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, inst := range c.instructions {
			if !yield(inst) {
				return
			}
		}
	}
}

// Reverse iterates the instructions from last to first.
func (c *Circuit) Reverse() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for i := len(c.instructions) - 1; i >= 0; i-- {
			if !yield(c.instructions[i]) {
				return
			}
		}
	}
}

// NumQubits returns one more than the highest qubit index any instruction
// touches, or zero for a circuit without qubit targets.
func (c *Circuit) NumQubits() int {
	n := 0
	for _, inst := range c.instructions {
		for _, t := range inst.Targets {
			if t.IsQubit() && t.Value+1 > n {
				n = t.Value + 1
			}
		}
	}

	return n
}

// Equal reports whether two circuits contain identical instruction sequences.
func (c *Circuit) Equal(other *Circuit) bool {
	if len(c.instructions) != len(other.instructions) {
		return false
	}
	for i := range c.instructions {
		a, b := c.instructions[i], other.instructions[i]
		if a.Gate != b.Gate || len(a.Targets) != len(b.Targets) || len(a.Args) != len(b.Args) {
			return false
		}
		for j := range a.Targets {
			if a.Targets[j] != b.Targets[j] {
				return false
			}
		}
		for j := range a.Args {
			if a.Args[j] != b.Args[j] {
				return false
			}
		}
	}

	return true
}

// String formats the circuit as one instruction per line.
func (c *Circuit) String() string {
	lines := make([]string, len(c.instructions))
	for i, inst := range c.instructions {
		lines[i] = inst.String()
	}

	return strings.Join(lines, "\n")
}
