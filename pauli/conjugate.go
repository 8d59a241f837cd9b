package pauli

// Clifford conjugation primitives. Each method replaces f with G f G† for the
// named gate G. Since conjugation by a unitary preserves Hermiticity, the
// phase only ever flips by -1 (phase exponent += 2), never picks up an i.
//
// Composite Clifford gates decompose into these primitives; see the convert
// package for the gate-id dispatch.

// ConjugateX conjugates f by the X gate on qubit q (Z -> -Z, Y -> -Y).
func (f *Flex) ConjugateX(q int) {
	if f.Z(q) {
		f.MulPhase(2)
	}
}

// ConjugateY conjugates f by the Y gate on qubit q (X -> -X, Z -> -Z).
func (f *Flex) ConjugateY(q int) {
	if f.X(q) != f.Z(q) {
		f.MulPhase(2)
	}
}

// ConjugateZ conjugates f by the Z gate on qubit q (X -> -X, Y -> -Y).
func (f *Flex) ConjugateZ(q int) {
	if f.X(q) {
		f.MulPhase(2)
	}
}

// ConjugateH conjugates f by the Hadamard gate on qubit q (X <-> Z, Y -> -Y).
func (f *Flex) ConjugateH(q int) {
	x, z := f.X(q), f.Z(q)
	if x && z {
		f.MulPhase(2)
	}
	f.SetX(q, z)
	f.SetZ(q, x)
}

// ConjugateS conjugates f by the S gate on qubit q (X -> Y, Y -> -X).
func (f *Flex) ConjugateS(q int) {
	x, z := f.X(q), f.Z(q)
	if x && z {
		f.MulPhase(2)
	}
	f.SetZ(q, z != x)
}

// ConjugateSDag conjugates f by the S† gate on qubit q (X -> -Y, Y -> X).
func (f *Flex) ConjugateSDag(q int) {
	x, z := f.X(q), f.Z(q)
	if x && !z {
		f.MulPhase(2)
	}
	f.SetZ(q, z != x)
}

// ConjugateCX conjugates f by the controlled-X gate with control c, target t.
func (f *Flex) ConjugateCX(c, t int) {
	xc, zc := f.X(c), f.Z(c)
	xt, zt := f.X(t), f.Z(t)
	if xc && zt && xt == zc {
		f.MulPhase(2)
	}
	f.SetX(t, xt != xc)
	f.SetZ(c, zc != zt)
}

// ConjugateCZ conjugates f by the controlled-Z gate on qubits a and b.
func (f *Flex) ConjugateCZ(a, b int) {
	xa, za := f.X(a), f.Z(a)
	xb, zb := f.X(b), f.Z(b)
	if xa && xb && za != zb {
		f.MulPhase(2)
	}
	f.SetZ(b, zb != xa)
	f.SetZ(a, za != xb)
}

// ConjugateSwap conjugates f by the SWAP gate on qubits a and b.
func (f *Flex) ConjugateSwap(a, b int) {
	xa, za := f.X(a), f.Z(a)
	xb, zb := f.X(b), f.Z(b)
	f.SetX(a, xb)
	f.SetZ(a, zb)
	f.SetX(b, xa)
	f.SetZ(b, za)
}
