package convert

import "math"

// XYZ holds one probability per single-qubit Pauli error type.
type XYZ struct {
	X, Y, Z float64
}

const (
	// disjointSolverSteps bounds the fixed-point iteration inverting the
	// independent-to-disjoint map, which has no closed form.
	disjointSolverSteps = 50
	// disjointSolverResidual is the acceptance residual of that iteration.
	disjointSolverResidual = 1e-10
)

// IndependentToDisjointXYZ converts independently-applied X, Y and Z error
// probabilities into the equivalent mutually-exclusive distribution over
// {X, Y, Z} outcomes.
//
// An X outcome occurs when X fires alone or when Y and Z fire together and
// cancel into X; the other channels follow cyclically.
func IndependentToDisjointXYZ(p XYZ) XYZ {
	return XYZ{
		X: p.X*(1-p.Y)*(1-p.Z) + (1-p.X)*p.Y*p.Z,
		Y: p.Y*(1-p.Z)*(1-p.X) + (1-p.Y)*p.Z*p.X,
		Z: p.Z*(1-p.X)*(1-p.Y) + (1-p.Z)*p.X*p.Y,
	}
}

// DisjointToIndependentXYZ approximately inverts IndependentToDisjointXYZ.
//
// The inverse has no closed form; a damped fixed-point iteration runs for a
// bounded number of steps. The second return value reports success: false
// means the iteration did not converge or converged outside [0,1], which is
// the expected outcome for physically unrealizable disjoint distributions,
// not an error.
func DisjointToIndependentXYZ(target XYZ) (XYZ, bool) {
	cur := target
	for i := 0; i < disjointSolverSteps; i++ {
		got := IndependentToDisjointXYZ(cur)
		cur.X += target.X - got.X
		cur.Y += target.Y - got.Y
		cur.Z += target.Z - got.Z
	}

	got := IndependentToDisjointXYZ(cur)
	residual := math.Max(math.Abs(got.X-target.X), math.Max(math.Abs(got.Y-target.Y), math.Abs(got.Z-target.Z)))
	inRange := cur.X >= 0 && cur.X <= 1 && cur.Y >= 0 && cur.Y <= 1 && cur.Z >= 0 && cur.Z <= 1
	if residual > disjointSolverResidual || !inRange {
		return XYZ{}, false
	}

	return cur, true
}

// Depolarize1ToIndependent converts the total error probability p of the
// single-qubit depolarizing channel into the independent per-channel
// probability q at which three independent channels (X, Y, Z) compose to it.
func Depolarize1ToIndependent(p float64) float64 {
	return 0.5 - 0.5*math.Sqrt(1-4*p/3)
}

// IndependentToDepolarize1 is the exact inverse of Depolarize1ToIndependent.
func IndependentToDepolarize1(q float64) float64 {
	d := 1 - 2*q

	return 0.75 * (1 - d*d)
}

// Depolarize2ToIndependent converts the total error probability p of the
// two-qubit depolarizing channel into the independent per-channel
// probability q at which its fifteen per-Pauli channels compose to it.
func Depolarize2ToIndependent(p float64) float64 {
	return 0.5 - 0.5*math.Pow(1-16*p/15, 0.125)
}

// IndependentToDepolarize2 is the exact inverse of Depolarize2ToIndependent.
func IndependentToDepolarize2(q float64) float64 {
	d := 1 - 2*q
	d2 := d * d
	d4 := d2 * d2

	return 15.0 / 16.0 * (1 - d4*d4)
}
