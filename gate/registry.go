package gate

import "sync"

// Registry is an immutable gate-metadata table.
//
// A Registry must not be mutated after construction; all lookups are
// read-only and safe for concurrent use.
type Registry struct {
	gates  [numGates]Gate
	byName map[string]ID
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// Default returns the shared built-in registry, constructed once.
func Default() *Registry { return defaultRegistry() }

// Get returns the metadata for the given id.
func (r *Registry) Get(id ID) (*Gate, bool) {
	if int(id) >= len(r.gates) {
		return nil, false
	}

	return &r.gates[id], true
}

// ByName returns the metadata for the given gate name.
func (r *Registry) ByName(name string) (*Gate, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	return &r.gates[id], true
}

// NewRegistry builds the built-in gate table.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]ID, numGates)}

	add := func(id ID, flags Flags, inverse ID, unitary [][]complex128) {
		r.gates[id] = Gate{ID: id, Name: gateNames[id], Flags: flags, Inverse: inverse, Unitary: unitary}
		r.byName[gateNames[id]] = id
	}

	const u = FlagUnitary
	s2 := complex(0.70710678118654752440, 0) // 1/sqrt(2)
	hp := complex(0.5, 0.5)                  // (1+i)/2
	hm := complex(0.5, -0.5)                 // (1-i)/2

	add(I, u, I, [][]complex128{{1, 0}, {0, 1}})
	add(X, u, X, [][]complex128{{0, 1}, {1, 0}})
	add(Y, u, Y, [][]complex128{{0, -1i}, {1i, 0}})
	add(Z, u, Z, [][]complex128{{1, 0}, {0, -1}})
	add(H, u, H, [][]complex128{{s2, s2}, {s2, -s2}})
	add(S, u, SDag, [][]complex128{{1, 0}, {0, 1i}})
	add(SDag, u, S, [][]complex128{{1, 0}, {0, -1i}})
	add(SqrtX, u, SqrtXDag, [][]complex128{{hp, hm}, {hm, hp}})
	add(SqrtXDag, u, SqrtX, [][]complex128{{hm, hp}, {hp, hm}})
	add(SqrtY, u, SqrtYDag, [][]complex128{{hp, -hp}, {hp, hp}})
	add(SqrtYDag, u, SqrtY, [][]complex128{{hm, hm}, {-hm, hm}})

	add(CX, u|FlagPairs, CX, [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
	add(CY, u|FlagPairs, CY, [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, -1i},
		{0, 0, 1i, 0},
	})
	add(CZ, u|FlagPairs, CZ, [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	})
	add(Swap, u|FlagPairs, Swap, [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})
	add(ISwap, u|FlagPairs, ISwapDag, [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1i, 0},
		{0, 1i, 0, 0},
		{0, 0, 0, 1},
	})
	add(ISwapDag, u|FlagPairs, ISwap, [][]complex128{
		{1, 0, 0, 0},
		{0, 0, -1i, 0},
		{0, -1i, 0, 0},
		{0, 0, 0, 1},
	})

	add(M, FlagMeasurement, M, nil)
	add(MX, FlagMeasurement, MX, nil)
	add(MY, FlagMeasurement, MY, nil)
	add(MR, FlagMeasurement|FlagReset, MR, nil)
	add(R, FlagReset, R, nil)
	add(RX, FlagReset, RX, nil)
	add(RY, FlagReset, RY, nil)
	add(MPP, FlagMeasurement|FlagPauliTargets, MPP, nil)

	add(XError, FlagNoise, XError, nil)
	add(YError, FlagNoise, YError, nil)
	add(ZError, FlagNoise, ZError, nil)
	add(Depolarize1, FlagNoise, Depolarize1, nil)
	add(Depolarize2, FlagNoise|FlagPairs, Depolarize2, nil)

	add(Tick, FlagAnnotation, Tick, nil)
	add(Detector, FlagAnnotation, Detector, nil)
	add(ObservableInclude, FlagAnnotation, ObservableInclude, nil)

	return r
}
