// Package dem provides detector-error-model target identifiers.
package dem

import "fmt"

// Kind discriminates detector targets from logical-observable targets.
type Kind uint8

const (
	// KindDetector identifies a detector by its declaration order.
	KindDetector Kind = iota
	// KindObservable identifies a logical observable by its declared index.
	KindObservable
)

// Target is an opaque, comparable, orderable identifier for a detector or a
// logical observable. Detectors order before observables; within a kind,
// targets order by index.
type Target struct {
	Kind  Kind
	Index uint64
}

// Detector returns the target for detector k.
func Detector(k uint64) Target { return Target{Kind: KindDetector, Index: k} }

// Observable returns the target for logical observable k.
func Observable(k uint64) Target { return Target{Kind: KindObservable, Index: k} }

// Compare orders targets: detectors before observables, then by index.
// It returns -1, 0 or 1.
func (t Target) Compare(other Target) int {
	if t.Kind != other.Kind {
		if t.Kind < other.Kind {
			return -1
		}

		return 1
	}
	if t.Index != other.Index {
		if t.Index < other.Index {
			return -1
		}

		return 1
	}

	return 0
}

// String formats the target as "D3" or "L0".
func (t Target) String() string {
	if t.Kind == KindDetector {
		return fmt.Sprintf("D%d", t.Index)
	}

	return fmt.Sprintf("L%d", t.Index)
}
