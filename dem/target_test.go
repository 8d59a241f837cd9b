package dem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTarget_String(t *testing.T) {
	require.Equal(t, "D3", Detector(3).String())
	require.Equal(t, "L0", Observable(0).String())
}

func TestTarget_Compare(t *testing.T) {
	require.Equal(t, 0, Detector(2).Compare(Detector(2)))
	require.Equal(t, -1, Detector(1).Compare(Detector(2)))
	require.Equal(t, 1, Detector(2).Compare(Detector(1)))

	// Detectors always order before observables.
	require.Equal(t, -1, Detector(99).Compare(Observable(0)))
	require.Equal(t, 1, Observable(0).Compare(Detector(99)))
	require.Equal(t, -1, Observable(1).Compare(Observable(2)))
}

func TestTarget_Comparable(t *testing.T) {
	seen := map[Target]bool{Detector(0): true}
	require.True(t, seen[Detector(0)])
	require.False(t, seen[Observable(0)])
}
