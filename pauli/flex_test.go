package pauli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlex(t *testing.T) {
	tests := []struct {
		input string
		phase uint8
		want  string
	}{
		{"+XX", 0, "+XX"},
		{"XX", 0, "+XX"},
		{"iXZ", 1, "iXZ"},
		{"+iXZ", 1, "iXZ"},
		{"-ZZ", 2, "-ZZ"},
		{"-iY_", 3, "-iY_"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFlex(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.phase, f.Phase())
			require.Equal(t, tt.want, f.String())
		})
	}
}

func TestParseFlex_InvalidCharacter(t *testing.T) {
	_, err := ParseFlex("iXQ")
	require.Error(t, err)
}

func TestFlex_MulAssign(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"X", "Z", "-iY"}, // X·Z = -iY
		{"Z", "X", "iY"},  // Z·X = iY
		{"X", "Y", "iZ"},
		{"Y", "X", "-iZ"},
		{"Y", "Z", "iX"},
		{"X", "X", "+_"},
		{"Y", "Y", "+_"},
		{"-X", "-X", "+_"},
		{"iX", "iX", "-_"},
		{"XX", "ZZ", "-YY"}, // two -i factors
		{"X_Z", "ZZ_", "-iYZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_times_"+tt.b, func(t *testing.T) {
			a, err := ParseFlex(tt.a)
			require.NoError(t, err)
			b, err := ParseFlex(tt.b)
			require.NoError(t, err)
			a.MulAssign(b)
			require.Equal(t, tt.want, a.String())
		})
	}
}

func TestFlex_MulAssign_PanicsOnLengthMismatch(t *testing.T) {
	a, b := NewFlex(1), NewFlex(2)
	require.Panics(t, func() { a.MulAssign(b) })
}

func TestFlex_MulString(t *testing.T) {
	f, err := ParseFlex("X")
	require.NoError(t, err)
	f.MulString(MustParse("-Z"))
	require.Equal(t, "iY", f.String()) // X·(-Z) = iY
}

func TestFlex_PhaseArithmetic(t *testing.T) {
	f := NewFlex(1)
	f.MulPhase(3)
	require.Equal(t, uint8(3), f.Phase())
	f.MulPhase(2)
	require.Equal(t, uint8(1), f.Phase())
	f.SetPhase(6)
	require.Equal(t, uint8(2), f.Phase())
}

func TestFlex_ToString(t *testing.T) {
	f, err := ParseFlex("-XZ")
	require.NoError(t, err)
	p, err := f.ToString()
	require.NoError(t, err)
	require.Equal(t, "-XZ", p.String())

	f, err = ParseFlex("iX")
	require.NoError(t, err)
	_, err = f.ToString()
	require.Error(t, err)
	require.Contains(t, err.Error(), "imaginary phase")
}

func TestFlex_CommutesString(t *testing.T) {
	f, err := ParseFlex("iXZ")
	require.NoError(t, err)
	require.True(t, f.CommutesString(MustParse("X_")))
	require.False(t, f.CommutesString(MustParse("Z_")))
}

func TestFlex_ClearQubit(t *testing.T) {
	f, err := ParseFlex("-YZ")
	require.NoError(t, err)
	f.ClearQubit(0)
	require.Equal(t, "-_Z", f.String())
	require.Equal(t, uint8(2), f.Phase()) // the phase is untouched
}

func TestFlex_CopyIsIndependent(t *testing.T) {
	f, err := ParseFlex("iX")
	require.NoError(t, err)
	c := f.Copy()
	c.SetLetter(0, LetterZ)
	c.SetPhase(0)
	require.Equal(t, "iX", f.String())
	require.True(t, f.Equal(f))
	require.False(t, f.Equal(c))
}
