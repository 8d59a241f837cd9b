package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type settings struct {
	level   int
	name    string
	enabled bool
}

func withLevel(v int) Option[*settings] {
	return New(func(s *settings) error {
		if v < 0 {
			return errors.New("level cannot be negative")
		}
		s.level = v

		return nil
	})
}

func withName(name string) Option[*settings] {
	return NoError(func(s *settings) { s.name = name })
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		s := &settings{}
		err := Apply(s,
			withLevel(3),
			withName("payload"),
			NoError(func(s *settings) { s.enabled = true }),
		)
		require.NoError(t, err)
		require.Equal(t, 3, s.level)
		require.Equal(t, "payload", s.name)
		require.True(t, s.enabled)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		s := &settings{}
		err := Apply(s, withLevel(1), withLevel(-1), withName("unreached"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "level cannot be negative")
		require.Equal(t, 1, s.level)
		require.Empty(t, s.name)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		s := &settings{}
		require.NoError(t, Apply(s))
		require.Equal(t, settings{}, *s)
	})
}

func TestNoError(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })
	require.NoError(t, opt(&n))
	require.Equal(t, 42, n)
}
