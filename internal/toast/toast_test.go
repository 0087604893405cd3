package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPushStacksIndependently(t *testing.T) {
	s := NewStack(time.Hour)
	a, cmdA := s.Push("first", false)
	b, cmdB := s.Push("Error: Export failed", true)
	require.NotNil(t, cmdA)
	require.NotNil(t, cmdB)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, 2, s.Len())

	require.True(t, s.Expire(a.ID))
	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Error: Export failed", items[0].Text)
	require.True(t, items[0].Err)

	require.False(t, s.Expire(a.ID), "already gone")
}

func TestExpireCommandTargetsItsToast(t *testing.T) {
	s := NewStack(time.Millisecond)
	first, cmd := s.Push("soon gone", false)
	s.Push("stays", false)

	msg := cmd()
	exp, ok := msg.(ExpireMsg)
	require.True(t, ok)
	require.Equal(t, first.ID, exp.ID)

	s.Expire(exp.ID)
	require.Equal(t, 1, s.Len())
	require.Equal(t, "stays", s.Items()[0].Text)
}
