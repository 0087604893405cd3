package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdvanceCapsBelowHundred(t *testing.T) {
	s := New(time.Millisecond, 10, 90)
	s.Reset()
	var seen []int
	for i := 0; i < 20; i++ {
		if s.Advance() {
			seen = append(seen, s.Percent())
		}
	}
	require.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90}, seen)
	require.Equal(t, "Generating guide... 90%", s.Label())
}

func TestAdvanceClampsUnevenStep(t *testing.T) {
	s := New(time.Millisecond, 40, 90)
	s.Reset()
	for s.Advance() {
	}
	require.Equal(t, 90, s.Percent())
}

func TestStopRejectsTicks(t *testing.T) {
	s := New(time.Hour, 10, 90)
	cmd := s.Start()
	require.NotNil(t, cmd)
	require.Equal(t, 0, s.Percent())

	changed, next := s.Update(TickMsg{ID: 1})
	require.True(t, changed)
	require.NotNil(t, next)
	require.Equal(t, 10, s.Percent())

	s.Stop()
	changed, next = s.Update(TickMsg{ID: 1})
	require.False(t, changed)
	require.Nil(t, next, "chain ends after stop")
	require.Equal(t, 10, s.Percent())
}

func TestStaleRunTicksAreDropped(t *testing.T) {
	s := New(time.Hour, 10, 90)
	s.Start()
	s.Stop()
	s.Start()

	changed, next := s.Update(TickMsg{ID: 1})
	require.False(t, changed)
	require.Nil(t, next)

	changed, _ = s.Update(TickMsg{ID: 2})
	require.True(t, changed)
}

func TestCompleteShowsHundred(t *testing.T) {
	s := New(time.Hour, 10, 90)
	s.Start()
	s.Complete()
	require.False(t, s.Running())
	require.Equal(t, 100, s.Percent())
}

func TestRunStopsReportingAfterStop(t *testing.T) {
	s := New(2*time.Millisecond, 10, 90)
	var mu sync.Mutex
	var reports []int
	stop := s.Run(func(p int) {
		mu.Lock()
		reports = append(reports, p)
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reports) >= 2
	}, time.Second, time.Millisecond)

	stop()
	stop()
	mu.Lock()
	n := len(reports)
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, n, "no reports after stop returned")
	require.False(t, s.Running())
	for i := 1; i < len(reports); i++ {
		require.Greater(t, reports[i], reports[i-1])
	}
}
