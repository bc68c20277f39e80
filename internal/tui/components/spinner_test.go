package components

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestSpinner_ShowsMessageUntilDone(t *testing.T) {
	s := NewSpinner("npm run lint")
	assert.NotNil(t, s.Init())
	assert.Contains(t, s.View(), "npm run lint")
	assert.False(t, s.IsDone())

	s, cmd := s.Update(SpinnerDone("lint passed"))
	assert.Nil(t, cmd)
	assert.True(t, s.IsDone())
	assert.True(t, s.IsSuccess())
	assert.Contains(t, s.View(), "lint passed")
}

func TestSpinner_Failure(t *testing.T) {
	s := NewSpinner("npm run build")
	s, _ = s.Update(SpinnerFailed("build failed (exit 1)"))
	assert.True(t, s.IsDone())
	assert.False(t, s.IsSuccess())
	assert.Contains(t, s.View(), "build failed (exit 1)")
}

func TestSpinner_StopsTickingWhenDone(t *testing.T) {
	s := NewSpinner("x")
	s, _ = s.Update(SpinnerDone("ok"))
	_, cmd := s.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestSpinner_IgnoresUnknownMessages(t *testing.T) {
	s := NewSpinner("x")
	next, cmd := s.Update("unrelated")
	assert.Nil(t, cmd)
	assert.Equal(t, s.View(), next.View())
}

func TestSpinner_ShowsElapsedSecondsWhileRunning(t *testing.T) {
	s := NewSpinner("npm install")
	start := s.started

	s.now = func() time.Time { return start.Add(500 * time.Millisecond) }
	assert.NotContains(t, s.View(), "0s")

	s.now = func() time.Time { return start.Add(12*time.Second + 300*time.Millisecond) }
	assert.Contains(t, s.View(), "12s")

	s, _ = s.Update(SpinnerDone("npm install (12.3s)"))
	assert.NotContains(t, s.View(), "  12s")
}
