package autocheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConventionalPercent(t *testing.T) {
	tests := []struct {
		name         string
		conventional int
		total        int
		want         int
	}{
		{"no commits", 0, 0, 0},
		{"eight of ten", 8, 10, 80},
		{"all", 3, 3, 100},
		{"rounds down", 2, 3, 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ScanCounters{ConventionalCommits: tt.conventional, TotalCommits: tt.total}
			assert.Equal(t, tt.want, c.ConventionalPercent())

			g := GitSummary{ConventionalCommits: tt.conventional, TotalCommits: tt.total}
			assert.Equal(t, tt.want, g.ConventionalPercent())
		})
	}
}

func TestSectionTitlesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Sections {
		title := s.Title()
		assert.NotEqual(t, "Other", title)
		assert.False(t, seen[title], "duplicate title %q", title)
		seen[title] = true
	}
}

func TestCheckResult_Passed(t *testing.T) {
	assert.True(t, CheckResult{Status: StatusPass}.Passed())
	assert.False(t, CheckResult{Status: StatusWarn}.Passed())
	assert.False(t, CheckResult{Status: StatusInfo}.Passed())
}
