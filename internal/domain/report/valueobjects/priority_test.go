package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePriority_Boundaries(t *testing.T) {
	tests := []struct {
		impact, urgency int
		want            Priority
	}{
		{1, 1, PriorityLow},
		{2, 2, PriorityLow},
		{1, 3, PriorityLow},
		{3, 2, PriorityMedium},
		{3, 3, PriorityMedium},
		{5, 1, PriorityMedium},
		{4, 3, PriorityHigh},
		{4, 4, PriorityHigh},
		{5, 3, PriorityHigh},
		{5, 4, PriorityCritical},
		{5, 5, PriorityCritical},
	}

	for _, tt := range tests {
		got, err := ComputePriority(tt.impact, tt.urgency)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "impact=%d urgency=%d", tt.impact, tt.urgency)
	}
}

func TestComputePriority_TotalOverDomain(t *testing.T) {
	for i := MinScale; i <= MaxScale; i++ {
		for u := MinScale; u <= MaxScale; u++ {
			p, err := ComputePriority(i, u)
			require.NoError(t, err)
			assert.True(t, p.IsValid())
		}
	}
}

func TestComputePriority_Monotonic(t *testing.T) {
	for i := MinScale; i <= MaxScale; i++ {
		for u := MinScale; u <= MaxScale; u++ {
			base, _ := ComputePriority(i, u)
			if i < MaxScale {
				up, _ := ComputePriority(i+1, u)
				assert.GreaterOrEqual(t, up.Rank(), base.Rank())
			}
			if u < MaxScale {
				up, _ := ComputePriority(i, u+1)
				assert.GreaterOrEqual(t, up.Rank(), base.Rank())
			}
		}
	}
}

func TestComputePriority_OutOfRange(t *testing.T) {
	for _, pair := range [][2]int{{0, 3}, {6, 3}, {3, 0}, {3, 6}, {-1, -1}} {
		_, err := ComputePriority(pair[0], pair[1])
		assert.Error(t, err, "%v", pair)
	}
}

func TestNewPriority(t *testing.T) {
	p, err := NewPriority("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)

	_, err = NewPriority("URGENT")
	assert.Error(t, err)
}
