package rerank

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/fleetrank/core"
)

func scoredItems(scores ...float64) []*core.Item {
	items := make([]*core.Item, len(scores))
	for i, s := range scores {
		items[i] = core.NewItem(i, nil)
		items[i].Score = s
	}
	return items
}

func indexes(items []*core.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func decisions(items []*core.Item) []core.Decision {
	out := make([]core.Decision, len(items))
	for i, it := range items {
		out[i] = it.Decision
	}
	return out
}

func TestBucketNode_Process(t *testing.T) {
	neg := math.Inf(-1)
	tests := []struct {
		name          string
		slots         int
		scores        []float64
		wantOrder     []int
		wantDecisions []core.Decision
	}{
		{
			name:          "sorted descending",
			slots:         15,
			scores:        []float64{5, 2, 8},
			wantOrder:     []int{2, 0, 1},
			wantDecisions: []core.Decision{core.DecisionRevenue, core.DecisionRevenue, core.DecisionRevenue},
		},
		{
			name:          "cutoff",
			slots:         2,
			scores:        []float64{1, 3, 2, 4},
			wantOrder:     []int{3, 1, 2, 0},
			wantDecisions: []core.Decision{core.DecisionRevenue, core.DecisionRevenue, core.DecisionStandby, core.DecisionStandby},
		},
		{
			name:          "ties keep input order",
			slots:         2,
			scores:        []float64{1, 5, 1, 5, 1},
			wantOrder:     []int{1, 3, 0, 2, 4},
			wantDecisions: []core.Decision{core.DecisionRevenue, core.DecisionRevenue, core.DecisionStandby, core.DecisionStandby, core.DecisionStandby},
		},
		{
			name:          "maintenance last in input order",
			slots:         1,
			scores:        []float64{neg, 3, neg, 9},
			wantOrder:     []int{3, 1, 0, 2},
			wantDecisions: []core.Decision{core.DecisionRevenue, core.DecisionStandby, core.DecisionMaintenance, core.DecisionMaintenance},
		},
		{
			name:          "all maintenance",
			slots:         15,
			scores:        []float64{neg, neg},
			wantOrder:     []int{0, 1},
			wantDecisions: []core.Decision{core.DecisionMaintenance, core.DecisionMaintenance},
		},
		{
			name:          "zero slots",
			slots:         0,
			scores:        []float64{2, 1},
			wantOrder:     []int{0, 1},
			wantDecisions: []core.Decision{core.DecisionStandby, core.DecisionStandby},
		},
		{
			name:          "negative scores are eligible",
			slots:         1,
			scores:        []float64{-3, -1},
			wantOrder:     []int{1, 0},
			wantDecisions: []core.Decision{core.DecisionRevenue, core.DecisionStandby},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &BucketNode{RevenueSlots: tt.slots}
			out, err := node.Process(context.Background(), core.NewRankContext("t"), scoredItems(tt.scores...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrder, indexes(out))
			assert.Equal(t, tt.wantDecisions, decisions(out))
		})
	}
}

func TestBucketNode_Empty(t *testing.T) {
	out, err := (&BucketNode{RevenueSlots: 15}).Process(context.Background(), core.NewRankContext("t"), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
