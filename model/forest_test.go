package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stump(feature int, threshold, left, right float64) Tree {
	return Tree{Nodes: []TreeNode{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Leaf: true, Value: left},
		{Leaf: true, Value: right},
	}}
}

func TestForestModel_Predict(t *testing.T) {
	tests := []struct {
		name      string
		aggregate string
		want      []float64
	}{
		{name: "mean", aggregate: AggregateMean, want: []float64{10.5, 12.5}},
		{name: "sum", aggregate: AggregateSum, want: []float64{11, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ForestModel{
				BaseScore:   10,
				Aggregate:   tt.aggregate,
				NumFeatures: 2,
				Trees: []Tree{
					stump(0, 0.5, 0, 2),
					stump(1, 10, 1, 3),
				},
			}
			require.NoError(t, m.Validate())
			scores, err := m.Predict(context.Background(), [][]float64{{0, 5}, {1, 20}})
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, scores, 1e-9)
		})
	}
}

func TestForestModel_Validate(t *testing.T) {
	tests := []struct {
		name  string
		model *ForestModel
	}{
		{name: "no trees", model: &ForestModel{Aggregate: AggregateMean, NumFeatures: 8}},
		{name: "bad aggregate", model: &ForestModel{Aggregate: "max", NumFeatures: 8, Trees: []Tree{stump(0, 1, 0, 1)}}},
		{name: "feature out of range", model: &ForestModel{Aggregate: AggregateMean, NumFeatures: 8, Trees: []Tree{stump(8, 1, 0, 1)}}},
		{name: "empty tree", model: &ForestModel{Aggregate: AggregateMean, NumFeatures: 8, Trees: []Tree{{}}}},
		{name: "backward child", model: &ForestModel{Aggregate: AggregateMean, NumFeatures: 8, Trees: []Tree{{Nodes: []TreeNode{
			{Feature: 0, Left: 0, Right: 1},
			{Leaf: true},
		}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.model.Validate())
		})
	}
}

func TestForestModel_PredictShapeMismatch(t *testing.T) {
	m := &ForestModel{Aggregate: AggregateMean, NumFeatures: 2, Trees: []Tree{stump(0, 1, 0, 1)}}
	_, err := m.Predict(context.Background(), [][]float64{{1, 2, 3}})
	assert.Error(t, err)
}
