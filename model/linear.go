package model

import (
	"context"
	"fmt"
)

// LinearModel 实现了线性回归模型。
//
// 预测原理：score = Bias + sum(Weights[i] * row[i])
//
// 权重按特征列顺序存放，长度必须与特征向量一致。
type LinearModel struct {
	Bias    float64   // 偏置项 (Intercept)
	Weights []float64 // 特征权重 (Coefficients)，按列顺序
}

func (m *LinearModel) Name() string { return "linear" }

func (m *LinearModel) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	scores := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf("row %d: expected %d features, got %d", i, len(m.Weights), len(row))
		}
		score := m.Bias
		for j, v := range row {
			score += m.Weights[j] * v
		}
		scores[i] = score
	}
	return scores, nil
}
