package model

import (
	"context"
	"fmt"
)

// ScalerParams 是单列的标准化参数，对应训练时的 StandardScaler。
type ScalerParams struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
}

// ScaledModel 在调用内部模型前对每列做 Z-score 标准化：(x - mean) / std。
// std <= 0 的列保持原值。输入矩阵不会被修改。
type ScaledModel struct {
	Scaler []ScalerParams
	Model  Model
}

func NewScaledModel(m Model, scaler []ScalerParams) (*ScaledModel, error) {
	if m == nil {
		return nil, fmt.Errorf("scaled model: inner model is nil")
	}
	return &ScaledModel{Scaler: scaler, Model: m}, nil
}

func (m *ScaledModel) Name() string {
	return m.Model.Name()
}

func (m *ScaledModel) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Scaler) {
			return nil, fmt.Errorf("row %d: expected %d features, got %d", i, len(m.Scaler), len(row))
		}
		out := make([]float64, len(row))
		for j, v := range row {
			p := m.Scaler[j]
			if p.Std > 0 {
				v = (v - p.Mean) / p.Std
			}
			out[j] = v
		}
		scaled[i] = out
	}
	return m.Model.Predict(ctx, scaled)
}
