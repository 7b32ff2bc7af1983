package model

import (
	"context"
	"fmt"
)

// 树集成的聚合方式。
const (
	AggregateMean = "mean" // 随机森林：各树输出取平均
	AggregateSum  = "sum"  // 梯度提升：各树输出累加
)

// TreeNode 是导出的回归树节点。
// 非叶子节点按 row[Feature] <= Threshold 走 Left，否则走 Right；叶子节点输出 Value。
type TreeNode struct {
	Feature   int     `yaml:"feature" json:"feature"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Left      int     `yaml:"left" json:"left"`
	Right     int     `yaml:"right" json:"right"`
	Value     float64 `yaml:"value" json:"value"`
	Leaf      bool    `yaml:"leaf" json:"leaf"`
}

// Tree 是一棵回归树，Nodes[0] 为根节点。
type Tree struct {
	Nodes []TreeNode `yaml:"nodes" json:"nodes"`
}

// ForestModel 是回归树集成模型（随机森林 / GBDT 的离线导出形式）。
//
// 预测原理：
//   - mean：score = BaseScore + avg(tree_i(row))
//   - sum：score = BaseScore + sum(tree_i(row))
type ForestModel struct {
	BaseScore   float64
	Aggregate   string
	Trees       []Tree
	NumFeatures int
}

func (m *ForestModel) Name() string { return "forest" }

// Validate 检查树结构：节点下标合法、特征下标在范围内、至少一棵树。
func (m *ForestModel) Validate() error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	switch m.Aggregate {
	case AggregateMean, AggregateSum:
	default:
		return fmt.Errorf("unknown aggregate %q", m.Aggregate)
	}
	for t, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d: no nodes", t)
		}
		for i, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= m.NumFeatures {
				return fmt.Errorf("tree %d node %d: feature index %d out of range [0,%d)", t, i, n.Feature, m.NumFeatures)
			}
			if n.Left <= i || n.Left >= len(tree.Nodes) || n.Right <= i || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", t, i)
			}
		}
	}
	return nil
}

func (m *ForestModel) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	scores := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != m.NumFeatures {
			return nil, fmt.Errorf("row %d: expected %d features, got %d", i, m.NumFeatures, len(row))
		}
		total := 0.0
		for t := range m.Trees {
			v, err := m.Trees[t].eval(row)
			if err != nil {
				return nil, fmt.Errorf("row %d tree %d: %w", i, t, err)
			}
			total += v
		}
		if m.Aggregate == AggregateMean {
			total /= float64(len(m.Trees))
		}
		scores[i] = m.BaseScore + total
	}
	return scores, nil
}

// eval 从根节点走到叶子。子节点下标严格递增（Validate 保证），因此不会成环。
func (t Tree) eval(row []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Value, nil
		}
		if row[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("tree walk did not reach a leaf")
}
