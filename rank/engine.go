package rank

import (
	"context"
	"fmt"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/feature"
	"github.com/rushteam/fleetrank/filter"
	"github.com/rushteam/fleetrank/model"
	"github.com/rushteam/fleetrank/pipeline"
	"github.com/rushteam/fleetrank/rerank"
)

// Engine 是列车排序引擎：特征准备 → 模型打分 → 强制检修 → 分区分桶。
// 每次 Rank 处理一个完整批次，任何一步失败都不返回部分结果。
type Engine struct {
	Pipeline *pipeline.Pipeline
}

type engineOptions struct {
	revenueSlots int
	rules        []filter.Rule
}

// Option 配置 Engine
type Option func(*engineOptions)

// WithRevenueSlots 设置正线运营名额（默认 15）。
func WithRevenueSlots(n int) Option {
	return func(o *engineOptions) { o.revenueSlots = n }
}

// WithOverrideRules 追加强制检修规则；未关闭检修工单规则始终生效。
func WithOverrideRules(rules ...filter.Rule) Option {
	return func(o *engineOptions) { o.rules = append(o.rules, rules...) }
}

// NewEngine 用给定模型构建默认排序链路。
func NewEngine(m model.Model, opts ...Option) *Engine {
	o := engineOptions{revenueSlots: core.DefaultRevenueSlotCount}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		Pipeline: &pipeline.Pipeline{
			Nodes: []pipeline.Node{
				&feature.PrepareNode{Preparer: feature.NewPreparer()},
				&ModelNode{Model: m},
				&filter.OverrideNode{Extra: o.rules},
				&rerank.BucketNode{RevenueSlots: o.revenueSlots},
			},
		},
	}
}

// NewEngineFromPipeline 使用外部构建（例如配置文件）的链路。
func NewEngineFromPipeline(p *pipeline.Pipeline) *Engine {
	return &Engine{Pipeline: p}
}

// Rank 对一批记录排序，返回顺序为 Revenue，Standby，Maintenance。
// records 不会被修改；空输入返回空结果且不调用模型。
func (e *Engine) Rank(ctx context.Context, rctx *core.RankContext, records []core.TrainRecord) ([]core.ScoredRecord, error) {
	if len(records) == 0 {
		return []core.ScoredRecord{}, nil
	}

	items, err := e.Pipeline.Run(ctx, rctx, core.NewItems(records))
	if err != nil {
		return nil, err
	}
	if len(items) != len(records) {
		return nil, fmt.Errorf("pipeline returned %d records for %d inputs", len(items), len(records))
	}

	out := make([]core.ScoredRecord, len(items))
	for i, it := range items {
		if it.Decision == "" {
			return nil, fmt.Errorf("record %d has no decision; pipeline must end with a bucketing node", it.Index)
		}
		out[i] = it.Scored()
	}
	return out, nil
}
