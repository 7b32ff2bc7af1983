package pipeline

import (
	"context"

	"github.com/rushteam/fleetrank/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindFeature Kind = "feature" // 特征阶段：把原始记录转为特征向量
	KindRank    Kind = "rank"    // 排序阶段：调用模型打分
	KindFilter  Kind = "filter"  // 规则阶段：强制检修等硬性覆盖
	KindReRank  Kind = "rerank"  // 重排阶段：分区、排序与分桶
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便特征填充、打分、覆盖与分桶串联。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RankContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(config map[string]any) (Node, error)
