package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/pipeline"
)

// BucketNode 是分区 + 截断节点，把打分后的列车分为 Revenue / Standby / Maintenance。
// 通常在打分（rank.model）与强制检修（filter.override）之后使用。
//
// 规则：
//   - 分数为负无穷的记录进入 Maintenance，保持输入顺序
//   - 其余记录按分数降序稳定排序（分数相同保持输入顺序）
//   - 前 RevenueSlots 个为 Revenue，其余为 Standby
//   - 输出顺序：Revenue，Standby，Maintenance
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &feature.PrepareNode{...},
//	        &rank.ModelNode{...},            // 打分
//	        &filter.OverrideNode{},          // 强制检修
//	        &rerank.BucketNode{RevenueSlots: 15},
//	    },
//	}
type BucketNode struct {
	// RevenueSlots 正线运营名额
	// 如果 RevenueSlots <= 0，所有可用车均为 Standby
	// 如果 RevenueSlots >= 可用车数量，所有可用车均为 Revenue
	RevenueSlots int
}

func (n *BucketNode) Name() string {
	return "rerank.bucket"
}

func (n *BucketNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *BucketNode) Process(
	_ context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	eligible := make([]*core.Item, 0, len(items))
	maintenance := make([]*core.Item, 0)
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.IsMaintenance() {
			maintenance = append(maintenance, it)
			continue
		}
		eligible = append(eligible, it)
	}

	// 分数相同按输入位置，等价于对输入顺序做稳定排序
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Score != eligible[j].Score {
			return eligible[i].Score > eligible[j].Score
		}
		return eligible[i].Index < eligible[j].Index
	})
	sort.SliceStable(maintenance, func(i, j int) bool {
		return maintenance[i].Index < maintenance[j].Index
	})

	slots := min(max(n.RevenueSlots, 0), len(eligible))
	for i, it := range eligible {
		if i < slots {
			it.Decision = core.DecisionRevenue
		} else {
			it.Decision = core.DecisionStandby
		}
	}
	for _, it := range maintenance {
		it.Decision = core.DecisionMaintenance
	}

	rctx.Logger.Debug().
		Int("revenue", slots).
		Int("standby", len(eligible)-slots).
		Int("maintenance", len(maintenance)).
		Msg("fleet bucketed")

	out := make([]*core.Item, 0, len(eligible)+len(maintenance))
	out = append(out, eligible...)
	out = append(out, maintenance...)
	return out, nil
}
