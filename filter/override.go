package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/pipeline"
	"github.com/rushteam/fleetrank/pkg/utils"
)

// OverrideNode 是强制检修 Node：命中规则的记录分数被置为负无穷，
// 无论模型给出什么分数，后续分桶都会把它归入 Maintenance。
//
// 未关闭检修工单（JobCardRule）总是第一个生效，不可关闭；Extra 为额外的规则。
// 规则求值出错时整批失败（SCORING_ERROR），不会静默跳过。
type OverrideNode struct {
	Extra []Rule
}

func (n *OverrideNode) Name() string        { return "filter.override" }
func (n *OverrideNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *OverrideNode) Rules() []Rule {
	return append([]Rule{JobCardRule{}}, n.Extra...)
}

func (n *OverrideNode) Process(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	rules := n.Rules()
	overridden := 0

	for _, item := range items {
		if item == nil {
			continue
		}
		for _, r := range rules {
			ok, err := r.Match(ctx, rctx, item)
			if err != nil {
				return nil, core.NewScoringError(fmt.Sprintf("override rule %s", r.Name())).WithCause(err)
			}
			if ok {
				item.Score = core.MaintenanceScore
				item.PutLabel("override", utils.Label{Value: r.Name(), Source: "override"})
				rctx.Logger.Debug().
					Int("record", item.Index).
					Str("override", item.Labels["override"].Value).
					Msg("forced to maintenance")
				overridden++
				break
			}
		}
	}

	rctx.Logger.Debug().Int("overridden", overridden).Int("rules", len(rules)).Msg("maintenance overrides applied")
	return items, nil
}
