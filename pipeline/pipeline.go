package pipeline

import (
	"context"
	"time"

	"github.com/rushteam/fleetrank/core"
)

// Pipeline 把排序逻辑拆成可组合的 Node 链：特征准备 → 打分 → 覆盖 → 分桶。
// 任一 Node 返回错误时立即中止，不返回部分结果。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		rctx = core.NewRankContext("")
	}
	cur := items
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			rctx.Logger.Debug().Err(err).Str("node", node.Name()).Msg("node failed")
			return nil, err
		}
		rctx.Logger.Debug().
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("items", len(next)).
			Dur("took", time.Since(start)).
			Msg("node done")
		cur = next
	}
	return cur, nil
}
