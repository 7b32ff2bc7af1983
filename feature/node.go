package feature

import (
	"context"
	"fmt"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/pipeline"
)

// PrepareNode 是特征准备 Node：为每个 Item 填充 Features。
// 任一记录失败则整批失败。
type PrepareNode struct {
	Preparer *Preparer
}

func (n *PrepareNode) Name() string        { return "feature.prepare" }
func (n *PrepareNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *PrepareNode) Process(
	_ context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	preparer := n.Preparer
	if preparer == nil {
		preparer = NewPreparer()
	}

	for _, it := range items {
		if it == nil || it.Record == nil {
			continue
		}
		row, err := preparer.PrepareRecord(*it.Record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", it.Index, err)
		}
		it.Features = row
	}
	rctx.Logger.Debug().Int("records", len(items)).Str("stage", n.Name()).Msg("features prepared")
	return items, nil
}
