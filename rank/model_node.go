package rank

import (
	"context"
	"fmt"
	"math"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/model"
	"github.com/rushteam/fleetrank/pipeline"
	"github.com/rushteam/fleetrank/pkg/utils"
)

// ModelNode 是调用 Model 批量打分的排序 Node。
// - 一次性把所有 Item 的特征交给模型（本地模型或远程模型服务）
// - 写入 labels：rank_model
// - 只更新 item.Score，不排序（排序由 rerank.bucket 负责，以保证检修记录保持输入顺序）
//
// 模型报错、返回长度与输入不一致、或返回 NaN 时，整批以 SCORING_ERROR 失败。
type ModelNode struct {
	Model model.Model
}

func (n *ModelNode) Name() string        { return "rank.model" }
func (n *ModelNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ModelNode) Process(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	if n.Model == nil {
		return nil, core.NewScoringError("no model configured")
	}

	// 收集所有有效的特征
	validItems := make([]*core.Item, 0, len(items))
	rows := make([][]float64, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.Features == nil {
			return nil, core.NewScoringError(fmt.Sprintf("record %d: features not prepared", it.Index))
		}
		validItems = append(validItems, it)
		rows = append(rows, it.Features)
	}

	scores, err := n.Model.Predict(ctx, rows)
	if err != nil {
		return nil, core.NewScoringError(fmt.Sprintf("model %s predict failed", n.Model.Name())).WithCause(err)
	}
	if len(scores) != len(rows) {
		return nil, core.NewScoringError(fmt.Sprintf("model %s returned %d scores for %d rows", n.Model.Name(), len(scores), len(rows)))
	}

	for i, it := range validItems {
		if math.IsNaN(scores[i]) {
			return nil, core.NewScoringError(fmt.Sprintf("model %s returned NaN for record %d", n.Model.Name(), it.Index))
		}
		it.Score = scores[i]
		it.PutLabel("rank_model", utils.Label{Value: n.Model.Name(), Source: "rank"})
	}

	rctx.Logger.Debug().Str("model", n.Model.Name()).Int("rows", len(rows)).Msg("records scored")
	return items, nil
}
