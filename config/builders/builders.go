package builders

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/fleetrank/config"
	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/feature"
	"github.com/rushteam/fleetrank/filter"
	"github.com/rushteam/fleetrank/model"
	"github.com/rushteam/fleetrank/pipeline"
	"github.com/rushteam/fleetrank/pkg/conv"
	"github.com/rushteam/fleetrank/rank"
	"github.com/rushteam/fleetrank/rerank"
)

func init() {
	config.Register(config.NodePrepare, BuildPrepareNode)
	config.Register(config.NodeModel, BuildModelNode)
	config.Register(config.NodeOverride, BuildOverrideNode)
	config.Register(config.NodeBucket, BuildBucketNode)
}

func BuildPrepareNode(_ map[string]any) (pipeline.Node, error) {
	return &feature.PrepareNode{Preparer: feature.NewPreparer()}, nil
}

// BuildModelNode 支持 model_path（模型文件）或内联 model（与模型文件同结构）。
func BuildModelNode(cfg map[string]any) (pipeline.Node, error) {
	if inline, ok := cfg["model"].(map[string]any); ok {
		data, err := yaml.Marshal(inline)
		if err != nil {
			return nil, core.NewModelLoadError("encode inline model").WithCause(err)
		}
		m, err := model.Parse(data, len(feature.Columns))
		if err != nil {
			return nil, err
		}
		return &rank.ModelNode{Model: m}, nil
	}

	path := conv.ConfigGet(cfg, "model_path", "")
	if path == "" {
		return nil, fmt.Errorf("model_path or model not found")
	}
	m, err := model.Load(path, len(feature.Columns))
	if err != nil {
		return nil, err
	}
	return &rank.ModelNode{Model: m}, nil
}

func BuildOverrideNode(cfg map[string]any) (pipeline.Node, error) {
	var exprs []string
	if raw, ok := cfg["rules"]; ok {
		exprs = conv.SliceAnyToString(raw)
		if exprs == nil {
			return nil, fmt.Errorf("rules must be a list of expressions")
		}
	}
	rules, err := filter.NewExprRules(exprs)
	if err != nil {
		return nil, err
	}
	return &filter.OverrideNode{Extra: rules}, nil
}

func BuildBucketNode(cfg map[string]any) (pipeline.Node, error) {
	slots := conv.ConfigGetInt64(cfg, "revenue_slots", core.DefaultRevenueSlotCount)
	if slots < 0 {
		return nil, fmt.Errorf("revenue_slots must be >= 0, got %d", slots)
	}
	return &rerank.BucketNode{RevenueSlots: int(slots)}, nil
}
