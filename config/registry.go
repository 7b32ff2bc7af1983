package config

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/rushteam/fleetrank/pipeline"
)

// 使用配置驱动时，需在 main 或入口处 import _ "github.com/rushteam/fleetrank/config/builders"
// 以触发内置 Node（feature.prepare、rank.model、filter.override、rerank.bucket）的 init 注册。

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
// 各组件在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表构建的 NodeFactory，包含所有通过 Register 注册的 Node 类型。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// 内置 Node 类型。排序链路必须按此顺序各出现一次，rerank.bucket 位于最后：
// 强制检修必须在打分之后，否则模型分数会覆盖负无穷。
const (
	NodePrepare  = "feature.prepare"
	NodeModel    = "rank.model"
	NodeOverride = "filter.override"
	NodeBucket   = "rerank.bucket"
)

var requiredLayout = []string{NodePrepare, NodeModel, NodeOverride, NodeBucket}

// ValidatePipelineConfig 校验 pipeline 配置：node 类型均已注册，且内置 Node 的数量与顺序正确。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return fmt.Errorf("pipeline config is nil")
	}
	nodes := cfg.Pipeline.Nodes

	defaultBuildersMu.RLock()
	for _, nc := range nodes {
		if _, ok := defaultBuilders[nc.Type]; !ok {
			defaultBuildersMu.RUnlock()
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, SupportedTypes())
		}
	}
	defaultBuildersMu.RUnlock()

	pos := make(map[string]int, len(requiredLayout))
	for i, nc := range nodes {
		if !slices.Contains(requiredLayout, nc.Type) {
			continue
		}
		if _, dup := pos[nc.Type]; dup {
			return fmt.Errorf("node %s appears more than once", nc.Type)
		}
		pos[nc.Type] = i
	}
	for _, t := range requiredLayout {
		if _, ok := pos[t]; !ok {
			return fmt.Errorf("pipeline must contain a %s node (layout: %v)", t, requiredLayout)
		}
	}
	for i := 1; i < len(requiredLayout); i++ {
		prev, cur := requiredLayout[i-1], requiredLayout[i]
		if pos[prev] > pos[cur] {
			return fmt.Errorf("node %s must come before %s", prev, cur)
		}
	}
	if pos[NodeBucket] != len(nodes)-1 {
		return fmt.Errorf("node %s must be the last node", NodeBucket)
	}
	return nil
}

// LoadPipeline 读取 pipeline 文件，校验 node 类型与顺序后用 DefaultFactory 构建。
func LoadPipeline(path string) (*pipeline.Pipeline, error) {
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	return cfg.BuildPipeline(DefaultFactory())
}
