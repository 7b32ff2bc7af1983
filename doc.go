// Package fleetrank 是列车日调度排序工具包。
//
// 设计要点：
// - Pipeline-first: 排序逻辑通过 Node 串联（Feature → Rank → Filter → ReRank）
// - Override-first: 未关闭检修工单的列车无论模型分数多高都进入检修
// - Labels-first: 覆盖原因等 labels 全链路透传，便于日志解释
// - 模型可替换: 线性模型、树集成模型或远程模型服务
package fleetrank

import (
	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/pipeline"
	"github.com/rushteam/fleetrank/rank"
)

// 轻量 facade：便于用户直接 import "fleetrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Engine = rank.Engine
type TrainRecord = core.TrainRecord
type ScoredRecord = core.ScoredRecord
type Decision = core.Decision

const (
	KindFeature = pipeline.KindFeature
	KindRank    = pipeline.KindRank
	KindFilter  = pipeline.KindFilter
	KindReRank  = pipeline.KindReRank
)

const (
	DecisionRevenue     = core.DecisionRevenue
	DecisionStandby     = core.DecisionStandby
	DecisionMaintenance = core.DecisionMaintenance
)

// NewEngine 见 rank.NewEngine。
var NewEngine = rank.NewEngine
