package core

import "github.com/rs/zerolog"

// RankContext 承载单次排序调用的上下文信息，贯穿整个 Pipeline 透传。
type RankContext struct {
	// RunID 标识一次调用，写入每条日志
	RunID string

	// Logger 为空值时不输出任何日志
	Logger zerolog.Logger
}

// NewRankContext 创建一个不输出日志的上下文。
func NewRankContext(runID string) *RankContext {
	return &RankContext{
		RunID:  runID,
		Logger: zerolog.Nop(),
	}
}
