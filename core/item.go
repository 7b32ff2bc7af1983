package core

import (
	"maps"

	"github.com/rushteam/fleetrank/pkg/utils"
)

// Item 是排序链路中的统一承载结构：原始记录、特征向量、分数、分配结果、标签。
// Labels 用于解释（如强制检修原因）；Score 用于排序决策。
// Record 只读，链路中的 Node 只改写 Item 自身字段。
type Item struct {
	Index    int // 在输入中的位置，用于保持稳定顺序
	Record   *TrainRecord
	Features []float64
	Score    float64
	Decision Decision
	Labels   map[string]utils.Label
}

func NewItem(index int, record *TrainRecord) *Item {
	return &Item{
		Index:  index,
		Record: record,
		Labels: make(map[string]utils.Label),
	}
}

// NewItems 为每条记录创建一个 Item，顺序与输入一致。
func NewItems(records []TrainRecord) []*Item {
	items := make([]*Item, len(records))
	for i := range records {
		items[i] = NewItem(i, &records[i])
	}
	return items
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// IsMaintenance 判断 Item 是否已被强制检修。
func (it *Item) IsMaintenance() bool {
	return Score(it.Score).IsMaintenance()
}

// Scored 生成只读的 ScoredRecord，字段字典为独立副本。
func (it *Item) Scored() ScoredRecord {
	var train TrainRecord
	if it.Record != nil {
		train = TrainRecord{Fields: maps.Clone(it.Record.Fields)}
	}
	return ScoredRecord{
		Train:          train,
		PredictedScore: Score(it.Score),
		Decision:       it.Decision,
	}
}
