package core

import (
	"encoding/json"
	"fmt"
	"math"
)

// 严格 JSON 没有无穷大字面量，±∞ 以字符串记号输出，消费方需按相同约定解析。
const (
	NegativeInfinityToken = "-Infinity"
	PositiveInfinityToken = "Infinity"
)

// MaintenanceScore 是强制检修的哨兵分数。
var MaintenanceScore = math.Inf(-1)

// Score 是预测分数，负无穷表示强制检修。
type Score float64

// IsMaintenance 判断分数是否为检修哨兵。
func (s Score) IsMaintenance() bool {
	return math.IsInf(float64(s), -1)
}

func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsInf(f, -1):
		return json.Marshal(NegativeInfinityToken)
	case math.IsInf(f, 1):
		return json.Marshal(PositiveInfinityToken)
	case math.IsNaN(f):
		return nil, fmt.Errorf("score is NaN")
	}
	return json.Marshal(f)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		switch token {
		case NegativeInfinityToken:
			*s = Score(math.Inf(-1))
		case PositiveInfinityToken:
			*s = Score(math.Inf(1))
		default:
			return fmt.Errorf("unknown score token %q", token)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("score must be a number or an infinity token: %w", err)
	}
	*s = Score(f)
	return nil
}
