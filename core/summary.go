package core

import "fmt"

// Summary 是各分桶的数量统计。
type Summary struct {
	Revenue     int `json:"revenue"`
	Standby     int `json:"standby"`
	Maintenance int `json:"maintenance"`
}

// Summarize 统计排序结果中各分桶的数量。
func Summarize(records []ScoredRecord) Summary {
	var s Summary
	for _, r := range records {
		switch r.Decision {
		case DecisionRevenue:
			s.Revenue++
		case DecisionStandby:
			s.Standby++
		case DecisionMaintenance:
			s.Maintenance++
		}
	}
	return s
}

// Total 返回记录总数。
func (s Summary) Total() int {
	return s.Revenue + s.Standby + s.Maintenance
}

func (s Summary) String() string {
	return fmt.Sprintf("revenue=%d standby=%d maintenance=%d", s.Revenue, s.Standby, s.Maintenance)
}
