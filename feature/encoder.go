package feature

import (
	"fmt"
	"sort"

	"github.com/rushteam/fleetrank/core"
)

// CategoryEncoder 是严格的 Label 编码器：把类别字符串映射为数值。
// 与宽松编码不同，不认识的类别直接报错，不会静默编码为 0 或缺失值。
type CategoryEncoder struct {
	Key     string             // 特征名
	Mapping map[string]float64 // 类别 -> 数值
}

// NewCategoryEncoder 创建类别编码器
func NewCategoryEncoder(key string, mapping map[string]float64) *CategoryEncoder {
	return &CategoryEncoder{Key: key, Mapping: mapping}
}

// NewJobCardEncoder 创建 job_card_status 编码器："open" -> 0，"closed" -> 1。
func NewJobCardEncoder() *CategoryEncoder {
	return NewCategoryEncoder(core.FieldJobCardStatus, map[string]float64{
		core.JobCardOpen:   0,
		core.JobCardClosed: 1,
	})
}

// Encode 编码单个值；值不是已知类别（包括非字符串）时返回 INVALID_CATEGORY。
func (e *CategoryEncoder) Encode(value any) (float64, error) {
	s, ok := value.(string)
	if ok {
		if v, known := e.Mapping[s]; known {
			return v, nil
		}
	}
	return 0, core.NewInvalidCategoryError(
		fmt.Sprintf("%s: unrecognized value %v (allowed: %v)", e.Key, quote(value), e.Categories()))
}

// Categories 返回排序后的合法类别。
func (e *CategoryEncoder) Categories() []string {
	out := make([]string, 0, len(e.Mapping))
	for k := range e.Mapping {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func quote(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
