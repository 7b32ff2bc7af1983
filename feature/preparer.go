package feature

import (
	"fmt"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/pkg/conv"
)

// Columns 是模型要求的特征顺序，共 8 列。最后一列是编码后的 job_card_status。
var Columns = []string{
	core.FieldFitnessRSDays,
	core.FieldFitnessSigDays,
	core.FieldFitnessTelDays,
	core.FieldBrandingHours,
	core.FieldMileageKM,
	core.FieldCleaningSlots,
	core.FieldStablingScore,
	core.FieldJobCardStatus,
}

// JobCardColumn 是编码后 job_card_status 在特征向量中的下标。
const JobCardColumn = 7

// Preparer 把原始记录转换为模型需要的定长数值向量。
//
// 规则：
//   - 按 Columns 的固定顺序取 8 个字段，多余字段忽略
//   - 缺失或为 null 的字段返回 MISSING_FEATURE
//   - 数值字段不是数字时返回 MALFORMED_INPUT
//   - job_card_status 由 Encoder 严格编码，未知取值返回 INVALID_CATEGORY
//
// Prepare 不修改调用方传入的记录。
type Preparer struct {
	Encoder *CategoryEncoder
}

// NewPreparer 创建使用默认 job_card_status 编码的 Preparer
func NewPreparer() *Preparer {
	return &Preparer{Encoder: NewJobCardEncoder()}
}

// Prepare 生成特征矩阵，行与 records 一一对应。
func (p *Preparer) Prepare(records []core.TrainRecord) ([][]float64, error) {
	matrix := make([][]float64, len(records))
	for i := range records {
		row, err := p.PrepareRecord(records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		matrix[i] = row
	}
	return matrix, nil
}

// PrepareRecord 生成单条记录的特征向量。
func (p *Preparer) PrepareRecord(rec core.TrainRecord) ([]float64, error) {
	encoder := p.Encoder
	if encoder == nil {
		encoder = NewJobCardEncoder()
	}

	row := make([]float64, len(Columns))
	for i, key := range Columns {
		v, ok := rec.Get(key)
		if !ok {
			return nil, core.NewMissingFeatureError(fmt.Sprintf("missing required feature %q", key))
		}
		if key == encoder.Key {
			enc, err := encoder.Encode(v)
			if err != nil {
				return nil, err
			}
			row[i] = enc
			continue
		}
		f, ok := conv.ToFloat64(v)
		if !ok {
			return nil, core.NewMalformedInputError(fmt.Sprintf("feature %q must be numeric, got %v", key, quote(v)))
		}
		row[i] = f
	}
	return row, nil
}
