package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Decision 是列车在本调度周期内的运营分配。
type Decision string

const (
	DecisionRevenue     Decision = "Revenue"     // 正线载客运营
	DecisionStandby     Decision = "Standby"     // 备用
	DecisionMaintenance Decision = "Maintenance" // 检修
)

// 输入记录字段名。
const (
	FieldFitnessRSDays  = "fitness_rs_days"
	FieldFitnessSigDays = "fitness_sig_days"
	FieldFitnessTelDays = "fitness_tel_days"
	FieldBrandingHours  = "branding_hours"
	FieldMileageKM      = "mileage_km"
	FieldCleaningSlots  = "cleaning_slots"
	FieldStablingScore  = "stabling_score"
	FieldJobCardStatus  = "job_card_status"

	FieldPredictedScore = "predicted_score"
	FieldDecision       = "decision"
)

// job_card_status 的合法取值。
const (
	JobCardOpen   = "open"
	JobCardClosed = "closed"
)

// TrainRecord 是单列车单日的输入记录。
// Fields 原样保留输入对象的全部属性（包括 trainset_id、date 等非特征字段），
// 数值以 json.Number 保存，避免透传字段丢失精度。
type TrainRecord struct {
	Fields map[string]any
}

// NewTrainRecord 由属性字典构建记录（会复制一份，调用方后续修改不影响记录）。
func NewTrainRecord(fields map[string]any) TrainRecord {
	return TrainRecord{Fields: maps.Clone(fields)}
}

// Get 返回字段原始值；字段缺失或为 null 时 ok 为 false。
func (r TrainRecord) Get(key string) (any, bool) {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String 返回字符串字段；缺失或非字符串时 ok 为 false。
func (r TrainRecord) String(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (r *TrainRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("train record must be a JSON object")
	}
	r.Fields = fields
	return nil
}

func (r TrainRecord) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// ScoredRecord 是 TrainRecord 加上预测分数与分配结果。
// 一次排序调用内构建，构建后不再修改。
type ScoredRecord struct {
	Train          TrainRecord
	PredictedScore Score
	Decision       Decision
}

func (s ScoredRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Train.Fields)+2)
	maps.Copy(out, s.Train.Fields)
	out[FieldPredictedScore] = s.PredictedScore
	out[FieldDecision] = s.Decision
	return json.Marshal(out)
}

func (s *ScoredRecord) UnmarshalJSON(data []byte) error {
	var train TrainRecord
	if err := train.UnmarshalJSON(data); err != nil {
		return err
	}
	if raw, ok := train.Fields[FieldPredictedScore]; ok {
		b, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		if err := s.PredictedScore.UnmarshalJSON(b); err != nil {
			return err
		}
		delete(train.Fields, FieldPredictedScore)
	}
	if d, ok := train.Fields[FieldDecision].(string); ok {
		s.Decision = Decision(d)
		delete(train.Fields, FieldDecision)
	}
	s.Train = train
	return nil
}
