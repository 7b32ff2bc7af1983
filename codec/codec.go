// Package codec 负责输入输出文档的编解码：
// 输入是列车记录的 JSON 数组，输出是带 predicted_score 与 decision 的 JSON 数组。
package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/schemas"
)

// ReadRecords 读取完整的输入文档并解码；必须整个数组到齐后才开始处理。
func ReadRecords(r io.Reader) ([]core.TrainRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.NewMalformedInputError("read input").WithCause(err)
	}
	return DecodeRecords(data)
}

// DecodeRecords 校验并解码输入文档。
// 非法 JSON、非对象数组、或数值字段类型错误都返回 MALFORMED_INPUT；
// 字段缺失与类别取值交给特征准备阶段处理。
func DecodeRecords(data []byte) ([]core.TrainRecord, error) {
	if !json.Valid(data) {
		return nil, core.NewMalformedInputError("input is not valid JSON")
	}
	if err := schemas.ValidateTrainRecords(data); err != nil {
		return nil, core.NewMalformedInputError("input does not match the train records schema").WithCause(err)
	}

	var records []core.TrainRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, core.NewMalformedInputError("decode train records").WithCause(err)
	}
	if records == nil {
		records = []core.TrainRecord{}
	}
	return records, nil
}

// EncodeScored 把排序结果编码为 JSON 数组；空结果编码为 []。
// 负无穷分数编码为字符串 "-Infinity"。
func EncodeScored(records []core.ScoredRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []core.ScoredRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteScored 先在内存中完成编码再写出，编码失败时不会写出任何字节。
func WriteScored(w io.Writer, records []core.ScoredRecord, pretty bool) error {
	data, err := EncodeScored(records, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// DecodeScored 解析排序结果文档，供下游消费方或测试使用。
func DecodeScored(data []byte) ([]core.ScoredRecord, error) {
	var out []core.ScoredRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
