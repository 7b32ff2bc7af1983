package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// RemoteModel 是通过 HTTP 调用外部模型服务的 Model 实现。
// 适配 sklearn/ONNX 等以 HTTP 暴露的推理服务。
//
// 请求格式（JSON）：
//
//	{"instances": [[f1, f2, ..., f8], ...]}
//
// 响应格式（JSON）：
//
//	{"predictions": [0.85, 0.72, ...]}
//
// BatchSize > 0 时按块切分请求，最多 MaxConcurrent 个块并发；结果按下标写回，
// 与单次请求的输出完全一致。
type RemoteModel struct {
	name          string
	Endpoint      string // 例如 "http://localhost:8080/predict"
	Timeout       time.Duration
	BatchSize     int
	MaxConcurrent int
	Client        *http.Client
}

func NewRemoteModel(name, endpoint string, timeout time.Duration) *RemoteModel {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	if name == "" {
		name = "rpc"
	}
	return &RemoteModel{
		name:     name,
		Endpoint: endpoint,
		Timeout:  timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (m *RemoteModel) Name() string {
	return m.name
}

// Predict 批量预测。任意一个块失败则整体失败。
func (m *RemoteModel) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}

	size := m.BatchSize
	if size <= 0 || size > len(rows) {
		size = len(rows)
	}
	limit := m.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}

	scores := make([]float64, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		g.Go(func() error {
			chunk, err := m.predictChunk(gctx, rows[start:end])
			if err != nil {
				return fmt.Errorf("rows [%d,%d): %w", start, end, err)
			}
			copy(scores[start:end], chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (m *RemoteModel) predictChunk(ctx context.Context, rows [][]float64) ([]float64, error) {
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: m.Timeout}
	}

	jsonData, err := json.Marshal(map[string]any{"instances": rows})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return nil, fmt.Errorf("rpc error: status=%d, read body failed: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("rpc error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Predictions []float64 `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Predictions) != len(rows) {
		return nil, fmt.Errorf("response predictions count mismatch: expected %d, got %d", len(rows), len(result.Predictions))
	}
	return result.Predictions, nil
}
