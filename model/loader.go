package model

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/fleetrank/core"
)

// 模型文件中的 type 取值。
const (
	TypeLinear = "linear"
	TypeForest = "forest"
	TypeRPC    = "rpc"
)

// Artifact 是持久化的模型描述文件（JSON 或 YAML，JSON 作为 YAML 子集统一解析）。
//
// linear：
//
//	{"type": "linear", "bias": 0.4, "weights": [0.1, 0.1, 0.1, 0.02, -0.0001, 0.3, 0.05, 2.0]}
//
// forest（子节点下标必须大于父节点，即先序编号）：
//
//	{"type": "forest", "aggregate": "mean", "trees": [{"nodes": [
//	    {"feature": 7, "threshold": 0.5, "left": 1, "right": 2},
//	    {"leaf": true, "value": 0.1},
//	    {"leaf": true, "value": 0.9}]}]}
//
// rpc：
//
//	{"type": "rpc", "endpoint": "http://model:8080/predict", "timeout": "3s", "batch_size": 64, "max_concurrent": 4}
//
// 任意类型都可附带 scaler（每列一项 {mean, std}），打分前先做标准化。
type Artifact struct {
	Type string `yaml:"type" validate:"required,oneof=linear forest rpc"`
	Name string `yaml:"name"`

	Bias    float64   `yaml:"bias"`
	Weights []float64 `yaml:"weights"`

	BaseScore float64 `yaml:"base_score"`
	Aggregate string  `yaml:"aggregate" validate:"omitempty,oneof=mean sum"`
	Trees     []Tree  `yaml:"trees"`

	Endpoint      string `yaml:"endpoint" validate:"omitempty,url"`
	Timeout       string `yaml:"timeout"`
	BatchSize     int    `yaml:"batch_size" validate:"gte=0"`
	MaxConcurrent int    `yaml:"max_concurrent" validate:"gte=0"`

	// Scaler 可选，按列给出训练时的标准化参数
	Scaler []ScalerParams `yaml:"scaler"`
}

// Load 在进程启动时从文件加载模型；numFeatures 是特征向量长度。
// 任何读取、解析或结构问题都返回 MODEL_LOAD_ERROR。
func Load(path string, numFeatures int) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewModelLoadError(fmt.Sprintf("read model artifact %s", path)).WithCause(err)
	}
	m, err := Parse(data, numFeatures)
	if err != nil {
		return nil, core.NewModelLoadError(fmt.Sprintf("load model artifact %s", path)).WithCause(err)
	}
	return m, nil
}

// Parse 从内存中的描述文档构建模型。
func Parse(data []byte, numFeatures int) (Model, error) {
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, core.NewModelLoadError("parse model artifact").WithCause(err)
	}
	if err := validator.New().Struct(&a); err != nil {
		return nil, core.NewModelLoadError("invalid model artifact").WithCause(err)
	}

	m, err := a.build(numFeatures)
	if err != nil {
		return nil, core.NewModelLoadError(fmt.Sprintf("build %s model", a.Type)).WithCause(err)
	}
	if len(a.Scaler) == 0 {
		return m, nil
	}
	if len(a.Scaler) != numFeatures {
		return nil, core.NewModelLoadError(fmt.Sprintf("scaler has %d columns, expected %d", len(a.Scaler), numFeatures))
	}
	sm, err := NewScaledModel(m, a.Scaler)
	if err != nil {
		return nil, core.NewModelLoadError("build scaler").WithCause(err)
	}
	return sm, nil
}

func (a *Artifact) build(numFeatures int) (Model, error) {
	switch a.Type {
	case TypeLinear:
		if len(a.Weights) != numFeatures {
			return nil, fmt.Errorf("expected %d weights, got %d", numFeatures, len(a.Weights))
		}
		return &LinearModel{Bias: a.Bias, Weights: a.Weights}, nil

	case TypeForest:
		aggregate := a.Aggregate
		if aggregate == "" {
			aggregate = AggregateMean
		}
		f := &ForestModel{
			BaseScore:   a.BaseScore,
			Aggregate:   aggregate,
			Trees:       a.Trees,
			NumFeatures: numFeatures,
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		return f, nil

	case TypeRPC:
		if a.Endpoint == "" {
			return nil, fmt.Errorf("endpoint is required")
		}
		timeout := 5 * time.Second
		if a.Timeout != "" {
			d, err := time.ParseDuration(a.Timeout)
			if err != nil {
				return nil, fmt.Errorf("timeout: %w", err)
			}
			timeout = d
		}
		rm := NewRemoteModel(a.Name, a.Endpoint, timeout)
		rm.BatchSize = a.BatchSize
		rm.MaxConcurrent = a.MaxConcurrent
		return rm, nil
	}
	return nil, fmt.Errorf("unknown model type %q", a.Type)
}
