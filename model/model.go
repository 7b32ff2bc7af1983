package model

import "context"

// Model 是排序阶段的最小抽象：输入特征矩阵，输出与行一一对应的分数。
// 具体实现可以是本地模型（线性/树集成）或远程模型服务（HTTP）。
//
// 约定：
//   - 返回切片长度必须等于 rows 的行数，顺序一致
//   - 模型加载后只读，Predict 可被重复调用且结果确定
type Model interface {
	Name() string
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}

// Func 把普通函数适配为 Model，常用于测试桩或嵌入式调用方注入自己的打分逻辑。
type Func struct {
	ModelName string
	Fn        func(ctx context.Context, rows [][]float64) ([]float64, error)
}

func (f Func) Name() string {
	if f.ModelName == "" {
		return "func"
	}
	return f.ModelName
}

func (f Func) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	return f.Fn(ctx, rows)
}
