package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/fleetrank/pkg/conv"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("train", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Rule 是预编译的 CEL 布尔表达式，用于对单条列车记录做判定。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：train.fitness_rs_days <= 0 / train.mileage_km > 120000
//   - 字符串：train.depot == "MUTTOM"
//   - 逻辑：train.fitness_sig_days <= 0 || train.fitness_tel_days <= 0
//   - 存在性：has(train.trainset_id) 或 "trainset_id" in train
//   - 标签：label.override == "job_card_open"
//
// 编译一次，多次调用 Evaluate；Program 本身是并发安全的。
type Rule struct {
	Name string
	Expr string
	prg  cel.Program
}

// Compile 编译表达式；语法或类型错误在此处返回，而不是在求值时。
func Compile(name, expr string) (*Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("rule %q: empty expression", name)
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rule %q: compile error: %w", name, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rule %q: program error: %w", name, err)
	}
	return &Rule{Name: name, Expr: expr, prg: prg}, nil
}

// Evaluate 以记录字段与标签为输入执行表达式，返回布尔结果。
// 访问不存在的字段会返回错误，需要时用 has(train.key) 先判断。
func (r *Rule) Evaluate(fields map[string]any, labels map[string]string) (bool, error) {
	train, _ := conv.ToPlain(fields).(map[string]any)
	if train == nil {
		train = map[string]any{}
	}
	if labels == nil {
		labels = map[string]string{}
	}

	out, _, err := r.prg.Eval(map[string]any{
		"train": train,
		"label": labels,
	})
	if err != nil {
		return false, fmt.Errorf("rule %q: eval error: %w", r.Name, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q: expression must return boolean, got %T", r.Name, out.Value())
	}
	return result, nil
}
