package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/fleetrank/core"
	"github.com/rushteam/fleetrank/feature"
	"github.com/rushteam/fleetrank/pkg/dsl"
	"github.com/rushteam/fleetrank/pkg/utils"
)

// JobCardRule：存在未关闭的检修工单（编码后的 job_card_status == 0）即强制检修。
type JobCardRule struct{}

func (JobCardRule) Name() string { return "job_card_open" }

func (JobCardRule) Match(_ context.Context, _ *core.RankContext, item *core.Item) (bool, error) {
	if len(item.Features) <= feature.JobCardColumn {
		return false, fmt.Errorf("record %d: features not prepared", item.Index)
	}
	return item.Features[feature.JobCardColumn] == 0, nil
}

// ExprRule 用 CEL 表达式描述额外的检修条件，例如 `train.fitness_rs_days <= 0`。
type ExprRule struct {
	rule *dsl.Rule
}

// NewExprRule 编译表达式；name 为空时用表达式本身作为名称。
func NewExprRule(name, expr string) (*ExprRule, error) {
	if name == "" {
		name = expr
	}
	r, err := dsl.Compile(name, expr)
	if err != nil {
		return nil, err
	}
	return &ExprRule{rule: r}, nil
}

// NewExprRules 批量编译表达式。
func NewExprRules(exprs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(exprs))
	for _, expr := range exprs {
		r, err := NewExprRule("", expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (r *ExprRule) Name() string { return r.rule.Name }

func (r *ExprRule) Match(_ context.Context, _ *core.RankContext, item *core.Item) (bool, error) {
	var fields map[string]any
	if item.Record != nil {
		fields = item.Record.Fields
	}
	return r.rule.Evaluate(fields, utils.LabelValues(item.Labels))
}
