package filter

import (
	"context"

	"github.com/rushteam/fleetrank/core"
)

// Rule 是强制检修规则的抽象接口，用于判断一条记录是否必须进入检修。
// 返回 true 表示强制检修（分数置为负无穷），false 表示交给模型分数决定。
type Rule interface {
	// Name 返回规则名称，写入 override 标签
	Name() string

	// Match 判断 item 是否命中规则
	Match(ctx context.Context, rctx *core.RankContext, item *core.Item) (bool, error)
}
