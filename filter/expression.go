package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/sarkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义可用变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("user_id", cel.StringType),
			cel.Variable("item_id", cel.StringType),
			cel.Variable("score", cel.DoubleType),
			cel.Variable("rank", cel.IntType),
		)
	})
	return celEnv, celEnvErr
}

// Expression 是基于 CEL (Common Expression Language) 的表达式过滤器。
// 表达式返回 true 表示过滤掉该条推荐结果。
//
// 可用变量：
//   - user_id / item_id：字符串
//   - score：该条结果的得分
//   - rank：该条结果在所属用户列表内的排名（从 0 开始）
//
// 示例：
//   - `score < 0.1` → 过滤低分结果
//   - `rank >= 10 && score < 0.5` → 列表尾部只保留高分
//   - `item_id.startsWith("promo:")` → 过滤某类物品
type Expression struct {
	expr string
	prg  cel.Program
}

// NewExpression 编译表达式并返回过滤器；编译只做一次，
// 之后的 ShouldFilter 调用直接求值，线程安全。
func NewExpression(expr string) (*Expression, error) {
	if expr == "" {
		return nil, core.NewConfigurationError(core.ModuleFilter, "filter: empty expression")
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("filter: cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewConfigurationError(core.ModuleFilter,
			fmt.Sprintf("filter: compile expression %q: %v", expr, issues.Err()))
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter: cel program: %w", err)
	}

	return &Expression{expr: expr, prg: prg}, nil
}

func (f *Expression) Name() string {
	return "filter.expression"
}

func (f *Expression) ShouldFilter(_ context.Context, rec core.Recommendation, rank int) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"user_id": rec.UserID,
		"item_id": rec.ItemID,
		"score":   rec.Score,
		"rank":    rank,
	})
	if err != nil {
		return false, fmt.Errorf("filter: eval %q: %w", f.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter: expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

var _ Filter = (*Expression)(nil)
