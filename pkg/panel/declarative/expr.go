package declarative

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
)

// ExpressionKey is the error value key for predicate expressions
const ExpressionKey = "expression"

func compileShowIf(code string) (option.ShowIfFunc, error) {
	program, err := compile(code, showIfEnv(option.Config{}))
	if err != nil {
		return nil, err
	}
	return func(current option.Config) bool {
		return runBool(program, showIfEnv(current))
	}, nil
}

func compileShouldApply(code string) (option.ShouldApplyFunc, error) {
	program, err := compile(code, shouldApplyEnv(&option.Field{}))
	if err != nil {
		return nil, err
	}
	return func(f *option.Field) bool {
		return runBool(program, shouldApplyEnv(f))
	}, nil
}

func compile(code string, env map[string]any) (*vm.Program, error) {
	program, err := expr.Compile(code, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, goerr.Wrap(option.ErrConfig, "invalid predicate expression",
			goerr.V(ExpressionKey, code), goerr.V("error", err.Error()))
	}
	return program, nil
}

// runBool treats a runtime error as false
func runBool(program *vm.Program, env map[string]any) bool {
	out, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func showIfEnv(current option.Config) map[string]any {
	if current == nil {
		current = option.Config{}
	}
	return map[string]any{"config": map[string]any(current)}
}

func shouldApplyEnv(f *option.Field) map[string]any {
	if f == nil {
		f = &option.Field{}
	}
	labels := make(map[string]any, len(f.Labels))
	for k, v := range f.Labels {
		labels[k] = v
	}
	return map[string]any{
		"field": map[string]any{
			"name":         f.Name,
			"display_name": f.Title(),
			"type":         f.Type.String(),
			"labels":       labels,
			"frame_ref_id": f.FrameRefID,
		},
	}
}
