package ptn

import (
	"github.com/expr-lang/expr"
	"golang.org/x/exp/constraints"
)

// ExprCondition compiles an expr-lang expression into a Condition. The
// program is compiled once and evaluated against the transition's current
// state on every tick:
//
//	id       the transition identifier, rendered as a string
//	ready    whether every ingoing place covers its weight
//	ingoing  map of ingoing place identifier (string) to token count
//	outgoing map of outgoing place identifier (string) to token count
//
// For example:
//
//	cond, err := ptn.ExprCondition[string, uint32](`ready && ingoing["stock"] > 2`)
//	t.AutoFire(cond)
//
// A runtime evaluation error makes the condition report false.
func ExprCondition[K comparable, C constraints.Unsigned](src string) (Condition[K, C], error) {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, err
	}
	return func(t *Transition[K, C]) bool {
		out, err := expr.Run(program, t.exprEnv())
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}, nil
}
