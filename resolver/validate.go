package resolver

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/node"
)

// Validator checks resolved nodes against the Required fields and Rules of
// their definition. Compiled rule programs are cached by expression; a
// Validator is safe for concurrent use.
type Validator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewValidator creates a Validator whose rules see the node as the CEL
// variable `node`, a map from string to dyn.
func NewValidator() (*Validator, error) {
	env, err := cel.NewEnv(
		cel.Variable("node", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &Validator{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// MissingRequired returns the required fields of def that n lacks or holds
// empty, in declaration order.
func MissingRequired(def Definition, n node.Node) []string {
	var missing []string
	for _, key := range def.Required {
		v, ok := n[key]
		if !ok || v == nil || v == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Validate reports the first problem found with n: missing required fields
// (ErrMissingRequired) or a rule that does not hold (ErrRuleFailed).
func (v *Validator) Validate(def Definition, n node.Node) error {
	if missing := MissingRequired(def, n); len(missing) > 0 {
		return schemaorg.NewValidationError("Validator.Validate",
			fmt.Errorf("%w: %v", schemaorg.ErrMissingRequired, missing)).
			WithContext(map[string]any{"id": n.ID(), "missing": missing})
	}

	if len(def.Rules) == 0 {
		return nil
	}

	vars := map[string]any{"node": toCEL(n)}
	for _, rule := range def.Rules {
		if err := v.eval(rule, vars); err != nil {
			return schemaorg.NewValidationError("Validator.Validate", err).
				WithContext(map[string]any{"id": n.ID(), "rule": rule.Name})
		}
	}
	return nil
}

func (v *Validator) eval(rule Rule, vars map[string]any) error {
	prg, err := v.program(rule.Expr)
	if err != nil {
		return fmt.Errorf("%w: rule %q: %w", schemaorg.ErrRuleFailed, rule.Name, err)
	}

	out, _, err := prg.Eval(vars)
	if err != nil {
		return fmt.Errorf("%w: rule %q: %w", schemaorg.ErrRuleFailed, rule.Name, err)
	}

	ok, isBool := out.Value().(bool)
	if !isBool {
		return fmt.Errorf("%w: rule %q returned %T, want bool", schemaorg.ErrRuleFailed, rule.Name, out.Value())
	}
	if !ok {
		return fmt.Errorf("%w: rule %q (%s) is false", schemaorg.ErrRuleFailed, rule.Name, rule.Expr)
	}
	return nil
}

func (v *Validator) program(expr string) (cel.Program, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if prg, ok := v.programs[expr]; ok {
		return prg, nil
	}

	ast, iss := v.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile: %w", iss.Err())
	}
	prg, err := v.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}

	v.programs[expr] = prg
	return prg, nil
}

// toCEL converts a node into plain maps and slices the CEL runtime adapts natively.
func toCEL(v any) any {
	switch t := v.(type) {
	case node.Node:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = toCEL(e)
		}
		return out
	case map[string]any:
		return toCEL(node.Node(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toCEL(e)
		}
		return out
	case []node.Node:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toCEL(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toCEL(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
