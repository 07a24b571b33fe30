package hcl_adapter

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes the process environment as the `env` map and the
// functions a taskfile may call.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envValue(os.Environ()),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"distinct": stdlib.DistinctFunc,
			"format":   stdlib.FormatFunc,
			"join":     stdlib.JoinFunc,
			"lookup":   stdlib.LookupFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

func envValue(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}
