package engine

import (
	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/table"
)

// Filter keeps the rows of t that satisfy every condition.
func Filter(t *table.Table, conds []ast.Condition, opts ...Option) (*table.Table, error) {
	cfg := applyOptions(opts)
	if len(conds) == 0 {
		return nil, table.Errorf(table.ErrConfig, "filter: no conditions")
	}

	pred, err := CompileAll(t, conds)
	if err != nil {
		return nil, err
	}

	result := t.Filter(pred)
	cfg.logger.Info("data filtered", "original", t.Len(), "filtered", result.Len())
	return result, nil
}
