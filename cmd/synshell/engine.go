package main

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/enriquepablo/syntreenet/internal/synconfig"
	"github.com/enriquepablo/syntreenet/pkg/engine"
	"github.com/enriquepablo/syntreenet/pkg/grammar"
)

// buildEngine compiles cfg's grammar source and wires the resulting
// pkg/grammar.Grammar into a fresh pkg/engine.Engine, applying the logger
// and any grammar-level overrides cfg carries.
func buildEngine(cfg synconfig.Config, logger *zap.Logger) (*engine.Engine, error) {
	var opts []grammar.Option
	if cfg.FactRule != "" {
		opts = append(opts, grammar.WithFactRule(cfg.FactRule))
	}
	if cfg.FactSep != "" {
		opts = append(opts, grammar.WithFactSep(cfg.FactSep))
	}
	if cfg.VarPattern != "" {
		re, err := regexp.Compile(cfg.VarPattern)
		if err != nil {
			return nil, fmt.Errorf("synshell: compiling var_pattern: %w", err)
		}
		opts = append(opts, grammar.WithVarPattern(re))
	}
	if cfg.VarRangeExpr != "" {
		re, err := regexp.Compile(cfg.VarRangeExpr)
		if err != nil {
			return nil, fmt.Errorf("synshell: compiling var_range_expr: %w", err)
		}
		opts = append(opts, grammar.WithVarRangePattern(re))
	}

	g, err := grammar.Compile(cfg.Grammar, opts...)
	if err != nil {
		return nil, fmt.Errorf("synshell: compiling grammar: %w", err)
	}

	e, err := engine.New(g, engine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("synshell: building engine: %w", err)
	}
	return e, nil
}
