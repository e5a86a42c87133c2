// Package engine applies a build configuration record to the subprojects of the host project.
package engine

import (
	"context"
	"fmt"

	"github.com/daedaleanai/hbc/buildconf"
	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/project"
)

// Hook is called once per subproject during evaluation, in evaluation order.
type Hook func(ctx context.Context, sub project.Subproject) error

// Result describes an evaluated subproject.
type Result struct {
	Subproject project.Subproject
	OutputDir  string
	Compiler   buildconf.Effective
}

// Engine evaluates the subprojects of a record.
type Engine struct {
	record buildconf.Record
	layout project.Layout
	order  []project.Subproject
}

// New prepares the evaluation of `record`. The layout must already be relocated, and the
// evaluation order constraints must be satisfiable. Records built in code rather than read with
// buildconf.Load are accepted too, so the record is validated again here.
func New(record buildconf.Record, layout project.Layout) (*Engine, error) {
	if layout.OutputRoot == "" {
		return nil, fmt.Errorf("output directory must be relocated before subprojects are evaluated")
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	g := newGraph(record.Subprojects)
	for _, sub := range record.Subprojects {
		if record.EvaluationDependsOn != "" {
			if err := g.addEdge(record.EvaluationDependsOn, sub.ProjectPath()); err != nil {
				return nil, fmt.Errorf("evaluation order constraint: %w", err)
			}
		}
		for _, dep := range sub.EvaluationDependsOn {
			if err := g.addEdge(dep, sub.ProjectPath()); err != nil {
				return nil, fmt.Errorf("subproject %q: %w", sub.Name, err)
			}
		}
	}

	order, err := g.order()
	if err != nil {
		return nil, err
	}
	return &Engine{record: record, layout: layout, order: order}, nil
}

// Order returns the subprojects in evaluation order.
func (e *Engine) Order() []project.Subproject {
	result := make([]project.Subproject, len(e.order))
	copy(result, e.order)
	return result
}

// Layout returns the directory layout used by the engine.
func (e *Engine) Layout() project.Layout {
	return e.layout
}

// Evaluate evaluates each subproject in order: its output directory is derived, `hook` runs
// (may be nil), then the compiler targets are applied. Evaluation stops at the first error.
func (e *Engine) Evaluate(ctx context.Context, hook Hook) ([]Result, error) {
	results := make([]Result, 0, len(e.order))
	for _, sub := range e.order {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		outputDir, err := e.layout.SubprojectDir(sub.Name)
		if err != nil {
			return results, fmt.Errorf("subproject %q: %w", sub.Name, err)
		}
		log.Debug("Evaluating project '%s' (output '%s').\n", sub.ProjectPath(), outputDir)

		if hook != nil {
			if err := hook(ctx, sub); err != nil {
				return results, fmt.Errorf("evaluating project '%s': %w", sub.ProjectPath(), err)
			}
		}

		results = append(results, Result{
			Subproject: sub,
			OutputDir:  outputDir,
			Compiler:   e.record.ApplyCompilerTargets(sub),
		})
	}
	return results, nil
}
