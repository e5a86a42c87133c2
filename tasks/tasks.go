// Package tasks holds the named operations that can be invoked on the host project.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/project"
	"github.com/daedaleanai/hbc/util"
)

// Action is the body of a task.
type Action func(ctx context.Context) error

// Task is a named operation.
type Task struct {
	Name        string
	Description string
	Action      Action
}

// Registry maps task names to tasks.
type Registry struct {
	tasks util.OrderedMap[string, Task]
}

func NewRegistry() *Registry {
	return &Registry{tasks: util.NewOrderedMap[string, Task]()}
}

// Register adds a task. Names are unique.
func (r *Registry) Register(name, description string, action Action) error {
	if name == "" {
		return fmt.Errorf("task without a name")
	}
	if action == nil {
		return fmt.Errorf("task '%s' has no action", name)
	}
	if _, exists := r.tasks.Lookup(name); exists {
		return fmt.Errorf("cannot add task '%s' as a task with that name already exists", name)
	}
	r.tasks.Insert(name, Task{Name: name, Description: description, Action: action})
	return nil
}

// Lookup returns the task registered under `name`.
func (r *Registry) Lookup(name string) (Task, bool) {
	return r.tasks.Lookup(name)
}

// Tasks returns all tasks ordered by name.
func (r *Registry) Tasks() []Task {
	return r.tasks.Values()
}

// Run runs the task registered under `name`.
func (r *Registry) Run(ctx context.Context, name string) error {
	task, ok := r.tasks.Lookup(name)
	if !ok {
		return fmt.Errorf("task '%s' not found", name)
	}
	log.Debug("Running task '%s'.\n", name)
	if err := task.Action(ctx); err != nil {
		return fmt.Errorf("task '%s' failed: %w", name, err)
	}
	return nil
}

// RegisterCleanup registers the task `name` that deletes the output root of `layout` together
// with everything below it. Running it again once the directory is gone succeeds.
func RegisterCleanup(r *Registry, layout project.Layout, name string) error {
	return r.Register(name, "Deletes the build output directory", func(ctx context.Context) error {
		return removeOutputRoot(layout)
	})
}

func removeOutputRoot(layout project.Layout) error {
	if layout.OutputRoot == "" {
		return fmt.Errorf("output directory has not been relocated yet")
	}
	root := filepath.Clean(layout.OutputRoot)
	if root == filepath.Dir(root) {
		return fmt.Errorf("refusing to delete filesystem root '%s'", root)
	}
	if layout.ProjectRoot != "" {
		contains, err := isAncestorOrSelf(root, layout.ProjectRoot)
		if err != nil {
			return fmt.Errorf("refusing to delete '%s': %w", root, err)
		}
		if contains {
			return fmt.Errorf("refusing to delete '%s' as it contains the project itself", root)
		}
	}

	if !util.DirExists(root) && !util.FileExists(root) {
		log.Debug("Output directory '%s' does not exist. Nothing to do.\n", root)
		return nil
	}
	log.Debug("Removing output directory '%s'.\n", root)
	return os.RemoveAll(root)
}

// isAncestorOrSelf reports whether `p` is `dir` or lies below it. Both paths are made absolute
// first so that relative and absolute paths compare correctly.
func isAncestorOrSelf(dir, p string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, err
	}
	return rel == "." || (rel != ".." && !startsWithParent(rel)), nil
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
