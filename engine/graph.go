package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/daedaleanai/hbc/project"
)

// graph orders subproject evaluation. An edge from `a` to `b` means that `b` is evaluated after `a`.
type graph struct {
	subprojects []project.Subproject
	index       map[string]int
	deps        []map[int]bool
}

func newGraph(subprojects []project.Subproject) *graph {
	g := &graph{
		subprojects: subprojects,
		index:       make(map[string]int, len(subprojects)),
		deps:        make([]map[int]bool, len(subprojects)),
	}
	for i, s := range subprojects {
		g.index[s.ProjectPath()] = i
		g.deps[i] = map[int]bool{}
	}
	return g
}

func (g *graph) addEdge(fromPath, toPath string) error {
	from, ok := g.index[fromPath]
	if !ok {
		return fmt.Errorf("project with path '%s' could not be found", fromPath)
	}
	to, ok := g.index[toPath]
	if !ok {
		return fmt.Errorf("project with path '%s' could not be found", toPath)
	}
	if from == to {
		return nil
	}
	g.deps[to][from] = true
	return nil
}

// order returns a topological order of the subprojects. Among subprojects whose dependencies are
// all evaluated, the one declared first goes first.
func (g *graph) order() ([]project.Subproject, error) {
	remaining := make([]int, len(g.deps))
	dependents := make([][]int, len(g.deps))
	for to, deps := range g.deps {
		remaining[to] = len(deps)
		for from := range deps {
			dependents[from] = append(dependents[from], to)
		}
	}

	ready := []int{}
	for i, n := range remaining {
		if n == 0 {
			ready = append(ready, i)
		}
	}

	result := make([]project.Subproject, 0, len(g.subprojects))
	for len(ready) > 0 {
		sort.Ints(ready)
		next := ready[0]
		ready = ready[1:]
		result = append(result, g.subprojects[next])
		for _, dependent := range dependents[next] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(result) != len(g.subprojects) {
		cycle := []string{}
		for i, n := range remaining {
			if n > 0 {
				cycle = append(cycle, g.subprojects[i].ProjectPath())
			}
		}
		return nil, fmt.Errorf("circular evaluation order involving projects %s", strings.Join(cycle, ", "))
	}
	return result, nil
}
