package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/dag"
	"github.com/specialistvlad/gridtask/internal/env"
)

// ValidateRegistry performs a strict parity check between the taskfile and
// the Go code: every task must be bound to a registered handler, its install
// targets must parse, its calls must name known tasks and the call graph must
// be acyclic.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	bound := make(map[string]bool)
	for _, t := range r.Tasks() {
		if t.handler != "" {
			body, ok := r.handlers[t.handler]
			if !ok {
				errs = append(errs, fmt.Sprintf("task '%s': handler '%s' is not registered", t.Name, t.handler))
				continue
			}
			t.body = body
			bound[t.handler] = true
		}
		if t.body == nil {
			errs = append(errs, fmt.Sprintf("task '%s': no body", t.Name))
		}
		if _, err := env.ParseTargets(t.Install); err != nil {
			errs = append(errs, fmt.Sprintf("task '%s': %v", t.Name, err))
		}
		for _, callee := range t.Calls {
			if _, ok := r.tasks[callee]; !ok {
				errs = append(errs, fmt.Sprintf("task '%s' calls unknown task '%s'", t.Name, callee))
			}
		}
	}

	for name := range r.handlers {
		if !bound[name] {
			logger.Debug("Handler is registered but no task binds to it.", "handler", name)
		}
	}

	if len(errs) == 0 {
		g, err := r.callGraph(r.order...)
		if err == nil {
			err = g.DetectCycles()
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// checkCycles reports the first cycle reachable from root as a *CycleError.
func (r *Registry) checkCycles(root string) error {
	g, err := r.callGraph(root)
	if err != nil {
		return err
	}
	return g.DetectCyclesFrom(root)
}

// callGraph builds the static call graph reachable from roots.
func (r *Registry) callGraph(roots ...string) (*dag.Graph, error) {
	g := dag.New()
	visited := make(map[string]bool, len(roots))
	queue := make([]string, 0, len(roots))
	for _, root := range roots {
		g.AddNode(root)
		if !visited[root] {
			visited[root] = true
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		t, ok := r.tasks[name]
		if !ok {
			continue
		}
		for _, callee := range t.Calls {
			g.AddNode(callee)
			// The caller depends on the callee.
			if err := g.AddEdge(callee, name); err != nil {
				return nil, err
			}
			if !visited[callee] {
				visited[callee] = true
				queue = append(queue, callee)
			}
		}
	}
	return g, nil
}
