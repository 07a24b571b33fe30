package dag

import (
	"fmt"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. A self-referential
// edge is reported as a *CycleError.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return &CycleError{Path: []string{fromID, fromID}}
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode

	return nil
}

// DetectCycles checks the whole graph and returns a *CycleError describing
// the first cycle found. Nodes are visited in sorted order so the reported
// path is stable across runs.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	w := newWalker()
	for _, id := range sortedIDs(g.nodes) {
		if err := w.visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

// DetectCyclesFrom checks only the part of the graph reachable from id by
// following dependencies.
func (g *Graph) DetectCyclesFrom(id string) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("node not found: %s", id)
	}
	return newWalker().visit(n)
}

// walker is a depth-first search over dependencies with the classic
// permanent/temporary marking, keeping the current stack to report the path.
type walker struct {
	permanent map[string]bool
	temporary map[string]bool
	stack     []string
}

func newWalker() *walker {
	return &walker{
		permanent: make(map[string]bool),
		temporary: make(map[string]bool),
	}
}

func (w *walker) visit(n *node) error {
	if w.permanent[n.id] {
		return nil
	}
	if w.temporary[n.id] {
		start := slices.Index(w.stack, n.id)
		path := append(slices.Clone(w.stack[start:]), n.id)
		return &CycleError{Path: path}
	}

	w.temporary[n.id] = true
	w.stack = append(w.stack, n.id)

	for _, id := range sortedIDs(n.deps) {
		if err := w.visit(n.deps[id]); err != nil {
			return err
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.temporary, n.id)
	w.permanent[n.id] = true
	return nil
}

func sortedIDs(m map[string]*node) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
