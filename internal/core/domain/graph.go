// Package domain contains the core domain models and graph algorithms for architecture analysis.
package domain

import (
	"slices"
	"strings"
)

// DependencyGraph is a directed graph of file imports.
// Nodes are normalized, root-relative file paths. Every edge is stored twice:
// once in the forward map and once in the reverse map.
type DependencyGraph struct {
	nodes   map[InternedString]struct{}
	forward map[InternedString][]InternedString
	reverse map[InternedString][]InternedString
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes:   make(map[InternedString]struct{}),
		forward: make(map[InternedString][]InternedString),
		reverse: make(map[InternedString][]InternedString),
	}
}

// AddNode registers a node without edges.
func (g *DependencyGraph) AddNode(node string) {
	g.nodes[NewInternedString(node)] = struct{}{}
}

// HasNode reports whether node is part of the graph.
func (g *DependencyGraph) HasNode(node string) bool {
	_, ok := g.nodes[NewInternedString(node)]
	return ok
}

// AddEdge records that from imports to.
// Self-imports are dropped and duplicate edges are ignored.
func (g *DependencyGraph) AddEdge(from, to string) {
	if from == to {
		return
	}

	f := NewInternedString(from)
	t := NewInternedString(to)
	g.nodes[f] = struct{}{}
	g.nodes[t] = struct{}{}

	if slices.Contains(g.forward[f], t) {
		return
	}
	g.forward[f] = append(g.forward[f], t)
	g.reverse[t] = append(g.reverse[t], f)
}

// InvalidateNode removes every edge touching node in both directions.
// The node itself stays in the graph.
func (g *DependencyGraph) InvalidateNode(node string) {
	n := NewInternedString(node)

	for _, dep := range g.forward[n] {
		g.reverse[dep] = removeNode(g.reverse[dep], n)
		if len(g.reverse[dep]) == 0 {
			delete(g.reverse, dep)
		}
	}
	for _, dependent := range g.reverse[n] {
		g.forward[dependent] = removeNode(g.forward[dependent], n)
		if len(g.forward[dependent]) == 0 {
			delete(g.forward, dependent)
		}
	}

	delete(g.forward, n)
	delete(g.reverse, n)
}

// ReplaceEdges re-indexes node after its imports changed. Every edge touching node
// is dropped, then the outgoing edges to deps are inserted and the incoming edges
// of the previous dependents are restored, since their own imports did not change.
func (g *DependencyGraph) ReplaceEdges(node string, deps []string) {
	dependents := g.Dependents(node)

	g.InvalidateNode(node)
	g.AddNode(node)

	for _, dep := range deps {
		g.AddEdge(node, dep)
	}
	for _, dependent := range dependents {
		g.AddEdge(dependent, node)
	}
}

// RemoveNode deletes node and all of its edges.
func (g *DependencyGraph) RemoveNode(node string) {
	g.InvalidateNode(node)
	delete(g.nodes, NewInternedString(node))
}

func removeNode(list []InternedString, n InternedString) []InternedString {
	return slices.DeleteFunc(list, func(x InternedString) bool { return x == n })
}

// Dependencies returns the nodes that node imports, in insertion order.
func (g *DependencyGraph) Dependencies(node string) []string {
	return toStrings(g.forward[NewInternedString(node)])
}

// Dependents returns the nodes that import node, in insertion order.
func (g *DependencyGraph) Dependents(node string) []string {
	return toStrings(g.reverse[NewInternedString(node)])
}

// Nodes returns all nodes in sorted order.
func (g *DependencyGraph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n.String())
	}
	slices.Sort(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *DependencyGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, deps := range g.forward {
		n += len(deps)
	}
	return n
}

func toStrings(list []InternedString) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.String()
	}
	return out
}

// AffectedNodes returns the weakly connected component containing start,
// following edges in both directions. start is always part of the result.
func (g *DependencyGraph) AffectedNodes(start string) map[string]struct{} {
	s := NewInternedString(start)
	seen := map[InternedString]struct{}{s: {}}
	queue := []InternedString{s}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, neighbours := range [][]InternedString{g.forward[n], g.reverse[n]} {
			for _, next := range neighbours {
				if _, ok := seen[next]; ok {
					continue
				}
				seen[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}

	out := make(map[string]struct{}, len(seen))
	for n := range seen {
		out[n.String()] = struct{}{}
	}
	return out
}

// DetectCycles runs a depth-first search over every node and reports each
// back edge as a cycle. Zero cycles yields an empty slice.
func (g *DependencyGraph) DetectCycles() []CircularDependency {
	return g.detectCycles(g.sortedNodes(), func(InternedString) bool { return true })
}

// DetectCyclesInSubgraph runs the same search as DetectCycles, restricted to
// edges whose target lies inside nodes.
func (g *DependencyGraph) DetectCyclesInSubgraph(nodes map[string]struct{}) []CircularDependency {
	within := make(map[InternedString]struct{}, len(nodes))
	starts := make([]string, 0, len(nodes))
	for n := range nodes {
		within[NewInternedString(n)] = struct{}{}
		starts = append(starts, n)
	}
	slices.Sort(starts)

	return g.detectCycles(NewInternedStrings(starts), func(n InternedString) bool {
		_, ok := within[n]
		return ok
	})
}

func (g *DependencyGraph) sortedNodes() []InternedString {
	return NewInternedStrings(g.Nodes())
}

// dfsFrame is one entry of the explicit DFS stack: the node being expanded
// and the index of the next outgoing edge to follow.
type dfsFrame struct {
	node InternedString
	next int
}

func (g *DependencyGraph) detectCycles(starts []InternedString, follow func(InternedString) bool) []CircularDependency {
	cycles := make([]CircularDependency, 0)
	visited := make(map[InternedString]bool, len(g.nodes))
	onStack := make(map[InternedString]bool)

	for _, start := range starts {
		if visited[start] {
			continue
		}

		visited[start] = true
		onStack[start] = true
		stack := []dfsFrame{{node: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.forward[top.node]

			if top.next >= len(deps) {
				onStack[top.node] = false
				stack = stack[:len(stack)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			if !follow(dep) {
				continue
			}
			if onStack[dep] {
				cycles = append(cycles, NewCircularDependency(cycleFromStack(stack, dep)))
				continue
			}
			if !visited[dep] {
				visited[dep] = true
				onStack[dep] = true
				stack = append(stack, dfsFrame{node: dep})
			}
		}
	}

	return cycles
}

// cycleFromStack returns the stack suffix starting at dep with dep appended again.
func cycleFromStack(stack []dfsFrame, dep InternedString) []string {
	start := 0
	for i, f := range stack {
		if f.node == dep {
			start = i
			break
		}
	}

	cycle := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		cycle = append(cycle, f.node.String())
	}
	return append(cycle, dep.String())
}

// NormalizePathString lower-cases p, converts backslashes to forward slashes
// and strips the Windows extended-length prefix.
func NormalizePathString(p string) string {
	s := strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
	return strings.TrimPrefix(s, "//?/")
}
