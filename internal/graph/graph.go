// Package graph holds a static dependency graph between components and the
// analyses run over it.
package graph

import "slices"

// Graph is a directed graph from a component to the components it reads.
// Nodes keep insertion order so every analysis is deterministic.
type Graph struct {
	order []string
	edges map[string][]string
}

func New() *Graph {
	return &Graph{
		edges: make(map[string][]string),
	}
}

// AddNode adds id or replaces its outgoing edges.
func (g *Graph) AddNode(id string, dependencies []string) {
	if _, exists := g.edges[id]; !exists {
		g.order = append(g.order, id)
	}
	g.edges[id] = slices.Clone(dependencies)
}

func (g *Graph) HasNode(id string) bool {
	_, exists := g.edges[id]
	return exists
}

func (g *Graph) Dependencies(id string) []string {
	return slices.Clone(g.edges[id])
}

func (g *Graph) Dependents(id string) []string {
	var dependents []string
	for _, node := range g.order {
		if slices.Contains(g.edges[node], id) {
			dependents = append(dependents, node)
		}
	}
	return dependents
}

func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

func (g *Graph) Size() int {
	return len(g.order)
}

// Missing returns edge targets that are not nodes, in first-seen order.
func (g *Graph) Missing() []string {
	var missing []string
	seen := make(map[string]bool)

	for _, node := range g.order {
		for _, dep := range g.edges[node] {
			if !g.HasNode(dep) && !seen[dep] {
				missing = append(missing, dep)
				seen[dep] = true
			}
		}
	}

	return missing
}
