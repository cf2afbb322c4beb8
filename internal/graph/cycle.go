package graph

type tarjan struct {
	graph   *Graph
	index   int
	stack   []string
	onStack map[string]bool
	indices map[string]int
	lowlink map[string]int
	sccs    [][]string
}

// Cycles returns every strongly connected component that contains a cycle,
// including single nodes that depend on themselves.
func (g *Graph) Cycles() [][]string {
	t := &tarjan{
		graph:   g,
		onStack: make(map[string]bool),
		indices: make(map[string]int),
		lowlink: make(map[string]int),
	}

	for _, id := range g.order {
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		switch {
		case len(scc) > 1:
			cycles = append(cycles, scc)
		case len(scc) == 1 && g.dependsOn(scc[0], scc[0]):
			cycles = append(cycles, scc)
		}
	}

	return cycles
}

func (g *Graph) dependsOn(from, to string) bool {
	for _, dep := range g.edges[from] {
		if dep == to {
			return true
		}
	}
	return false
}

func (t *tarjan) strongConnect(id string) {
	t.indices[id] = t.index
	t.lowlink[id] = t.index
	t.index++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, dep := range t.graph.edges[id] {
		if !t.graph.HasNode(dep) {
			continue
		}

		if _, visited := t.indices[dep]; !visited {
			t.strongConnect(dep)
			t.lowlink[id] = min(t.lowlink[id], t.lowlink[dep])
		} else if t.onStack[dep] {
			t.lowlink[id] = min(t.lowlink[id], t.indices[dep])
		}
	}

	if t.lowlink[id] != t.indices[id] {
		return
	}

	var scc []string
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == id {
			break
		}
	}
	t.sccs = append(t.sccs, scc)
}

func (g *Graph) HasCycle() bool {
	return len(g.Cycles()) > 0
}

// CyclePath returns the first cycle reachable from start, beginning and
// ending with the same node, or nil.
func (g *Graph) CyclePath(start string) []string {
	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var path []string

	var dfs func(id string) []string
	dfs = func(id string) []string {
		if inPath[id] {
			var cycle []string
			found := false
			for _, p := range path {
				if p == id {
					found = true
				}
				if found {
					cycle = append(cycle, p)
				}
			}
			return append(cycle, id)
		}

		if visited[id] {
			return nil
		}

		visited[id] = true
		path = append(path, id)
		inPath[id] = true

		for _, dep := range g.edges[id] {
			if !g.HasNode(dep) {
				continue
			}
			if cycle := dfs(dep); cycle != nil {
				return cycle
			}
		}

		path = path[:len(path)-1]
		inPath[id] = false
		return nil
	}

	return dfs(start)
}

// CyclePaths returns one concrete cycle per cyclic component, each starting
// at the component's earliest registered node.
func (g *Graph) CyclePaths() [][]string {
	position := make(map[string]int, len(g.order))
	for i, id := range g.order {
		position[id] = i
	}

	var paths [][]string
	for _, scc := range g.Cycles() {
		start := scc[0]
		for _, id := range scc[1:] {
			if position[id] < position[start] {
				start = id
			}
		}
		if path := g.CyclePath(start); path != nil {
			paths = append(paths, path)
		}
	}

	return paths
}
