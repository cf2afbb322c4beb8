package graph

import "errors"

var ErrCycleDetected = errors.New("cycle detected in graph")

// ResolutionOrder lists target's transitive dependencies in the order they
// would be built, ending with target. Unknown targets yield just themselves.
func (g *Graph) ResolutionOrder(target string) ([]string, error) {
	if !g.HasNode(target) {
		return []string{target}, nil
	}

	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []string

	var visit func(id string) error
	visit = func(id string) error {
		if visiting[id] {
			return ErrCycleDetected
		}
		if visited[id] {
			return nil
		}

		visiting[id] = true
		for _, dep := range g.edges[id] {
			if !g.HasNode(dep) {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[id] = false
		visited[id] = true
		order = append(order, id)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}

	return order, nil
}

// Levels groups nodes by depth: level 0 has no dependencies, level n depends
// only on lower levels. Nodes on a cycle are rejected.
func (g *Graph) Levels() ([][]string, error) {
	if g.HasCycle() {
		return nil, ErrCycleDetected
	}

	levels := make(map[string]int, len(g.order))

	var level func(id string) int
	level = func(id string) int {
		if l, ok := levels[id]; ok {
			return l
		}

		deepest := -1
		for _, dep := range g.edges[id] {
			if !g.HasNode(dep) {
				continue
			}
			deepest = max(deepest, level(dep))
		}

		levels[id] = deepest + 1
		return deepest + 1
	}

	var groups [][]string
	for _, id := range g.order {
		l := level(id)
		for len(groups) <= l {
			groups = append(groups, nil)
		}
	}
	for _, id := range g.order {
		groups[levels[id]] = append(groups[levels[id]], id)
	}

	return groups, nil
}
