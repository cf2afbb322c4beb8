package container

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// suggest returns the identifiers in sets closest to id, nearest first.
func (c *Container) suggest(id string, sets [][]string) []string {
	if c.cfg.MaxSuggestions < 0 {
		return nil
	}

	type candidate struct {
		id       string
		distance int
	}

	distance := max(c.cfg.SuggestionDistance, 0)
	seen := make(map[string]struct{})
	var candidates []candidate
	for _, set := range sets {
		for _, other := range set {
			if _, dup := seen[other]; dup {
				continue
			}
			seen[other] = struct{}{}

			if d := levenshtein.ComputeDistance(id, other); d <= distance {
				candidates = append(candidates, candidate{id: other, distance: d})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > c.cfg.MaxSuggestions {
		candidates = candidates[:c.cfg.MaxSuggestions]
	}

	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.id
	}
	return out
}
