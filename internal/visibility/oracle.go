// Package visibility decides whether one registration may observe another
// inside a single container's module tree.
package visibility

import (
	"github.com/danpasecinic/spool/internal/module"
	"github.com/danpasecinic/spool/internal/scope"
)

// Registrations exposes the declared visibility of whatever is registered at
// a path. *module.Tree satisfies it.
type Registrations interface {
	VisibilityAt(p module.Path) (scope.Visibility, bool)
}

type Oracle struct {
	root Registrations
}

func For(root Registrations) *Oracle {
	return &Oracle{root: root}
}

// From fixes the requester and returns the predicate for candidate targets.
func (o *Oracle) From(from module.Path) func(test module.Path) bool {
	return func(test module.Path) bool {
		return o.IsVisible(from, test)
	}
}

// IsVisible walks test from the root. Peers in the requester's module and
// common ancestors of the requester are always visible; every other step
// down to the target must be Public.
func (o *Oracle) IsVisible(from, test module.Path) bool {
	owner := from.Parent()
	common := true

	for i := range test {
		current := test.Prefix(i + 1)

		if owner.Equal(current.Parent()) {
			continue
		}

		if i >= len(from) || test[i] != from[i] {
			common = false
		}
		if common {
			continue
		}

		vis, ok := o.root.VisibilityAt(current)
		if !ok || vis == scope.Private {
			return false
		}
	}

	return true
}
