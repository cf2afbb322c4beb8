package spool

import (
	"github.com/danpasecinic/spool/internal/container"
)

// ResolveHook observes every top-level Resolve call on a container.
type ResolveHook = container.ResolveHook

// ConstructHook observes every factory invocation, including the ones made
// while resolving another component.
type ConstructHook = container.ConstructHook
