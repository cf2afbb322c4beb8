package spool

import (
	"github.com/danpasecinic/spool/internal/container"
)

// Disposer is implemented by components that release resources when their
// container is closed. io.Closer is honoured as well.
type Disposer = container.Disposer
