package container

import (
	"context"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/danpasecinic/spool/internal/errs"
)

// Disposer is implemented by components that release resources on Close.
type Disposer interface {
	Dispose(ctx context.Context) error
}

func (c *Container) track(path string, instance any) {
	switch instance.(type) {
	case Disposer, io.Closer:
	default:
		return
	}

	c.builtMu.Lock()
	c.built = append(c.built, builtInstance{path: path, instance: instance})
	c.builtMu.Unlock()
}

// Close disposes every cached instance this container built, newest first.
// Every instance is attempted; failures are combined.
func (c *Container) Close(ctx context.Context) error {
	c.builtMu.Lock()
	built := c.built
	c.built = nil
	c.builtMu.Unlock()

	var err error
	for i := len(built) - 1; i >= 0; i-- {
		b := built[i]
		if derr := dispose(ctx, b.instance); derr != nil {
			c.logger.Debug("dispose failed", zap.String("component", b.path), zap.Error(derr))
			err = multierr.Append(err, errs.DisposeFailed(b.path, c.name, derr))
			continue
		}
		c.logger.Debug("disposed component", zap.String("component", b.path))
	}

	return err
}

func dispose(ctx context.Context, instance any) error {
	switch d := instance.(type) {
	case Disposer:
		return d.Dispose(ctx)
	case io.Closer:
		return d.Close()
	}
	return nil
}
