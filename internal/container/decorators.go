package container

import (
	"context"

	"github.com/danpasecinic/spool/internal/module"
)

// AddDecorator appends fn to the decorators of the factory at path. Values
// are never decorated.
func (c *Container) AddDecorator(path module.Path, fn DecoratorFunc) {
	c.decoratorsMu.Lock()
	defer c.decoratorsMu.Unlock()

	key := path.String()
	c.decorators[key] = append(c.decorators[key], fn)
}

func (c *Container) applyDecorators(ctx context.Context, key string, r module.Resolver, instance any) (any, error) {
	c.decoratorsMu.RLock()
	decorators := c.decorators[key]
	c.decoratorsMu.RUnlock()

	var err error
	for _, decorator := range decorators {
		instance, err = decorator(ctx, r, instance)
		if err != nil {
			return nil, wrapFactoryError(key, c.name, err)
		}
	}

	return instance, nil
}
