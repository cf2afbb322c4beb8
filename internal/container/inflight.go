package container

import (
	"context"
	"errors"
	"sync"
)

var (
	errWouldDeadlock = errors.New("build is waiting on the caller")
	errBuildPanicked = errors.New("build panicked")
)

// task identifies one line of resolution: a top-level Resolve call or one
// goroutine of a parallel prefetch. waiting holds the tasks it is blocked on.
type task struct {
	waiting []*task
}

type buildKey struct {
	container *Container
	path      string
}

type buildCall struct {
	owner *task
	done  chan struct{}
	value any
	err   error
}

// builds runs one Registration-scoped construction per key at a time and
// keeps a wait-for graph so a caller never blocks on a build that is, at any
// depth, blocked on the caller. Every container of a hierarchy shares one.
type builds struct {
	mu    sync.Mutex
	calls map[buildKey]*buildCall
}

func newBuilds() *builds {
	return &builds{calls: make(map[buildKey]*buildCall)}
}

func (b *builds) do(ctx context.Context, t *task, key buildKey, fn func() (any, error)) (any, error) {
	b.mu.Lock()
	if call, ok := b.calls[key]; ok {
		if reaches(call.owner, t) {
			b.mu.Unlock()
			return nil, errWouldDeadlock
		}
		t.waiting = []*task{call.owner}
		b.mu.Unlock()

		defer b.stopWaiting(t)
		select {
		case <-call.done:
			return call.value, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &buildCall{owner: t, done: make(chan struct{}), err: errBuildPanicked}
	b.calls[key] = call
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.calls, key)
		b.mu.Unlock()
		close(call.done)
	}()

	call.value, call.err = fn()
	return call.value, call.err
}

// waitOn marks t as blocked until every task in children finishes.
func (b *builds) waitOn(t *task, children []*task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t.waiting = children
}

func (b *builds) stopWaiting(t *task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t.waiting = nil
}

// reaches reports whether target is from or something from waits on.
// Callers hold b.mu.
func reaches(from, target *task) bool {
	visited := make(map[*task]struct{})
	stack := []*task{from}
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]

		if current == target {
			return true
		}
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}
		stack = append(stack, current.waiting...)
	}
	return false
}
