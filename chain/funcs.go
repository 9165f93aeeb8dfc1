// Typed adapters that build Units from ordinary Go functions.

package chain

import (
	"context"
	"fmt"
)

// Func0 returns a Unit for a function taking no arguments.
func Func0[R any](name string, fn func(ctx context.Context) (R, error)) *Unit {
	return Fn(name, func(ctx context.Context, _ Args) (any, error) {
		return fn(ctx)
	})
}

// Func1 returns a Unit for a function of one argument, read from parameter p.
// The argument must be an A; otherwise the call fails with a type error.
func Func1[A, R any](name, p string, fn func(ctx context.Context, a A) (R, error)) *Unit {
	return Fn(name, func(ctx context.Context, args Args) (any, error) {
		a, err := typedArg[A](name, args, p)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a)
	}, p)
}

// Func2 returns a Unit for a function of two arguments, read from p1 and p2.
func Func2[A, B, R any](name, p1, p2 string, fn func(ctx context.Context, a A, b B) (R, error)) *Unit {
	return Fn(name, func(ctx context.Context, args Args) (any, error) {
		a, err := typedArg[A](name, args, p1)
		if err != nil {
			return nil, err
		}
		b, err := typedArg[B](name, args, p2)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a, b)
	}, p1, p2)
}

// Tap returns a Unit that calls fn for its side effect and produces nothing.
func Tap(name string, fn func(ctx context.Context, args Args), params ...string) *Unit {
	return Fn(name, func(ctx context.Context, args Args) (any, error) {
		fn(ctx, args)
		return nil, nil
	}, params...)
}

// Multi packs several return values for an action with several output names.
func Multi(values ...any) []any { return values }

func typedArg[T any](name string, args Args, p string) (T, error) {
	v, ok := args[p].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: param %s: expected %T, got %T", name, p, zero, args[p])
	}
	return v, nil
}
