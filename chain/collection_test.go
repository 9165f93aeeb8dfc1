package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(name string) *Unit {
	return Fn(name, func(ctx context.Context, _ Args) (any, error) { return nil, nil })
}

func TestChain_Collection(t *testing.T) {
	c := testChain("collection")
	a, b, d := noop("a"), noop("b"), noop("d")

	c.Append(a, b)
	require.Equal(t, 2, c.Len())
	assert.Same(t, Wrap(a), c.At(0))

	c.Insert(1, noop("x"))
	assert.Equal(t, "a -> x -> b", c.String())

	c.Insert(c.Len(), d)
	assert.Equal(t, "a -> x -> b -> d", c.String())

	c.Replace(1, noop("y"))
	assert.Equal(t, "a -> y -> b -> d", c.String())

	c.ReplaceRange(1, 3, noop("p"), noop("q"), noop("r"))
	assert.Equal(t, "a -> p -> q -> r -> d", c.String())

	c.Delete(0)
	assert.Equal(t, "p -> q -> r -> d", c.String())

	c.DeleteRange(1, 3)
	assert.Equal(t, "p -> d", c.String())
	assert.Same(t, Wrap(d), c.At(1))

	actions := c.Actions()
	actions[0] = nil
	assert.NotNil(t, c.At(0), "Actions returns a copy")
}

func TestChain_CollectionWrapsOnce(t *testing.T) {
	c := testChain("wrap")
	u := noop("same")
	c.Append(u, u)
	c.Insert(0, u)
	assert.Same(t, c.At(0), c.At(1))
	assert.Same(t, c.At(1), c.At(2))
}

func TestChain_CollectionOutOfRange(t *testing.T) {
	c := testChain("range")
	c.Append(noop("only"))

	assert.Panics(t, func() { c.At(1) })
	assert.Panics(t, func() { c.Replace(3, noop("x")) })
	assert.Panics(t, func() { c.Delete(1) })
	assert.Panics(t, func() { c.Insert(5, noop("x")) })
	assert.Equal(t, 1, c.Len())
}

func TestChain_AppendKeepsDecoratedMetadata(t *testing.T) {
	u := Fn("value", func(ctx context.Context, _ Args) (any, error) { return 7, nil })
	Output("v")(u)

	reg := NewRegistry()
	reg.Register(u)

	c := testChain("decorated")
	c.Append(u)
	c.Append(reg.MustGet("value"))
	assert.Same(t, c.At(0), c.At(1))

	res := c.Execute(context.Background())
	require.True(t, res.Succeeded)
	v, err := c.Get("v")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
