package chain

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc2(t *testing.T) {
	join := Output("joined")(Func2("join", "sep", "parts", func(ctx context.Context, sep string, parts []string) (string, error) {
		return strings.Join(parts, sep), nil
	}))

	c := testChain("func2")
	c.Set("sep", ",")
	c.Set("parts", []string{"a", "b"})
	c.Append(join)
	require.True(t, c.Execute(context.Background()).Succeeded)

	joined, err := Value[string](c, "joined")
	require.NoError(t, err)
	assert.Equal(t, "a,b", joined)
	assert.Equal(t, []string{"sep", "parts"}, join.Params())
}

func TestFunc1_TypeMismatch(t *testing.T) {
	inc := Output("out")(Func1("inc", "n", func(ctx context.Context, n int) (int, error) { return n + 1, nil }))
	c := testChain("mismatch")
	c.Set("n", "not a number")
	c.Append(inc)
	res := c.Execute(context.Background())

	require.False(t, res.Succeeded)
	assert.EqualError(t, res.Err, "inc: param n: expected int, got string")
}

func TestFunc0_Error(t *testing.T) {
	boom := Func0("boom", func(ctx context.Context) (int, error) { return 0, fmt.Errorf("Oops!") })
	c := testChain("func0")
	c.Append(boom)
	res := c.Execute(context.Background())
	require.False(t, res.Succeeded)
	assert.Equal(t, "Oops!", res.Err.Error())
}

func TestTap(t *testing.T) {
	var seen Args
	c := testChain("tap")
	c.Set("v", 3)
	c.Append(Tap("log", func(ctx context.Context, args Args) { seen = args }, "v"))
	require.True(t, c.Execute(context.Background()).Succeeded)
	assert.Equal(t, Args{"v": 3}, seen)
	assert.Equal(t, map[string]any{"v": 3}, c.Store())
}
