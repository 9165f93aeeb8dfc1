package chain

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterGet(t *testing.T) {
	reg := NewRegistry()
	u := noop("fetch")
	a := reg.Register(u)

	got, ok := reg.Get("fetch")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Same(t, a, Wrap(u))

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_MustGet_Panic(t *testing.T) {
	reg := NewRegistry()
	assert.PanicsWithValue(t, `chain: action "nope" not registered`, func() { reg.MustGet("nope") })
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	reg.Register(noop("sign"))
	reg.Register(noop("build"))
	reg.Register(noop("verify"))
	assert.Equal(t, []string{"build", "sign", "verify"}, reg.Names())
}

func TestRegistry_SharesWrappedAction(t *testing.T) {
	u := noop("f")
	a := Output("x")(MapArguments(map[string]string{"in": "src"})(u))

	regA, regB := NewRegistry(), NewRegistry()
	assert.Same(t, a, regA.Register(u))
	assert.Same(t, a, regB.Register(u))

	b := MapArguments(map[string]string{"other": "dst"})(u)
	assert.Same(t, a, b)
	assert.Equal(t, map[string]string{"in": "src", "other": "dst"}, regB.MustGet("f").InputMapping())
	assert.Equal(t, []string{"x"}, regA.MustGet("f").OutputNames())
}

func TestWrap_Concurrent(t *testing.T) {
	u := noop("shared")
	got := make([]*Action, 16)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Wrap(u)
		}(i)
	}
	wg.Wait()
	for _, a := range got {
		assert.Same(t, got[0], a)
	}
}

func TestWrap_UnitsAreCollectable(t *testing.T) {
	collected := make(chan struct{}, 1)
	func() {
		u := Fn("throwaway", func(ctx context.Context, _ Args) (any, error) {
			return make([]byte, 1<<20), nil
		})
		a := Output("blob")(u)
		_, err := a.Call(context.Background(), Args{})
		require.NoError(t, err)
		runtime.SetFinalizer(u, func(*Unit) { collected <- struct{}{} })
	}()

	deadline := time.After(5 * time.Second)
	for {
		runtime.GC()
		select {
		case <-collected:
			return
		case <-deadline:
			t.Fatal("wrapped unit is still referenced after wrapping")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry
	a := reg.Register(noop("lazy"))
	assert.Same(t, a, reg.MustGet("lazy"))
}
