package mats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLookupWalksOutward(t *testing.T) {
	env := NewEnv[int]()
	env.Bind("x", 1)
	env.Enter(ScopeLocal)
	env.Bind("y", 2)

	x, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, x)

	env.Exit()
	_, ok = env.Lookup("y")
	assert.False(t, ok)
}

func TestEnvAssignWritesThrough(t *testing.T) {
	env := NewEnv[int]()
	env.Bind("sum", 0)
	env.Enter(ScopeLoop)
	env.Enter(ScopeLocal)
	env.Assign("sum", 5)
	env.Assign("fresh", 1)
	assert.Equal(t, []string{"fresh", "sum"}, env.Names())
	env.Exit()
	env.Exit()

	sum, _ := env.Lookup("sum")
	assert.Equal(t, 5, sum)
	_, ok := env.Lookup("fresh")
	assert.False(t, ok)
}

func TestEnvBindShadows(t *testing.T) {
	env := NewEnv[string]()
	env.Bind("i", "outer")
	env.Enter(ScopeLoop)
	env.Bind("i", "inner")

	v, _ := env.Lookup("i")
	assert.Equal(t, "inner", v)
	assert.Equal(t, []string{"i"}, env.Names())

	env.Exit()
	v, _ = env.Lookup("i")
	assert.Equal(t, "outer", v)
}

func TestEnvLoopTracking(t *testing.T) {
	env := NewEnv[Type]()
	assert.False(t, env.InLoop())
	env.Enter(ScopeLoop)
	env.Enter(ScopeLocal)
	assert.True(t, env.InLoop())
	assert.Equal(t, 3, env.Depth())

	env.Reset()
	assert.False(t, env.InLoop())
	assert.Equal(t, 1, env.Depth())

	env.Exit()
	env.Exit()
	assert.Equal(t, 1, env.Depth(), "the global frame is never popped")
}
