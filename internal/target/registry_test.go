package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	return NewRegistry(nil, ".", Config{Iterations: 50, WarmupIterations: 5})
}

func TestRegistryNotEmptyAndUnique(t *testing.T) {
	reg := testRegistry()
	ids := reg.IDs()

	require.NotEmpty(t, ids)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestRegistryOrder(t *testing.T) {
	assert.Equal(t, []string{
		"provider-resolution",
		"request-transformation",
		"middleware-pipeline",
		"cache-operations",
		"stream-parsing",
	}, testRegistry().IDs())
}

func TestByPrefix(t *testing.T) {
	reg := testRegistry()

	matched := reg.ByPrefix("cache")
	require.Len(t, matched, 1)
	assert.Equal(t, "cache-operations", matched[0].ID())

	assert.Len(t, reg.ByPrefix(""), len(reg.All()))
	assert.Empty(t, reg.ByPrefix("nope"))
}

func TestByIDsPreservesRegistryOrder(t *testing.T) {
	reg := testRegistry()

	matched := reg.ByIDs([]string{"stream-parsing", " provider-resolution"})
	require.Len(t, matched, 2)
	assert.Equal(t, "provider-resolution", matched[0].ID())
	assert.Equal(t, "stream-parsing", matched[1].ID())
}
