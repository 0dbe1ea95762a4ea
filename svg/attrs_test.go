package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrsInsertionOrderPreserved(t *testing.T) {
	a := NewAttrs()
	a.Set("d", "1")
	a.Set("b", "2")
	a.Set("c", "3")
	require.Equal(t, []string{"d", "b", "c"}, a.Keys())

	a.Set("b", "20")
	assert.Equal(t, []string{"d", "b", "c"}, a.Keys(), "updating an existing key must not move it")
	assert.Equal(t, "20", a.Value("b"))
}

func TestAttrsRemovePreservesOrder(t *testing.T) {
	a := NewAttrs()
	a.Set("x", "1")
	a.Set("y", "2")
	a.Set("z", "3")
	a.Remove("y")
	assert.Equal(t, []string{"x", "z"}, a.Keys())
	assert.False(t, a.Has("y"))
}

func TestAttrsRename(t *testing.T) {
	a := NewAttrs()
	a.Set("a", "1")
	a.Set("b", "2")
	a.Rename("a", "aa")
	assert.Equal(t, []string{"aa", "b"}, a.Keys())
	assert.Equal(t, "1", a.Value("aa"))
	assert.False(t, a.Has("a"))
}

func TestAttrsRenameOntoExistingDropsOther(t *testing.T) {
	a := NewAttrs()
	a.Set("a", "1")
	a.Set("b", "2")
	a.Rename("a", "b")
	assert.Equal(t, []string{"b"}, a.Keys())
	assert.Equal(t, "1", a.Value("b"))
}

func TestAttrsRetainFunc(t *testing.T) {
	a := NewAttrs()
	a.Set("keep1", "1")
	a.Set("drop", "2")
	a.Set("keep2", "3")
	a.RetainFunc(func(name, _ string) bool { return name != "drop" })
	assert.Equal(t, []string{"keep1", "keep2"}, a.Keys())
	assert.False(t, a.Has("drop"))
}

func TestAttrsReorderAppendsUnlistedKeys(t *testing.T) {
	a := NewAttrs()
	a.Set("c", "3")
	a.Set("a", "1")
	a.Set("b", "2")
	a.Reorder([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, a.Keys(), "keys missing from the order must be appended, never dropped")
}

func TestAttrsClone(t *testing.T) {
	a := NewAttrs()
	a.Set("x", "1")
	clone := a.Clone()
	clone.Set("x", "2")
	clone.Set("y", "3")
	assert.Equal(t, "1", a.Value("x"), "mutating the clone must not affect the original")
	assert.False(t, a.Has("y"))
}
