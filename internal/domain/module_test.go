package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeModules_FoldsCaseInsensitiveNames(t *testing.T) {
	modules := []Module{
		{Name: "A", Content: "x"},
		{Name: "a", Content: "y"},
	}

	merged := MergeModules(modules)

	require.Len(t, merged, 1)
	assert.Equal(t, "A", merged[0].Name)
	assert.Equal(t, "x\n\ny", merged[0].Content)
}

func TestMergeModules_UnionsPrerequisites(t *testing.T) {
	modules := []Module{
		{Name: "Routing", Content: "one", Prerequisites: []string{"IP", "Subnets"}},
		{Name: "Switching", Content: "two", Prerequisites: []string{"Ethernet"}},
		{Name: "routing", Content: "three", Prerequisites: []string{"Subnets", "ICMP"}},
	}

	merged := MergeModules(modules)

	require.Len(t, merged, 2)
	assert.Equal(t, "Routing", merged[0].Name)
	assert.Equal(t, "one\n\nthree", merged[0].Content)
	assert.ElementsMatch(t, []string{"IP", "Subnets", "ICMP"}, merged[0].Prerequisites)
	assert.Equal(t, "Switching", merged[1].Name)
}

func TestMergeModules_Idempotent(t *testing.T) {
	modules := []Module{
		{Name: "A", Content: "x", Prerequisites: []string{"p"}},
		{Name: "B", Content: "y"},
		{Name: "a", Content: "z", Prerequisites: []string{"q", "p"}},
	}

	once := MergeModules(modules)
	twice := MergeModules(once)

	assert.Equal(t, once, twice)
}

func TestMergeModules_DoesNotMutateInput(t *testing.T) {
	prereqs := []string{"p"}
	modules := []Module{
		{Name: "A", Content: "x", Prerequisites: prereqs},
		{Name: "a", Content: "y", Prerequisites: []string{"q"}},
	}

	_ = MergeModules(modules)

	assert.Equal(t, "x", modules[0].Content)
	assert.Equal(t, []string{"p"}, prereqs)
}

func TestMergeModules_Empty(t *testing.T) {
	assert.Empty(t, MergeModules(nil))
}

func TestModule_Validate(t *testing.T) {
	assert.NoError(t, (&Module{Name: "n", Content: "c"}).Validate())
	assert.Error(t, (&Module{Name: " ", Content: "c"}).Validate())

	err := (&Module{Name: "n"}).Validate()
	assert.True(t, HasCode(err, ErrInvalidInput))
}
