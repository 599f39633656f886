package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEmbeddedPool(t *testing.T) {
	require.NoError(t, Init())
	assert.GreaterOrEqual(t, Count(), MinPoolSize)
}

func TestNormalize(t *testing.T) {
	got := normalize([]string{
		"# header comment",
		"  ocean ",
		"OCEAN",
		"",
		"   ",
		"tree",
	})
	assert.Equal(t, []string{"OCEAN", "TREE"}, got)
}

func TestSample(t *testing.T) {
	require.NoError(t, Init())

	words, err := Sample(25)
	require.NoError(t, err)
	require.Len(t, words, 25)

	seen := map[string]bool{}
	for _, w := range words {
		assert.False(t, seen[w], "duplicate word %s", w)
		seen[w] = true
	}

	_, err = Sample(Count() + 1)
	assert.Error(t, err)
}

func TestSampleDoesNotMutatePool(t *testing.T) {
	require.NoError(t, Init())
	first := pool[0]
	_, err := Sample(Count())
	require.NoError(t, err)
	assert.Equal(t, first, pool[0])
}
