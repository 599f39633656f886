package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyIdentityCounts(t *testing.T) {
	for i := 0; i < 50; i++ {
		k := NewKey()

		counts := map[CardType]int{}
		for _, ct := range k.Positions {
			counts[ct]++
		}

		starting := CardType(k.StartingTeam)
		other := CardType(k.StartingTeam.Opponent())
		assert.Equal(t, 9, counts[starting], "starting team cards")
		assert.Equal(t, 8, counts[other], "other team cards")
		assert.Equal(t, 7, counts[CardNeutral], "neutral cards")
		assert.Equal(t, 1, counts[CardAssassin], "assassin cards")
	}
}

func TestNewKeyStartingTeamVaries(t *testing.T) {
	seen := map[Team]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		seen[NewKey().StartingTeam] = true
	}
	assert.Len(t, seen, 2, "both teams should be able to start")
}

func TestNewRoomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewRoomCode()
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "unexpected rune %q in code %s", r, code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be essentially unique")
}

func TestBuildBoard(t *testing.T) {
	k := NewKey()

	t.Run("pairs words with key positions", func(t *testing.T) {
		cards, err := BuildBoard(k, testPool(30))
		require.NoError(t, err)
		require.Len(t, cards, BoardSize)

		words := map[string]bool{}
		for i, c := range cards {
			assert.Equal(t, k.Positions[i], c.Type)
			assert.False(t, c.Revealed)
			assert.False(t, words[c.Word], "duplicate word %s", c.Word)
			words[c.Word] = true
		}
	})

	t.Run("skips duplicates and blanks", func(t *testing.T) {
		pool := append([]string{"", "ALPHA", "ALPHA", ""}, testPool(25)...)
		cards, err := BuildBoard(k, pool)
		require.NoError(t, err)
		assert.Equal(t, "ALPHA", cards[0].Word)
		assert.Equal(t, "WORD00", cards[1].Word)
	})

	t.Run("rejects a pool below 25 usable words", func(t *testing.T) {
		_, err := BuildBoard(k, testPool(24))
		assert.ErrorIs(t, err, ErrSmallPool)
	})
}
