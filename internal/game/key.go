// internal/game/key.go
//
// Key and board generation plus room codes.
// The key is the hidden assignment of identities to the 25 board positions:
// 9 for the randomly chosen starting team, 8 for the other, 7 neutral, and
// exactly 1 assassin. Only the arrangement and the starting-team coin flip
// are random; the multiset of identities is fixed.

package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

const (
	roomCodeLength = 6

	// roomCodeAlphabet excludes the ambiguous glyphs I, O, 0 and 1 so codes
	// stay human-copyable.
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewRoomCode returns a random 6-character room code.
func NewRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
			continue
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// Key is the hidden identity layout for a fresh board.
type Key struct {
	Positions    [BoardSize]CardType
	StartingTeam Team
}

// NewKey generates a shuffled key and picks the starting team.
func NewKey() Key {
	starting := TeamRed
	if rand.Intn(2) == 1 {
		starting = TeamBlue
	}

	var k Key
	k.StartingTeam = starting
	i := 0
	for ; i < 9; i++ {
		k.Positions[i] = CardType(starting)
	}
	for ; i < 17; i++ {
		k.Positions[i] = CardType(starting.Opponent())
	}
	for ; i < 24; i++ {
		k.Positions[i] = CardNeutral
	}
	k.Positions[24] = CardAssassin

	rand.Shuffle(BoardSize, func(a, b int) {
		k.Positions[a], k.Positions[b] = k.Positions[b], k.Positions[a]
	})
	return k
}

// BuildBoard pairs each key position with a distinct word from pool, drawn in
// order without replacement. Duplicate and empty entries are skipped; fewer
// than 25 usable words is ErrSmallPool.
func BuildBoard(k Key, pool []string) ([]Card, error) {
	seen := make(map[string]struct{}, BoardSize)
	cards := make([]Card, 0, BoardSize)
	for _, w := range pool {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		cards = append(cards, Card{Word: w, Type: k.Positions[len(cards)]})
		if len(cards) == BoardSize {
			return cards, nil
		}
	}
	return nil, ErrSmallPool
}
