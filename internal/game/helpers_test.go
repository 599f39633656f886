package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testPool returns n distinct uppercase words.
func testPool(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("WORD%02d", i)
	}
	return words
}

// testRoom holds a started two-on-two game with handy player references.
type testRoom struct {
	state *State

	redSpy, redOp   *Player
	blueSpy, blueOp *Player
}

// startedRoom builds a room with two players per team and moves it to the
// playing phase. The host is the red spymaster.
func startedRoom(t *testing.T) *testRoom {
	t.Helper()

	s, err := NewRoom("Ana", testPool(30))
	require.NoError(t, err)

	names := []string{"Bruno", "Carla", "Diego"}
	players := []*Player{&s.Players[0]}
	for _, name := range names {
		p, err := s.AddPlayer(name)
		require.NoError(t, err)
		players = append(players, p)
	}

	require.NoError(t, s.UpdatePlayer(players[0].ID, TeamRed, RoleSpymaster))
	require.NoError(t, s.UpdatePlayer(players[1].ID, TeamRed, RoleOperative))
	require.NoError(t, s.UpdatePlayer(players[2].ID, TeamBlue, RoleSpymaster))
	require.NoError(t, s.UpdatePlayer(players[3].ID, TeamBlue, RoleOperative))

	require.NoError(t, s.Start(players[0].ID))

	return &testRoom{
		state:   s,
		redSpy:  s.Player(players[0].ID),
		redOp:   s.Player(players[1].ID),
		blueSpy: s.Player(players[2].ID),
		blueOp:  s.Player(players[3].ID),
	}
}

// spymaster and operative return the members of the team currently on turn.
func (r *testRoom) spymaster() *Player {
	if r.state.CurrentTurn == TeamRed {
		return r.redSpy
	}
	return r.blueSpy
}

func (r *testRoom) operative() *Player {
	if r.state.CurrentTurn == TeamRed {
		return r.redOp
	}
	return r.blueOp
}

func (r *testRoom) offSpymaster() *Player {
	if r.state.CurrentTurn == TeamRed {
		return r.blueSpy
	}
	return r.redSpy
}

func (r *testRoom) offOperative() *Player {
	if r.state.CurrentTurn == TeamRed {
		return r.blueOp
	}
	return r.redOp
}

// cardOfType finds an unrevealed card with the given identity.
func cardOfType(t *testing.T, s *State, ct CardType) int {
	t.Helper()
	for i, c := range s.Cards {
		if !c.Revealed && c.Type == ct {
			return i
		}
	}
	t.Fatalf("no unrevealed %s card left", ct)
	return -1
}

// ownCard finds an unrevealed card belonging to the team on turn.
func ownCard(t *testing.T, s *State) int {
	return cardOfType(t, s, CardType(s.CurrentTurn))
}

// giveClue issues a clue from the current spymaster, failing the test on error.
func (r *testRoom) giveClue(t *testing.T, word string, count int) {
	t.Helper()
	require.NoError(t, r.state.GiveClue(r.spymaster().ID, word, count))
}
