package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewForRedactsUnrevealedCards(t *testing.T) {
	r := startedRoom(t)
	s := r.state

	r.giveClue(t, "OCEAN", 2)
	revealed := ownCard(t, s)
	_, err := s.MakeGuess(r.operative().ID, revealed)
	require.NoError(t, err)

	for _, viewer := range []string{r.redOp.ID, r.blueOp.ID, "", "stranger"} {
		v := s.ViewFor(viewer)
		for i, c := range v.Cards {
			if i == revealed {
				assert.True(t, c.Revealed)
				assert.Equal(t, s.Cards[i].Type, c.Type, "revealed identities are public")
			} else {
				assert.Equal(t, CardNeutral, c.Type, "viewer %q card %d", viewer, i)
			}
		}
	}
}

func TestViewForSpymasterSeesKey(t *testing.T) {
	r := startedRoom(t)
	s := r.state

	for _, spy := range []string{r.redSpy.ID, r.blueSpy.ID} {
		v := s.ViewFor(spy)
		for i, c := range v.Cards {
			assert.Equal(t, s.Cards[i].Type, c.Type)
		}
	}
}

func TestViewForFinishedGameIsPublic(t *testing.T) {
	r := startedRoom(t)
	s := r.state

	r.giveClue(t, "OCEAN", 2)
	_, err := s.MakeGuess(r.operative().ID, cardOfType(t, s, CardAssassin))
	require.NoError(t, err)
	require.Equal(t, PhaseFinished, s.Phase)

	v := s.ViewFor(r.redOp.ID)
	for i, c := range v.Cards {
		assert.Equal(t, s.Cards[i].Type, c.Type)
	}
}

func TestViewForDoesNotAliasState(t *testing.T) {
	r := startedRoom(t)
	s := r.state

	v := s.ViewFor(r.redOp.ID)
	v.Cards[0].Revealed = true
	v.Players[0].Name = "changed"

	assert.False(t, s.Cards[0].Revealed)
	assert.Equal(t, "Ana", s.Players[0].Name)
}
