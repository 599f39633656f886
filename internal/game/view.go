// internal/game/view.go
//
// Read-time projection of a room for a particular viewer. Card identities are
// secret: anyone who is not a spymaster sees unrevealed cards as neutral
// until the game finishes. The projection never mutates the source state.

package game

// ViewFor returns a deep copy of the state redacted for the given viewer.
// Spymasters see the full key; everyone else (including unknown viewer IDs)
// sees unrevealed card identities as neutral while the game is live.
func (s *State) ViewFor(playerID string) *State {
	v := s.Clone()
	if s.Phase == PhaseFinished {
		return v
	}
	if p := s.Player(playerID); p != nil && p.Role == RoleSpymaster {
		return v
	}
	for i := range v.Cards {
		if !v.Cards[i].Revealed {
			v.Cards[i].Type = CardNeutral
		}
	}
	return v
}
