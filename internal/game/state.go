// internal/game/state.go
//
// Room lifecycle: creation, joining, rejoining, lobby assignments, starting
// a game, and resetting a finished one. Everything here operates on a single
// State snapshot; storage-level concurrency control lives in internal/store.

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRoom creates a fresh room in the lobby phase with one host player.
// pool must supply at least 25 distinct words for the initial board.
func NewRoom(hostName string, pool []string) (*State, error) {
	hostName = strings.TrimSpace(hostName)
	if len(hostName) < MinNameLength {
		return nil, ErrNameTooShort
	}

	now := time.Now().UTC()
	s := &State{
		RoomCode: NewRoomCode(),
		Players: []Player{{
			ID:     uuid.NewString(),
			Name:   hostName,
			IsHost: true,
		}},
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := s.dealBoard(pool); err != nil {
		return nil, err
	}
	return s, nil
}

// dealBoard installs a fresh key and board and clears all play state.
// Shared by NewRoom and Reset; the roster is untouched.
func (s *State) dealBoard(pool []string) error {
	key := NewKey()
	cards, err := BuildBoard(key, pool)
	if err != nil {
		return err
	}

	s.Phase = PhaseLobby
	s.Cards = cards
	s.StartingTeam = key.StartingTeam
	s.CurrentTurn = key.StartingTeam
	s.Clues = nil
	s.CurrentClue = nil
	s.GuessesRemaining = 0
	s.RedRemaining = 8
	s.BlueRemaining = 8
	*s.remaining(key.StartingTeam) = 9
	s.Winner = ""
	s.CurrentPicker = ""
	s.RedOperativeOrder = nil
	s.BlueOperativeOrder = nil
	s.RedOperativeIndex = 0
	s.BlueOperativeIndex = 0
	s.Proposal = nil
	s.LastReveal = nil
	s.touch()
	return nil
}

// AddPlayer appends a new unassigned player. Joining is only possible while
// the room is still in the lobby; latecomers reconnect through Rejoin.
func (s *State) AddPlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return nil, ErrNameTooShort
	}
	if s.Phase != PhaseLobby {
		return nil, ErrGameInProgress
	}
	if len(s.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	s.Players = append(s.Players, Player{
		ID:   uuid.NewString(),
		Name: name,
	})
	s.touch()
	return &s.Players[len(s.Players)-1], nil
}

// Rejoin reconnects a player by case-insensitive name match, in any phase.
// An unknown name joins as a new player while the room is in the lobby and
// fails otherwise.
func (s *State) Rejoin(name string) (*Player, bool, error) {
	if p := s.PlayerByName(strings.TrimSpace(name)); p != nil {
		s.touch()
		return p, true, nil
	}
	p, err := s.AddPlayer(name)
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}

// UpdatePlayer reassigns a player's team and role. Assigning a second
// spymaster to a team is rejected. Assignments are accepted in any phase but
// only consumed before Start; rotation snapshots are never recalculated.
func (s *State) UpdatePlayer(playerID string, team Team, role Role) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if role == RoleSpymaster && team != "" {
		for i := range s.Players {
			other := &s.Players[i]
			if other.ID != playerID && other.Team == team && other.Role == RoleSpymaster {
				return ErrSpymasterTaken
			}
		}
	}
	p.Team = team
	p.Role = role
	s.touch()
	return nil
}

// CanStart reports whether the lobby is ready: each team needs at least two
// players and exactly one spymaster. The reason is human-readable.
func (s *State) CanStart() (bool, string) {
	var redCount, blueCount int
	var redSpymaster, blueSpymaster bool
	for i := range s.Players {
		switch p := &s.Players[i]; p.Team {
		case TeamRed:
			redCount++
			if p.Role == RoleSpymaster {
				redSpymaster = true
			}
		case TeamBlue:
			blueCount++
			if p.Role == RoleSpymaster {
				blueSpymaster = true
			}
		}
	}
	switch {
	case redCount < 2:
		return false, "the red team needs at least 2 players"
	case blueCount < 2:
		return false, "the blue team needs at least 2 players"
	case !redSpymaster:
		return false, "the red team needs a spymaster"
	case !blueSpymaster:
		return false, "the blue team needs a spymaster"
	}
	return true, ""
}

// Start moves the room from lobby to playing. Host only. Each team's
// operatives are snapshotted in registration order into independent rotation
// sequences; later roster edits do not change them.
func (s *State) Start(playerID string) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if s.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	if ok, reason := s.CanStart(); !ok {
		return fmt.Errorf("%w: %s", ErrLobbyNotReady, reason)
	}

	s.RedOperativeOrder = s.operativeIDs(TeamRed)
	s.BlueOperativeOrder = s.operativeIDs(TeamBlue)
	s.RedOperativeIndex = 0
	s.BlueOperativeIndex = 0
	s.CurrentPicker = ""
	s.Phase = PhasePlaying
	s.touch()
	return nil
}

// operativeIDs collects team's operatives in registration order.
func (s *State) operativeIDs(team Team) []string {
	var ids []string
	for i := range s.Players {
		if p := &s.Players[i]; p.Team == team && p.Role == RoleOperative {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Reset deals a fresh board and returns the room to the lobby, preserving the
// roster and player identities. Host only; allowed in any phase so the host
// can abandon a stuck game.
func (s *State) Reset(playerID string, pool []string) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if !p.IsHost {
		return ErrNotHost
	}
	return s.dealBoard(pool)
}
