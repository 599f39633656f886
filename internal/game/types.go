// internal/game/types.go
//
// Core type definitions for the rules engine.
// Defines:
//   - Team, CardType, Role, Phase: small string enums shared across the engine.
//   - Card, Player, Clue, CardProposal, Reveal: the pieces of a room.
//   - State: the aggregate room state, the unit of storage and mutation.

package game

import (
	"strings"
	"time"
)

// Team identifies one of the two competing teams.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// CardType is the hidden identity of a board card.
// Possible values:
//   - "red"/"blue": belongs to that team.
//   - "neutral":    belongs to neither team.
//   - "assassin":   ends the game immediately for the team that reveals it.
type CardType string

const (
	CardRed      CardType = "red"
	CardBlue     CardType = "blue"
	CardNeutral  CardType = "neutral"
	CardAssassin CardType = "assassin"
)

// Role is a player's function within their team.
type Role string

const (
	RoleSpymaster Role = "spymaster"
	RoleOperative Role = "operative"
)

// Phase is the coarse lifecycle state of a room.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

const (
	// BoardSize is the number of cards on the board (5x5 grid).
	BoardSize = 25

	// MaxPlayers caps the number of players in a room.
	MaxPlayers = 20

	// MinNameLength is the shortest accepted player name after trimming.
	MinNameLength = 2

	// MaxClueCount is the largest number a spymaster may attach to a clue.
	MaxClueCount = 9
)

// Card is one board position. Word and Type are fixed at board creation;
// Revealed/RevealedBy are set exactly once when a guess resolves the card.
type Card struct {
	Word       string   `json:"word"`
	Type       CardType `json:"type"`
	Revealed   bool     `json:"revealed"`
	RevealedBy Team     `json:"revealedBy,omitempty"`
}

// Player is a participant in a room. Team and Role stay empty until assigned
// in the lobby. Exactly one player per room has IsHost set, fixed at creation.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Team   Team   `json:"team,omitempty"`
	Role   Role   `json:"role,omitempty"`
	IsHost bool   `json:"isHost"`
}

// Clue is a single spymaster hint: one word plus how many board words it
// relates to. Clues are append-only history and never edited.
type Clue struct {
	Word     string    `json:"word"`
	Count    int       `json:"count"`
	Team     Team      `json:"team"`
	IssuedAt time.Time `json:"issuedAt"`
}

// CardProposal is a spymaster's nomination of a card for the team to ratify.
// At most one proposal is live per room at any time.
type CardProposal struct {
	CardIndex  int       `json:"cardIndex"`
	Word       string    `json:"word"`
	ProposedBy string    `json:"proposedBy"`
	ProposedAt time.Time `json:"proposedAt"`
	AcceptedBy []string  `json:"acceptedBy"`
	RejectedBy []string  `json:"rejectedBy"`
}

// HasVoted reports whether the player already responded to this proposal.
func (p *CardProposal) HasVoted(playerID string) bool {
	for _, id := range p.AcceptedBy {
		if id == playerID {
			return true
		}
	}
	for _, id := range p.RejectedBy {
		if id == playerID {
			return true
		}
	}
	return false
}

// GuessOutcome classifies a resolved guess from the guessing team's view.
type GuessOutcome string

const (
	OutcomeCorrect  GuessOutcome = "correct"
	OutcomeWrong    GuessOutcome = "wrong"
	OutcomeNeutral  GuessOutcome = "neutral"
	OutcomeAssassin GuessOutcome = "assassin"
)

// Reveal records the most recently resolved guess for transient presentation.
type Reveal struct {
	CardIndex int          `json:"cardIndex"`
	Outcome   GuessOutcome `json:"outcome"`
	Team      Team         `json:"team"`
	At        time.Time    `json:"at"`
}

// State is the whole of a room: board, roster, turn bookkeeping, and history.
// Mutations go through the methods in this package; storage treats State as an
// opaque blob guarded by Revision compare-and-swap.
type State struct {
	RoomCode string   `json:"roomCode"`
	Phase    Phase    `json:"phase"`
	Cards    []Card   `json:"cards"`
	Players  []Player `json:"players"`

	CurrentTurn  Team `json:"currentTurn"`
	StartingTeam Team `json:"startingTeam"`

	Clues            []Clue `json:"clues"`
	CurrentClue      *Clue  `json:"currentClue,omitempty"`
	GuessesRemaining int    `json:"guessesRemaining"`

	RedRemaining  int  `json:"redCardsRemaining"`
	BlueRemaining int  `json:"blueCardsRemaining"`
	Winner        Team `json:"winner,omitempty"`

	// Per-team operative rotation, snapshotted at Start. CurrentPicker is the
	// player currently privileged to submit a guess; empty means any operative
	// on the current team may act.
	CurrentPicker      string   `json:"currentPlayerTurn,omitempty"`
	RedOperativeOrder  []string `json:"redOperativeOrder,omitempty"`
	BlueOperativeOrder []string `json:"blueOperativeOrder,omitempty"`
	RedOperativeIndex  int      `json:"redOperativeIndex"`
	BlueOperativeIndex int      `json:"blueOperativeIndex"`

	Proposal   *CardProposal `json:"cardProposal,omitempty"`
	LastReveal *Reveal       `json:"lastReveal,omitempty"`

	// Revision supports optimistic concurrency at the storage boundary.
	Revision uint64 `json:"revision"`

	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Player returns the roster entry with the given id, or nil.
// The pointer aliases the Players slice, so edits stick.
func (s *State) Player(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// PlayerByName returns the roster entry whose name matches case-insensitively.
func (s *State) PlayerByName(name string) *Player {
	for i := range s.Players {
		if strings.EqualFold(s.Players[i].Name, name) {
			return &s.Players[i]
		}
	}
	return nil
}

// remaining returns a pointer to the unrevealed-card counter for team.
func (s *State) remaining(team Team) *int {
	if team == TeamRed {
		return &s.RedRemaining
	}
	return &s.BlueRemaining
}

// rotation returns team's operative order and a pointer to its index.
func (s *State) rotation(team Team) ([]string, *int) {
	if team == TeamRed {
		return s.RedOperativeOrder, &s.RedOperativeIndex
	}
	return s.BlueOperativeOrder, &s.BlueOperativeIndex
}

// touch bumps the last-activity timestamp, the signal transports poll against.
func (s *State) touch() {
	s.LastActivity = time.Now().UTC()
}

// Clone returns a deep copy of the state. Stores hand out clones so callers
// can never mutate a stored snapshot in place.
func (s *State) Clone() *State {
	c := *s
	c.Cards = append([]Card(nil), s.Cards...)
	c.Players = append([]Player(nil), s.Players...)
	c.Clues = append([]Clue(nil), s.Clues...)
	c.RedOperativeOrder = append([]string(nil), s.RedOperativeOrder...)
	c.BlueOperativeOrder = append([]string(nil), s.BlueOperativeOrder...)
	if s.CurrentClue != nil {
		clue := *s.CurrentClue
		c.CurrentClue = &clue
	}
	if s.Proposal != nil {
		p := *s.Proposal
		p.AcceptedBy = append([]string(nil), s.Proposal.AcceptedBy...)
		p.RejectedBy = append([]string(nil), s.Proposal.RejectedBy...)
		c.Proposal = &p
	}
	if s.LastReveal != nil {
		rev := *s.LastReveal
		c.LastReveal = &rev
	}
	return &c
}
