// internal/game/engine.go
//
// The clue/guess state machine. Within a team's turn the room moves from
// awaiting-clue to awaiting-guess and back; a wrong guess, an exhausted clue,
// or a voluntary pass transfers the turn, and a win or the assassin ends the
// game. Every method either fully commits or rejects without mutation.

package game

import (
	"strings"
	"time"
)

// GiveClue records a clue from the current team's spymaster and opens the
// guessing window. The team gets count+1 guesses (the bonus guess is a fixed
// rule of the game). The head of the team's operative rotation becomes the
// designated picker; with no operatives the designation stays empty and any
// operative on the team may act.
//
// The clue word is a single token; it is deliberately not checked against the
// board's words.
func (s *State) GiveClue(playerID, word string, count int) error {
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.Role != RoleSpymaster {
		return ErrNotSpymaster
	}
	if p.Team != s.CurrentTurn {
		return ErrNotYourTurn
	}
	word = strings.TrimSpace(word)
	if word == "" || len(strings.Fields(word)) != 1 {
		return ErrInvalidClue
	}
	if count < 0 || count > MaxClueCount {
		return ErrInvalidCount
	}

	clue := Clue{
		Word:     strings.ToUpper(word),
		Count:    count,
		Team:     p.Team,
		IssuedAt: time.Now().UTC(),
	}
	s.Clues = append(s.Clues, clue)
	s.CurrentClue = &clue
	s.GuessesRemaining = count + 1
	s.CurrentPicker = s.rotationHead(p.Team)
	s.LastReveal = nil
	s.touch()
	return nil
}

// MakeGuess resolves a guess by an operative on the current team against the
// key. The card is revealed exactly once and one of four outcomes follows:
//
//   - assassin: the guessing team loses outright and the room is finished.
//   - own-team card: that team's counter drops; reaching zero wins the game,
//     otherwise a guess is spent and the turn continues while guesses remain.
//   - neutral: the turn passes, no counter changes.
//   - opponent's card: the opponent's counter drops (they may win on it) and
//     the turn passes.
//
// Any live proposal is cleared by a resolved guess. The reveal record is
// written after turn bookkeeping so it survives for presentation.
func (s *State) MakeGuess(playerID string, cardIndex int) (GuessOutcome, error) {
	if s.Phase != PhasePlaying {
		return "", ErrWrongPhase
	}
	p := s.Player(playerID)
	if p == nil {
		return "", ErrPlayerNotFound
	}
	if p.Role != RoleOperative {
		return "", ErrNotOperative
	}
	if p.Team != s.CurrentTurn {
		return "", ErrNotYourTurn
	}
	if s.CurrentPicker != "" && s.CurrentPicker != playerID {
		return "", ErrNotYourPick
	}
	if s.GuessesRemaining <= 0 {
		return "", ErrNoGuesses
	}
	if cardIndex < 0 || cardIndex >= len(s.Cards) {
		return "", ErrCardIndex
	}
	card := &s.Cards[cardIndex]
	if card.Revealed {
		return "", ErrCardRevealed
	}

	card.Revealed = true
	card.RevealedBy = p.Team
	s.Proposal = nil

	var outcome GuessOutcome
	switch {
	case card.Type == CardAssassin:
		outcome = OutcomeAssassin
		s.finish(p.Team.Opponent())

	case card.Type == CardType(p.Team):
		outcome = OutcomeCorrect
		rem := s.remaining(p.Team)
		*rem--
		if *rem == 0 {
			s.finish(p.Team)
		} else {
			s.GuessesRemaining--
			if s.GuessesRemaining == 0 {
				s.passTurn()
			}
		}

	case card.Type == CardNeutral:
		outcome = OutcomeNeutral
		s.passTurn()

	default: // opponent's card
		outcome = OutcomeWrong
		opp := p.Team.Opponent()
		rem := s.remaining(opp)
		*rem--
		if *rem == 0 {
			s.finish(opp)
		} else {
			s.passTurn()
		}
	}

	s.LastReveal = &Reveal{
		CardIndex: cardIndex,
		Outcome:   outcome,
		Team:      p.Team,
		At:        time.Now().UTC(),
	}
	s.touch()
	return outcome, nil
}

// EndTurn passes the turn voluntarily. Any member of the current team may
// pass. The clue, guesses, proposal, and reveal record are all cleared.
func (s *State) EndTurn(playerID string) error {
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.Team != s.CurrentTurn {
		return ErrNotYourTurn
	}

	s.passTurn()
	s.LastReveal = nil
	s.touch()
	return nil
}

// passTurn transfers the turn to the other team and advances the incoming
// team's rotation by one. The clue, guess counter, proposal, and picker
// designation are cleared.
func (s *State) passTurn() {
	s.CurrentTurn = s.CurrentTurn.Opponent()
	s.CurrentClue = nil
	s.GuessesRemaining = 0
	s.Proposal = nil
	s.CurrentPicker = ""

	order, idx := s.rotation(s.CurrentTurn)
	if len(order) > 0 {
		*idx = (*idx + 1) % len(order)
	}
}

// finish ends the game. Terminal: no further rotation or turn changes.
func (s *State) finish(winner Team) {
	s.Winner = winner
	s.Phase = PhaseFinished
}

// rotationHead returns team's current designated operative, or "" when the
// team has no operative rotation.
func (s *State) rotationHead(team Team) string {
	order, idx := s.rotation(team)
	if len(order) == 0 {
		return ""
	}
	return order[*idx%len(order)]
}
