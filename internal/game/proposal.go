// internal/game/proposal.go
//
// The propose-and-vote guessing path for teams whose designated operative is
// unavailable: the spymaster nominates a card, teammates vote, and the first
// acceptance signals the caller to resolve the card through MakeGuess on
// behalf of the accepting voter.

package game

import "time"

// ProposeCard creates a proposal for an unrevealed card. Only the current
// team's spymaster may propose, only while a clue is live, and only when no
// other proposal is pending.
func (s *State) ProposeCard(playerID string, cardIndex int) error {
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
	if s.CurrentClue == nil {
		return ErrNoClue
	}
	if cardIndex < 0 || cardIndex >= len(s.Cards) {
		return ErrCardIndex
	}
	if s.Cards[cardIndex].Revealed {
		return ErrCardRevealed
	}
	if s.Proposal != nil {
		return ErrProposalLive
	}

	s.Proposal = &CardProposal{
		CardIndex:  cardIndex,
		Word:       s.Cards[cardIndex].Word,
		ProposedBy: playerID,
		ProposedAt: time.Now().UTC(),
	}
	s.touch()
	return nil
}

// RespondToProposal records one operative's vote on the live proposal.
// A rejection is merely recorded and reveal is false. An acceptance makes the
// voter the designated picker and returns reveal true: the caller must then
// resolve the proposal's card exactly once via MakeGuess on behalf of the
// accepting voter. The proposal itself is cleared by that resolving guess.
func (s *State) RespondToProposal(playerID string, accept bool) (reveal bool, err error) {
	if s.Phase != PhasePlaying {
		return false, ErrWrongPhase
	}
	p := s.Player(playerID)
	if p == nil {
		return false, ErrPlayerNotFound
	}
	if p.Role != RoleOperative {
		return false, ErrNotOperative
	}
	if p.Team != s.CurrentTurn {
		return false, ErrNotYourTurn
	}
	if s.Proposal == nil {
		return false, ErrNoProposal
	}
	if s.Proposal.HasVoted(playerID) {
		return false, ErrAlreadyVoted
	}

	if !accept {
		s.Proposal.RejectedBy = append(s.Proposal.RejectedBy, playerID)
		s.touch()
		return false, nil
	}

	s.Proposal.AcceptedBy = append(s.Proposal.AcceptedBy, playerID)
	// The acceptance transfers the pick to the voter so the resolving guess is
	// an ordinary MakeGuess with all its invariants.
	s.CurrentPicker = playerID
	s.touch()
	return true, nil
}

// CancelProposal withdraws the live proposal. Only the original proposer may
// cancel, and only while their team still holds the turn.
func (s *State) CancelProposal(playerID string) error {
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := s.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if s.Proposal == nil {
		return ErrNoProposal
	}
	if s.Proposal.ProposedBy != playerID {
		return ErrNotProposer
	}
	if p.Team != s.CurrentTurn {
		return ErrNotYourTurn
	}

	s.Proposal = nil
	s.touch()
	return nil
}
