// internal/game/errors.go
//
// Domain errors returned by the rules engine. Every rule violation is a
// recoverable, caller-visible error: the engine performs no partial mutation
// on failure, so callers may retry after correcting the precondition.

package game

import "errors"

var (
	// Authorization: wrong role, team, or turn for the action.
	ErrNotHost      = errors.New("only the host may do that")
	ErrNotYourTurn  = errors.New("it is not your team's turn")
	ErrNotSpymaster = errors.New("only the spymaster may do that")
	ErrNotOperative = errors.New("only operatives may guess")
	ErrNotYourPick  = errors.New("another operative is picking this turn")
	ErrNotProposer  = errors.New("only the proposer may cancel a proposal")

	// Sequencing: action arrived in the wrong state.
	ErrWrongPhase   = errors.New("action not allowed in this phase")
	ErrNoClue       = errors.New("no clue has been given")
	ErrNoGuesses    = errors.New("no guesses remaining")
	ErrCardRevealed = errors.New("card already revealed")
	ErrProposalLive = errors.New("a proposal is already pending")
	ErrNoProposal   = errors.New("no proposal is pending")
	ErrAlreadyVoted = errors.New("already voted on this proposal")

	// Validation: malformed input.
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	ErrInvalidClue  = errors.New("clue must be a single non-empty word")
	ErrInvalidCount = errors.New("clue count must be between 0 and 9")
	ErrCardIndex    = errors.New("card index out of range")
	ErrSmallPool    = errors.New("word pool must contain at least 25 distinct words")

	// Capacity and lookup failures.
	ErrRoomFull       = errors.New("room is full")
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameInProgress = errors.New("game already started, rejoin with your previous name")
	ErrSpymasterTaken = errors.New("that team already has a spymaster")
	ErrLobbyNotReady  = errors.New("lobby is not ready to start")
)

// IsAuthorization reports whether err is a wrong-role/team/turn violation.
// Transports use this to pick a 403 over a 400.
func IsAuthorization(err error) bool {
	for _, e := range []error{ErrNotHost, ErrNotYourTurn, ErrNotSpymaster, ErrNotOperative, ErrNotYourPick, ErrNotProposer} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
