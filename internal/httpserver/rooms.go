// internal/httpserver/rooms.go
//
// Handlers for the rooms API. Each handler decodes one request, applies one
// engine action through the store's load-apply-save loop, and responds with
// the redacted room state for the acting player.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"codigosecreto/internal/game"
	"codigosecreto/internal/store"
	"codigosecreto/internal/words"
)

// ------------------------------ lifecycle ----------------------------------

type createReq struct {
	HostName string `json:"hostName"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	pool, err := words.Sample(game.BoardSize)
	if err != nil {
		log.Error().Err(err).Msg("sample words")
		writeError(w, http.StatusInternalServerError, "word pool unavailable")
		return
	}

	st, err := game.NewRoom(req.HostName, pool)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err := s.store.Save(r.Context(), st); err != nil {
		log.Error().Err(err).Str("room", st.RoomCode).Msg("save room")
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	host := st.Players[0]
	s.setSessionCookie(w, st.RoomCode, host.ID)
	log.Info().Str("room", st.RoomCode).Str("host", host.Name).Msg("room created")
	writeJSON(w, map[string]any{
		"game":     st.ViewFor(host.ID),
		"playerId": host.ID,
	})
}

type joinReq struct {
	PlayerName string `json:"playerName"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req joinReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	var playerID string
	s.mutateRoom(w, r, code, "", func(st *game.State) (map[string]any, error) {
		p, err := st.AddPlayer(req.PlayerName)
		if err != nil {
			return nil, err
		}
		playerID = p.ID
		s.setSessionCookie(w, st.RoomCode, p.ID)
		return map[string]any{"playerId": p.ID}, nil
	})
	if playerID != "" {
		log.Info().Str("room", code).Str("player", req.PlayerName).Msg("player joined")
	}
}

func (s *Server) handleRejoin(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req joinReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, "", func(st *game.State) (map[string]any, error) {
		p, reconnected, err := st.Rejoin(req.PlayerName)
		if err != nil {
			return nil, err
		}
		s.setSessionCookie(w, st.RoomCode, p.ID)
		return map[string]any{"playerId": p.ID, "reconnected": reconnected}, nil
	})
}

// handleGetState serves the redacted room state for polling clients. With a
// "since" query parameter (unix milliseconds) an unchanged room answers
// 304 Not Modified, so clients can poll cheaply.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	st, err := s.store.Load(r.Context(), code)
	if err != nil {
		if store.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "room not found")
		} else {
			writeError(w, http.StatusInternalServerError, "load failed")
		}
		return
	}

	if since := parseInt64(r.URL.Query().Get("since")); since > 0 {
		if st.LastActivity.UnixMilli() <= since {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	viewerID := r.URL.Query().Get("playerId")
	writeJSON(w, map[string]any{"game": st.ViewFor(viewerID)})
}

// ------------------------------- lobby -------------------------------------

type updatePlayerReq struct {
	PlayerID string `json:"playerId"`
	Team     string `json:"team"`
	Role     string `json:"role"`
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req updatePlayerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	team, ok := parseTeam(req.Team)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid team")
		return
	}
	role, ok := parseRole(req.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.UpdatePlayer(req.PlayerID, team, role)
	})
}

type playerReq struct {
	PlayerID string `json:"playerId"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.Start(req.PlayerID)
	})
}

// -------------------------------- play -------------------------------------

type clueReq struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
	Count    int    `json:"count"`
}

func (s *Server) handleClue(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req clueReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.GiveClue(req.PlayerID, req.Word, req.Count)
	})
}

type guessReq struct {
	PlayerID  string `json:"playerId"`
	CardIndex int    `json:"cardIndex"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req guessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		outcome, err := st.MakeGuess(req.PlayerID, req.CardIndex)
		if err != nil {
			return nil, err
		}
		return map[string]any{"result": outcome}, nil
	})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.EndTurn(req.PlayerID)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		pool, err := words.Sample(game.BoardSize)
		if err != nil {
			return nil, err
		}
		return nil, st.Reset(req.PlayerID, pool)
	})
}

// ----------------------------- proposals -----------------------------------

func (s *Server) handlePropose(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req guessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.ProposeCard(req.PlayerID, req.CardIndex)
	})
}

type respondReq struct {
	PlayerID string `json:"playerId"`
	Accept   bool   `json:"accept"`
}

// handleRespondToProposal records a vote. The first acceptance resolves the
// proposal's card immediately through MakeGuess on behalf of the voter, in
// the same load-apply-save round trip, so the reveal happens exactly once.
func (s *Server) handleRespondToProposal(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req respondReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		reveal, err := st.RespondToProposal(req.PlayerID, req.Accept)
		if err != nil {
			return nil, err
		}
		if !reveal {
			return map[string]any{"proposalAccepted": false}, nil
		}

		outcome, err := st.MakeGuess(req.PlayerID, st.Proposal.CardIndex)
		if err != nil {
			return nil, err
		}
		return map[string]any{"proposalAccepted": true, "result": outcome}, nil
	})
}

func (s *Server) handleCancelProposal(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mutateRoom(w, r, code, req.PlayerID, func(st *game.State) (map[string]any, error) {
		return nil, st.CancelProposal(req.PlayerID)
	})
}

// ------------------------------ parsing ------------------------------------

func parseTeam(s string) (game.Team, bool) {
	switch game.Team(s) {
	case "", game.TeamRed, game.TeamBlue:
		return game.Team(s), true
	}
	return "", false
}

func parseRole(s string) (game.Role, bool) {
	switch game.Role(s) {
	case "", game.RoleSpymaster, game.RoleOperative:
		return game.Role(s), true
	}
	return "", false
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
