// internal/httpserver/server.go
//
// HTTP wiring for the rooms API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Room endpoints under /api/rooms: lifecycle, lobby, play, proposals.
//   - Optimistic load-apply-save loop against the room store.
//
// Notes:
//   - Every mutating route maps one inbound request to exactly one engine
//     action and responds with the redacted room state for the acting player.
//   - CORS is origin-aware and credentials-enabled (so session cookies work).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"codigosecreto/internal/game"
	"codigosecreto/internal/store"
)

// saveAttempts bounds the optimistic retry loop on revision conflicts.
const saveAttempts = 3

// Server bundles the router and the room store.
type Server struct {
	r     *chi.Mux
	store store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), store: st}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"codigo-secreto","endpoints":["/health","POST /api/rooms","/api/rooms/{code}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleGetState)
			r.Post("/join", s.handleJoin)
			r.Post("/rejoin", s.handleRejoin)
			r.Post("/players", s.handleUpdatePlayer)
			r.Post("/start", s.handleStart)
			r.Post("/clue", s.handleClue)
			r.Post("/guess", s.handleGuess)
			r.Post("/end-turn", s.handleEndTurn)
			r.Post("/reset", s.handleReset)
			r.Post("/proposal", s.handlePropose)
			r.Post("/proposal/respond", s.handleRespondToProposal)
			r.Delete("/proposal", s.handleCancelProposal)
			r.Get("/session", s.handleSession)
			r.Get("/qr", s.handleQR)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:3000")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, `{"error":`+strconv.Quote(msg)+`}`, status)
}

// statusFor maps engine and store errors to HTTP statuses: unknown rooms and
// players are 404, authorization violations 403, everything else 400.
func statusFor(err error) int {
	switch {
	case store.IsNotFound(err), errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case game.IsAuthorization(err):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// mutateRoom runs one engine action inside an optimistic load-apply-save
// loop, retrying on revision conflicts. apply returns response fields merged
// next to the redacted "game" payload for viewerID.
func (s *Server) mutateRoom(w http.ResponseWriter, r *http.Request, code, viewerID string, apply func(st *game.State) (map[string]any, error)) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		st, err := s.store.Load(r.Context(), code)
		if err != nil {
			if store.IsNotFound(err) {
				writeError(w, http.StatusNotFound, "room not found")
			} else {
				writeError(w, http.StatusInternalServerError, "load failed")
			}
			return
		}

		extra, err := apply(st)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		if err := s.store.Save(r.Context(), st); err != nil {
			if store.IsConflict(err) {
				continue
			}
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}

		resp := map[string]any{"game": st.ViewFor(viewerID)}
		for k, v := range extra {
			resp[k] = v
		}
		writeJSON(w, resp)
		return
	}
	writeError(w, http.StatusConflict, "room is busy, try again")
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
