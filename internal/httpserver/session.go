// internal/httpserver/session.go
//
// Room-scoped session cookies. On create/join/rejoin the server signs a JWT
// carrying the room code and player id, so a reloaded browser can recover its
// identity without retyping the name. This is transport convenience layered
// over the engine's Rejoin; the engine itself only ever sees player ids.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const sessionLifetime = 7 * 24 * time.Hour

func sessionSecret() []byte {
	return []byte(getEnv("SESSION_SECRET", "dev_secret_change_me"))
}

func sessionCookieName() string {
	return getEnv("COOKIE_NAME", "cs_session")
}

// signSession creates an HS256 JWT binding a player id to a room code.
func signSession(roomCode, playerID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"room":     roomCode,
		"playerId": playerID,
		"exp":      time.Now().Add(sessionLifetime).Unix(),
		"iat":      time.Now().Unix(),
	})
	return t.SignedString(sessionSecret())
}

// setSessionCookie writes the session cookie with appropriate security
// attributes. Errors are non-fatal: clients can always rejoin by name.
func (s *Server) setSessionCookie(w http.ResponseWriter, roomCode, playerID string) {
	tok, err := signSession(roomCode, playerID)
	if err != nil {
		return
	}
	secure := os.Getenv("APP_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName(),
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(sessionLifetime),
	})
}

// handleSession recovers the caller's player id for a room from the session
// cookie. Answers 401 when the cookie is missing, invalid, or scoped to a
// different room.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, err := r.Cookie(sessionCookieName())
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return sessionSecret(), nil
	})
	if err != nil || !tok.Valid {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	room, _ := claims["room"].(string)
	playerID, _ := claims["playerId"].(string)
	if playerID == "" || room != code {
		writeError(w, http.StatusUnauthorized, "session is for another room")
		return
	}

	// Confirm the player still exists in the room.
	st, err := s.store.Load(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	p := st.Player(playerID)
	if p == nil {
		writeError(w, http.StatusUnauthorized, "player no longer in room")
		return
	}

	writeJSON(w, map[string]any{"playerId": p.ID, "name": p.Name})
}
