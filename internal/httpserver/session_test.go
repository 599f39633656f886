package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWithCookie(t *testing.T, s *Server) (code, playerID string, cookie *http.Cookie) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"hostName": "Ana"}))
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName() {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	return resp.Game.RoomCode, resp.PlayerID, cookie
}

func TestSessionRecovery(t *testing.T) {
	s := newTestServer(t)
	code, playerID, cookie := createWithCookie(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code+"/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, playerID, got.PlayerID)
	assert.Equal(t, "Ana", got.Name)
}

func TestSessionMissingCookie(t *testing.T) {
	s := newTestServer(t)
	code, _, _ := createWithCookie(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code+"/session", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionWrongRoom(t *testing.T) {
	s := newTestServer(t)
	_, _, cookie := createWithCookie(t, s)
	otherCode, _, _ := createWithCookie(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+otherCode+"/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionTamperedToken(t *testing.T) {
	s := newTestServer(t)
	code, _, cookie := createWithCookie(t, s)

	cookie.Value += "x"
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+code+"/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignSessionRoundTrip(t *testing.T) {
	tok, err := signSession("ABC234", "player-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}
