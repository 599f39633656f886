// internal/httpserver/qr.go
//
// QR codes for sharing a room. The encoded URL points at the client's join
// page for the room code, so a phone can scan straight into the lobby.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"codigosecreto/internal/store"
)

const qrSize = 256

// handleQR serves a PNG QR code of the join URL for an existing room.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := s.store.Load(r.Context(), code); err != nil {
		if store.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "room not found")
		} else {
			writeError(w, http.StatusInternalServerError, "load failed")
		}
		return
	}

	joinURL := getEnv("CLIENT_ORIGIN", "http://localhost:3000") + "/unirse/" + code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "qr encode failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
