/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

type createResponse struct {
	RoomID string `json:"roomId"`
}

// ServeCreate opens a new room and replies with its code.
func ServeCreate(reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		room, err := reg.Create()
		if errors.Is(err, ErrNoFreeRoomCodes) {
			http.Error(w, "no rooms available, try again later", http.StatusServiceUnavailable)

			return
		}
		if err != nil {
			http.Error(w, "unable to create room", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(createResponse{RoomID: room.Code()})
	}
}

// ServeQR generates a PNG QR code pointing at a room's join URL.
func ServeQR(reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := ps.ByName("room")
		if _, ok := reg.Get(code); !ok {
			http.Error(w, "no such room", http.StatusNotFound)

			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}
