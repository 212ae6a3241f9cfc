/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"time"

	"github.com/Seednode/labopoly/games/labopoly"
	"github.com/julienschmidt/httprouter"
)

func newRegistry(cfg *Config) (*labopoly.Registry, error) {
	bank, err := labopoly.LoadQuestionBank(cfg.questions)
	if err != nil {
		return nil, err
	}

	return labopoly.NewRegistry(labopoly.Options{
		Logf: func(format string, args ...any) {
			logf(cfg, format, args...)
		},
		Questions:      bank,
		Timers:         labopoly.DefaultTimers().Scale(cfg.timerScale),
		ReadyDelay:     cfg.readyDelay,
		SessionTimeout: cfg.sessionTimeout,
	})
}

func withHeaders(cfg *Config, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		cw := &countingWriter{ResponseWriter: w}

		securityHeaders(cfg, cw)
		h(cw, r, p)

		logf(cfg, "SERVE: %s %s (%s) to %s in %s",
			r.Method,
			r.URL.Path,
			humanReadableSize(cw.written),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerLabopoly sets up routes so that:
//   - POST $path/create         → new room, replies {"roomId": ...}
//   - $path/ws                  → websocket; send joinRoom to enter a room
//   - $path/room/:room/qr       → PNG QR code for that room's URL
func registerLabopoly(cfg *Config, path string, mux *httprouter.Router, reg *labopoly.Registry) {
	mux.POST(cfg.prefix+path+"/create", withHeaders(cfg, labopoly.ServeCreate(reg)))

	mux.GET(cfg.prefix+path+"/ws", labopoly.ServeWS(reg))

	mux.GET(cfg.prefix+path+"/room/:room/qr", withHeaders(cfg, labopoly.ServeQR(reg)))
}
