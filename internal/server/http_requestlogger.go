package server

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/bokysan/basecodec/internal/args"
	"github.com/bokysan/basecodec/internal/logging"
)

type NextHandlerFunc func(next http.Handler) http.Handler

func GetRequestLogger(address *net.TCPAddr) (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		logger = middleware.RequestLogger( // Write requests to log
			&logging.JSONLogFormatter{
				ServerAddress: address,
			},
		)
	} else {
		logger = middleware.RequestLogger( // Write requests to log
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: logging.DisableColors(),
			},
		)
	}

	return
}

// ServerHeader sets the `Server` response header.
func ServerHeader(value string) NextHandlerFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", value)
			next.ServeHTTP(w, r)
		})
	}
}
