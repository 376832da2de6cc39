package wphttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func withLogging(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		logFn := func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()

			uri := r.RequestURI
			method := r.Method
			ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
			h.ServeHTTP(ww, r)

			log.Info().
				Str("uri", uri).
				Str("method", method).
				Int("status", ww.Status()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Dur("duration", time.Since(start)).
				Msg("request")
		}
		return http.HandlerFunc(logFn)
	}
}
