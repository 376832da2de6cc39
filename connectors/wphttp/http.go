package wphttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-poll-go/wp"
)

const (
	CountPath  = "/count"
	HealthPath = "/healthz"
)

// Source supplies the counter snapshot served by the handler.
type Source interface {
	Snapshot() wp.Snapshot
}

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

func NewHandler(source Source, options ...HandlerOption) http.Handler {
	service := &httpService{source: source}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(withLogging(service.log))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Method(http.MethodGet, CountPath, service.getCount())
	r.Method(http.MethodGet, HealthPath, service.getHealth())

	return WithTelemetry(r, "wee-poll-http")
}

type httpService struct {
	log    *zerolog.Logger
	source Source
}

func (service *httpService) getCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := service.source.Snapshot()

		w.Header().Set("ETag", snapshot.Validator)
		if snapshot.Matches(r.Header.Get("If-None-Match")) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		render.PlainText(w, r, snapshot.Text)
	}
}

type health struct {
	Status string `json:"status"`
	Value  uint64 `json:"value"`
}

func (service *httpService) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.MarshalContext(r.Context(), health{Status: "ok", Value: service.source.Snapshot().Value})
		if err != nil {
			service.log.Error().Err(err).Msg("failed to encode health")
			http.Error(w, "failed to encode health", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			service.log.Debug().Err(err).Msg("failed to write health")
		}
	}
}
