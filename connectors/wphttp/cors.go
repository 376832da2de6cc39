package wphttp

import (
	"net/http"
	"sort"
	"strings"
)

const (
	allowOrigin      = "Access-Control-Allow-Origin"
	allowCredentials = "Access-Control-Allow-Credentials"
	allowMethods     = "Access-Control-Allow-Methods"
	allowHeaders     = "Access-Control-Allow-Headers"
	exposeHeaders    = "Access-Control-Expose-Headers"
	requestMethod    = "Access-Control-Request-Method"
	requestHeaders   = "Access-Control-Request-Headers"
)

// CORS admits every origin with credentials. Browsers ignore a wildcard in
// Access-Control-Expose-Headers on credentialed requests, so each response
// names all of its headers instead.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(allowOrigin, origin)
		w.Header().Set(allowCredentials, "true")

		if r.Method == http.MethodOptions && r.Header.Get(requestMethod) != "" {
			w.Header().Add("Vary", requestHeaders)
			w.Header().Set(allowMethods, "GET, HEAD")
			if requested := r.Header.Get(requestHeaders); requested != "" {
				w.Header().Set(allowHeaders, requested)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(&exposingWriter{ResponseWriter: w}, r)
	})
}

type exposingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *exposingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		expose(w.Header())
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *exposingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *exposingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func expose(header http.Header) {
	names := make([]string, 0, len(header))
	for name := range header {
		if strings.HasPrefix(name, "Access-Control-") || name == "Vary" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return
	}

	sort.Strings(names)
	header.Set(exposeHeaders, strings.Join(names, ", "))
}
