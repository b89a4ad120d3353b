package httpserver

import "net/http"

// Routes aggregates handlers for HTTP server.
type Routes struct {
	Page     http.HandlerFunc
	Readings http.HandlerFunc
	Live     http.HandlerFunc
	Health   http.HandlerFunc
	Metrics  http.Handler
}

// NewRouter wires all HTTP routes.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Page != nil {
		mux.Handle("/{$}", method(http.MethodGet, routes.Page))
	}
	if routes.Readings != nil {
		mux.Handle("/api/readings", method(http.MethodGet, routes.Readings))
	}
	if routes.Live != nil {
		mux.Handle("/ws", method(http.MethodGet, routes.Live))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", method(http.MethodGet, routes.Metrics.ServeHTTP))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
