package lookerlib

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const httpRequestTimeout = time.Minute

type httpHandler struct {
	looker *Looker
}

func (h httpHandler) handleSelf(w http.ResponseWriter, req *http.Request) {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	if host == "" {
		h.sendError(w, nil, "Cannot detect your IP address", http.StatusBadRequest)

		return
	}

	h.handleIP(w, req, host)
}

func (h httpHandler) handleGetIP(w http.ResponseWriter, req *http.Request) {
	h.handleIP(w, req, chi.URLParam(req, "ip"))
}

func (h httpHandler) handleIP(w http.ResponseWriter, req *http.Request, ip string) {
	report, err := h.looker.Lookup(req.Context(), ip, req.URL.Query()["source"])
	switch {
	case errors.Is(err, ErrUnknownSource):
		h.sendError(w, err, "Incorrect source", http.StatusBadRequest)

		return
	case err != nil:
		h.sendError(w, err, "Cannot look up IP address", 0)

		return
	}

	if !report.OK() {
		h.sendError(w, nil, "No sources returned results", http.StatusServiceUnavailable)

		return
	}

	response := struct {
		Result Report   `json:"result"`
		Lines  []string `json:"lines"`
	}{
		Result: report,
		Lines:  report.Lines(),
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleSources(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Results []Source `json:"results"`
	}{
		Results: h.looker.Sources(),
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleStats(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Results []*UsageStats `json:"results"`
	}{
		Results: h.looker.UsageStats(),
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	json.NewEncoder(w).Encode(e) // nolint: errcheck
}

// NewHTTPHandler returns HTTP API of the looker:
//
//   GET /          - look up an IP address of the caller
//   GET /sources   - list configured sources
//   GET /stats     - usage statistics of sources
//   GET /{ip}      - look up the given IP address
//
// Lookup endpoints accept repeated ?source= parameters to limit a set
// of sources.
func NewHTTPHandler(looker *Looker) http.Handler {
	handler := httpHandler{
		looker: looker,
	}
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(httpRequestTimeout))

	router.Get("/", handler.handleSelf)
	router.Get("/sources", handler.handleSources)
	router.Get("/stats", handler.handleStats)
	router.Get("/{ip}", handler.handleGetIP)

	return router
}
