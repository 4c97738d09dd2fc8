// Package devserver is an opt-in HTTP introspection server exposing the
// engine's current CompiledProgram and last RenderFrameIR as JSON, for an
// external graph editor or renderer to poll without this repo needing to
// implement either. Not part of the spec's core contract; additive
// tooling per SPEC_FULL.md §12, grounded on the teacher's akita
// monitoring dashboard playing the same "introspect the running thing"
// role for a simulation.
package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/flowframe/engine/engine"
	"github.com/gorilla/mux"
)

// Server wraps an *engine.Engine with a small read-only JSON API.
type Server struct {
	eng    *engine.Engine
	router *mux.Router
}

// New builds a Server routing GET /program, GET /frame, and GET /pool
// against eng.
func New(eng *engine.Engine) *Server {
	s := &Server{eng: eng, router: mux.NewRouter()}
	s.router.HandleFunc("/program", s.handleProgram).Methods(http.MethodGet)
	s.router.HandleFunc("/frame", s.handleFrame).Methods(http.MethodGet)
	s.router.HandleFunc("/pool", s.handlePool).Methods(http.MethodGet)
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.eng.CurrentProgram())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.eng.LastFrame())
}

func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.eng.PoolOccupancy())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
