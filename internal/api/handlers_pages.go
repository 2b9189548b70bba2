package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lox/skycast/internal/render"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := render.BuildPage(controllerFrom(r).Snapshot(), s.pageOptions())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.Page(w, page); err != nil {
		s.log.Error().Err(err).Msg("render page")
	}
}

func (s *Server) handlePartial(w http.ResponseWriter, r *http.Request) {
	page := render.BuildPage(controllerFrom(r).Snapshot(), s.pageOptions())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	err := s.renderer.Partial(w, chi.URLParam(r, "name"), page)
	switch {
	case errors.Is(err, render.ErrUnknownPartial):
		http.NotFound(w, r)
	case err != nil:
		s.log.Error().Err(err).Msg("render partial")
	}
}
