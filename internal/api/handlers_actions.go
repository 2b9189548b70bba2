package api

import (
	"context"
	"net/http"

	"github.com/lox/skycast/internal/locate"
)

// Actions run to completion even if the browser goes away; their results
// still land in the session state.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// handleLocate receives the outcome of the page's geolocation request.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	report := locate.ParseBrowserReport(r.PostForm)
	controllerFrom(r).Startup(detach(r), report)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSearch looks up the submitted city. The text is passed on as typed.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	controllerFrom(r).Search(detach(r), r.PostForm.Get("city"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	controllerFrom(r).ToggleDarkMode()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
