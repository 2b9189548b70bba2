package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lox/skycast/internal/imagegen"
	"github.com/lox/skycast/internal/render"
	"github.com/lox/skycast/internal/theme"
)

// handleBanner serves the banner for a "<condition>_<time>" key, generating
// it on first use when generation is enabled.
func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	condition, tod, ok := theme.ParseConditionWithTime(chi.URLParam(r, "key"))
	if !ok || s.banners == nil {
		http.NotFound(w, r)
		return
	}

	data, err := s.banners.Get(r.Context(), condition, tod)
	switch {
	case errors.Is(err, imagegen.ErrUnavailable):
		http.NotFound(w, r)
		return
	case err != nil:
		s.log.Error().Err(err).Str("condition", string(condition)).Str("tod", string(tod)).Msg("banner generation failed")
		http.Error(w, "Image generation failed", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// handleOGImage serves a share card for the session's current weather.
func (s *Server) handleOGImage(w http.ResponseWriter, r *http.Request) {
	page := render.BuildPage(controllerFrom(r).Snapshot(), s.pageOptions())

	card := imagegen.CardData{Palette: page.Palette}
	if cur := page.Current; cur != nil {
		card.City = cur.City
		card.Temp = cur.Temp
		card.Description = cur.Description
		if s.banners != nil {
			if bg, ok := s.banners.Background(theme.ConditionWithTime(page.Condition, page.TimeOfDay)); ok {
				card.Background = bg
			}
		}
	}

	key := card.Key()
	data, ok := s.cards.Get(key)
	if !ok {
		var err error
		data, err = imagegen.RenderCard(card)
		if err != nil {
			s.log.Error().Err(err).Msg("render card")
			http.Error(w, "Failed to render image", http.StatusInternalServerError)
			return
		}
		s.cards.Set(key, data)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(data)
}
