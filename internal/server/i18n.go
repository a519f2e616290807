package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/herb-harvest/internal/i18n"
)

type languageStatus struct {
	i18n.Language
	Missing int `json:"missing"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	langs := i18n.Languages()
	out := make([]languageStatus, 0, len(langs))
	for _, l := range langs {
		out = append(out, languageStatus{Language: l, Missing: len(s.deps.Localizer.MissingKeys(l.Code))})
	}
	respondJSON(w, http.StatusOK, out)
}

type languageBody struct {
	Language string `json:"language"`
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, languageBody{Language: s.deps.Localizer.Language()})
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var body languageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Language == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "language is required"})
		return
	}
	if err := s.deps.Localizer.SetLanguage(r.Context(), body.Language); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "An error occurred")
		return
	}
	respondJSON(w, http.StatusOK, body)
}

// handleTranslate resolves ?key= in the active language. Every other query
// parameter is a placeholder substitution.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "key is required"})
		return
	}
	subs := make(map[string]any, len(q))
	for name := range q {
		if name != "key" {
			subs[name] = q.Get(name)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"key":      key,
		"language": s.deps.Localizer.Language(),
		"text":     s.deps.Localizer.Translate(key, subs),
	})
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "lang")
	missing := s.deps.Localizer.MissingKeys(code)
	name := i18n.EnglishName(code)

	resp := map[string]any{
		"language":     code,
		"languageName": name,
		"missing":      missing,
	}
	if len(missing) == 0 {
		resp["message"] = s.deps.Localizer.Translate("All translations for {{languageName}} are complete!", map[string]any{"languageName": name})
	} else {
		resp["title"] = s.deps.Localizer.Translate("Missing Translations for {{languageName}}", map[string]any{"languageName": name})
	}
	respondJSON(w, http.StatusOK, resp)
}

type fillResponse struct {
	*i18n.FillResult
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Filler.Fill(r.Context(), chi.URLParam(r, "lang"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway, "Could not fetch translations from AI.")
		return
	}

	t := s.deps.Localizer.Translate
	out := fillResponse{FillResult: res}
	if res.UpToDate {
		out.Title = t("No new translations needed", nil)
		out.Message = t("All text for {{languageName}} is up to date.", map[string]any{"languageName": res.LanguageName})
	} else {
		out.Title = t("Translations Updated!", nil)
		out.Message = t("{{count}} new translations for {{languageName}} have been added.", map[string]any{
			"count":        res.Added,
			"languageName": res.LanguageName,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
