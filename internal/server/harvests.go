package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/flow"
	"github.com/sells-group/herb-harvest/internal/harvest"
	"github.com/sells-group/herb-harvest/internal/model"
)

// harvestView is a harvest with its herb name in the active language.
type harvestView struct {
	model.Harvest
	DisplayName string `json:"displayName"`
}

type savedResponse struct {
	Harvest harvestView `json:"harvest"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

func (s *Server) view(h model.Harvest) harvestView {
	return harvestView{Harvest: h, DisplayName: s.deps.Localizer.Translate(h.HerbName, nil)}
}

func (s *Server) handleListHarvests(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Harvests.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "An error occurred")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "geojson", "xlsx":
		var buf bytes.Buffer
		export, contentType := harvest.ExportGeoJSON, "application/geo+json"
		if format == "xlsx" {
			export, contentType = harvest.ExportXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			w.Header().Set("Content-Disposition", `attachment; filename="harvests.xlsx"`)
		}
		if err := export(&buf, list); err != nil {
			w.Header().Del("Content-Disposition")
			s.respondError(w, r, err, http.StatusInternalServerError, "An error occurred")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if _, err := buf.WriteTo(w); err != nil {
			zap.L().Warn("write export", zap.String("format", format), zap.Error(err))
		}
		return
	case "", "json":
	default:
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unsupported format"})
		return
	}

	views := make([]harvestView, 0, len(list))
	for _, h := range list {
		views = append(views, s.view(h))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetHarvest(w http.ResponseWriter, r *http.Request) {
	h, err := s.deps.Harvests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "An error occurred")
		return
	}
	respondJSON(w, http.StatusOK, s.view(*h))
}

func (s *Server) handleAddHarvest(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseForm(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest, "An error occurred")
		return
	}
	h, err := s.deps.Add.Submit(r.Context(), form)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway, "Could not verify the photo at this time.")
		return
	}

	t := s.deps.Localizer.Translate
	respondJSON(w, http.StatusCreated, savedResponse{
		Harvest: s.view(*h),
		Title:   t("Harvest Recorded!", nil),
		Message: t("{{quantity}} {{unit}} of {{herbName}} has been saved.", map[string]any{
			"quantity": h.Quantity,
			"unit":     t(h.Unit, nil),
			"herbName": t(h.HerbName, nil),
		}),
	})
}

func (s *Server) handleEditHarvest(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseForm(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest, "An error occurred")
		return
	}
	h, err := s.deps.Edit.Submit(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway, "Could not update the harvest at this time.")
		return
	}

	t := s.deps.Localizer.Translate
	respondJSON(w, http.StatusOK, savedResponse{
		Harvest: s.view(*h),
		Title:   t("Harvest Updated!", nil),
		Message: t("Your changes have been saved.", nil),
	})
}

// parseForm reads the multipart harvest form. A missing photo part is not an
// error here; the add flow rejects it during validation.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (flow.HarvestForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return flow.HarvestForm{}, &flow.ValidationError{Fields: map[string]string{"photo": "File is too large"}}
		}
		return flow.HarvestForm{}, &flow.ValidationError{Fields: map[string]string{"form": "Invalid request format"}}
	}

	form := flow.HarvestForm{
		HerbName: r.FormValue("herbName"),
		Unit:     r.FormValue("unit"),
		Location: r.FormValue("location"),
	}
	if q := strings.TrimSpace(r.FormValue("quantity")); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return flow.HarvestForm{}, &flow.ValidationError{Fields: map[string]string{"quantity": "Must be a number"}}
		}
		form.Quantity = v
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return form, nil
	case err != nil:
		return flow.HarvestForm{}, eris.Wrap(err, "server: read photo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return flow.HarvestForm{}, eris.Wrap(err, "server: read photo")
	}
	form.Photo = &flow.Photo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return form, nil
}

type locationResponse struct {
	model.GPS
	Text string `json:"text"`
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	gps, err := s.deps.Locator.Locate(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable, "An error occurred")
		return
	}
	respondJSON(w, http.StatusOK, locationResponse{GPS: gps, Text: gps.String()})
}
