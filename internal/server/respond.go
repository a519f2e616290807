package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/flow"
	"github.com/sells-group/herb-harvest/internal/harvest"
	"github.com/sells-group/herb-harvest/internal/i18n"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// respondError maps err to a status and a localized body. fallbackStatus
// and fallbackKey apply when err is none of the known kinds.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, fallbackStatus int, fallbackKey string) {
	t := s.deps.Localizer.Translate

	var ve *flow.ValidationError
	var rej *flow.RejectedError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: t("An error occurred", nil), Fields: ve.Fields})
	case errors.As(err, &rej):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: t("Photo Verification Failed", nil), Message: rej.Reason})
	case errors.Is(err, harvest.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: t("Harvest Not Found", nil)})
	case errors.Is(err, flow.ErrInFlight):
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: t("An error occurred", nil), Message: "a submission is already in progress"})
	case errors.Is(err, ai.ErrInvalidInput), errors.Is(err, i18n.ErrUnsupportedLanguage):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: t("An error occurred", nil), Message: err.Error()})
	default:
		zap.L().Error("request error",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondJSON(w, fallbackStatus, ErrorResponse{Error: t(fallbackKey, nil)})
	}
}
