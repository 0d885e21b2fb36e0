package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/secmon-lab/vizopts/pkg/utils/errutil"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/secmon-lab/vizopts/pkg/utils/safe"
)

type errorResponse struct {
	Error  string          `json:"error"`
	Issues []usecase.Issue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode request body"), http.StatusBadRequest)
		return false
	}
	return true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, panel.ErrPluginNotFound), errors.Is(err, usecase.ErrPanelNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidPanel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the status mapped from err. Validation failures
// carry their issues in a JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	var ge *goerr.Error
	if status == http.StatusUnprocessableEntity && errors.As(err, &ge) {
		if issues, ok := ge.Values()[usecase.IssuesKey].([]usecase.Issue); ok {
			logging.From(r.Context()).Warn("panel rejected", "error", err.Error(), "issues", len(issues))
			writeJSON(w, r, status, errorResponse{Error: err.Error(), Issues: issues})
			return
		}
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}
