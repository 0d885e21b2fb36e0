package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/usecase"
)

type panelListResponse struct {
	Panels []*model.Panel `json:"panels"`
}

type validateResponse struct {
	Valid  bool            `json:"valid"`
	Issues []usecase.Issue `json:"issues"`
}

type panelEffectiveRequest struct {
	Fields []*option.Field `json:"fields"`
}

func panelID(r *http.Request) types.PanelID {
	return types.PanelID(chi.URLParam(r, "id"))
}

func (s *Server) listPanels(w http.ResponseWriter, r *http.Request) {
	filter := types.PluginID(r.URL.Query().Get("plugin_id"))
	panels, err := s.uc.Panel.ListPanels(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, panelListResponse{Panels: panels})
}

func (s *Server) createPanel(w http.ResponseWriter, r *http.Request) {
	var p model.Panel
	if !s.decode(w, r, &p) {
		return
	}
	p.ID = ""

	created, err := s.uc.Panel.CreatePanel(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getPanel(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Panel.GetPanel(r.Context(), panelID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) updatePanel(w http.ResponseWriter, r *http.Request) {
	var p model.Panel
	if !s.decode(w, r, &p) {
		return
	}
	p.ID = panelID(r)

	updated, err := s.uc.Panel.UpdatePanel(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deletePanel(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Panel.DeletePanel(r.Context(), panelID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validatePanel(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Panel.GetPanel(r.Context(), panelID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	issues, err := s.uc.Panel.ValidatePanel(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, validateResponse{Valid: !usecase.HasErrors(issues), Issues: issues})
}

func (s *Server) panelEffective(w http.ResponseWriter, r *http.Request) {
	var req panelEffectiveRequest
	if !s.decode(w, r, &req) {
		return
	}

	results, err := s.uc.Panel.EffectiveConfigs(r.Context(), panelID(r), req.Fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, effectiveResponse{Results: results})
}
