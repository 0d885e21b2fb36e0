package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/vizopts/pkg/domain/model"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/usecase"
)

type pluginListResponse struct {
	Plugins []usecase.PluginSummary `json:"plugins"`
}

type effectiveRequest struct {
	FieldConfig model.FieldConfig `json:"field_config"`
	Fields      []*option.Field   `json:"fields"`
}

type effectiveResponse struct {
	Results []*usecase.EffectiveConfig `json:"results"`
}

func pluginID(r *http.Request) types.PluginID {
	return types.PluginID(chi.URLParam(r, "id"))
}

func (s *Server) listPlugins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, pluginListResponse{Plugins: s.uc.Plugin.ListPlugins(r.Context())})
}

func (s *Server) getPlugin(w http.ResponseWriter, r *http.Request) {
	detail, err := s.uc.Plugin.GetPlugin(r.Context(), pluginID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) optionsPane(w http.ResponseWriter, r *http.Request) {
	var req usecase.PaneRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.PluginID = pluginID(r)
	if req.Target == "" {
		req.Target = usecase.PaneTargetPanel
	}

	pane, err := s.uc.Plugin.OptionsPane(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pane)
}

func (s *Server) pluginEffective(w http.ResponseWriter, r *http.Request) {
	var req effectiveRequest
	if !s.decode(w, r, &req) {
		return
	}

	results, err := s.uc.Plugin.EffectiveConfigs(r.Context(), pluginID(r), req.FieldConfig, req.Fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, effectiveResponse{Results: results})
}
