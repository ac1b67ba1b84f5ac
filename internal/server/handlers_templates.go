package server

import (
	"net/http"

	"github.com/jonathan/resume-studio/internal/templates"
)

// templatesResponse lists built-in and custom templates separately so clients
// can render them in distinct groups.
type templatesResponse struct {
	BuiltIn []templates.Template `json:"built_in"`
	Custom  []templates.Template `json:"custom"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	reg := s.session.Templates()
	s.jsonResponse(w, http.StatusOK, templatesResponse{
		BuiltIn: reg.ListBuiltIn(),
		Custom:  reg.ListCustom(),
	})
}

type saveTemplateRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req saveTemplateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	t, err := s.session.SaveCurrentAsTemplate(r.Context(), req.Name)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, t)
}

func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.session.ApplyTemplate(r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	s.layoutResponse(w)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Templates().Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
