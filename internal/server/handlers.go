package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/ai"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/types"
)

// generateRequest is the payload for POST /generate.
type generateRequest struct {
	JobID          string `json:"job_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	JobType        string `json:"job_type"`
	CandidateBrief string `json:"candidate_brief" validate:"required"`
	Tone           string `json:"tone" validate:"required,oneof=impact technical leadership balanced"`
	VariationCount int    `json:"variation_count" validate:"required,min=1,max=3"`
}

// generateResponse pairs the generation result with the template that was
// auto-applied for the job type, if any.
type generateResponse struct {
	Result          *types.GenerationResult `json:"result"`
	AppliedTemplate string                  `json:"applied_template,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.ai.GenerateForJob(r.Context(), ai.GenerateRequest{
		JobID:          req.JobID,
		JobDescription: req.JobDescription,
		CandidateBrief: req.CandidateBrief,
		Tone:           types.Tone(req.Tone),
		VariationCount: req.VariationCount,
	})
	if err != nil {
		s.logger.Error("generation failed", zap.String("job_id", req.JobID), zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("generation failed: %v", err))
		return
	}

	s.session.SetContent(req.JobID, types.Tone(req.Tone), req.VariationCount, result)
	applied := ""
	if req.JobType != "" {
		applied = s.session.RecommendTemplate(req.JobType)
	}
	s.afterMutation(r.Context())

	s.jsonResponse(w, http.StatusOK, generateResponse{Result: result, AppliedTemplate: applied})
}

// sessionResponse is the full session view returned by GET /session.
type sessionResponse struct {
	Result            *types.GenerationResult `json:"result"`
	ActiveVariationID string                  `json:"active_variation_id,omitempty"`
	Layout            layout.Snapshot         `json:"layout"`
	Origin            layout.Origin           `json:"origin"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, origin := s.session.Layout()
	resp := sessionResponse{
		Result: s.session.Result(),
		Layout: snap,
		Origin: origin,
	}
	if v := s.session.ActiveVariation(); v != nil {
		resp.ActiveVariationID = v.ID
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

type selectVariationRequest struct {
	VariationID string `json:"variation_id" validate:"required"`
}

func (s *Server) handleSelectVariation(w http.ResponseWriter, r *http.Request) {
	var req selectVariationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.session.SelectVariation(req.VariationID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]string{"active_variation_id": req.VariationID})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	s.session.Clear()
	if err := s.session.ClearCache(r.Context()); err != nil {
		s.logger.Warn("failed to clear session cache", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Dragged     string `json:"dragged" validate:"required"`
	Target      string `json:"target" validate:"required"`
	VisibleOnly bool   `json:"visible_only"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	dragged, target := layout.Section(req.Dragged), layout.Section(req.Target)
	for _, sec := range []layout.Section{dragged, target} {
		if !layout.ValidSection(sec) {
			err := &layout.ErrUnknownSection{Section: sec}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}
	if req.VisibleOnly {
		s.session.ReorderVisible(dragged, target)
	} else {
		s.session.Reorder(dragged, target)
	}
	s.afterMutation(r.Context())
	s.layoutResponse(w)
}

type sectionRequest struct {
	Section string `json:"section" validate:"required"`
}

func (s *Server) handleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.session.ToggleVisibility(layout.Section(req.Section)); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	s.layoutResponse(w)
}

type formattingRequest struct {
	Section string `json:"section" validate:"required"`
	Field   string `json:"field" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

func (s *Server) handleSetFormatting(w http.ResponseWriter, r *http.Request) {
	var req formattingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.session.SetFormatting(layout.Section(req.Section), req.Field, req.Value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	s.layoutResponse(w)
}

func (s *Server) handleResetLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reset(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	s.layoutResponse(w)
}

func (s *Server) handleRegenerateSection(w http.ResponseWriter, r *http.Request) {
	sec := layout.Section(r.PathValue("section"))
	if !layout.ValidSection(sec) {
		err := &layout.ErrUnknownSection{Section: sec}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	counter := s.session.RegenerateSection(sec)
	s.afterMutation(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"section": sec,
		"counter": counter,
	})
}

// bulletKeyRequest addresses one bullet by its original position.
type bulletKeyRequest struct {
	Section string `json:"section" validate:"required"`
	Group   string `json:"group" validate:"required"`
	Index   int    `json:"index" validate:"min=0"`
}

func (r bulletKeyRequest) itemKey() overrides.ItemKey {
	return overrides.ItemKey{Section: layout.Section(r.Section), Group: r.Group, Index: r.Index}
}

type setBulletTextRequest struct {
	bulletKeyRequest
	// Pointer so an explicit empty string still counts as an override.
	Text *string `json:"text" validate:"required"`
}

func (s *Server) handleSetBulletText(w http.ResponseWriter, r *http.Request) {
	var req setBulletTextRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.session.SetBulletText(req.itemKey(), *req.Text)
	s.afterMutation(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearBulletText(w http.ResponseWriter, r *http.Request) {
	var req bulletKeyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.session.ClearBulletText(req.itemKey())
	s.afterMutation(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type setBulletOrderRequest struct {
	Section string `json:"section" validate:"required"`
	Group   string `json:"group" validate:"required"`
	Order   []int  `json:"order" validate:"required,min=1"`
}

func (s *Server) handleSetBulletOrder(w http.ResponseWriter, r *http.Request) {
	var req setBulletOrderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	group := overrides.GroupKey{Section: layout.Section(req.Section), Group: req.Group}
	ordered := make([]overrides.ItemKey, len(req.Order))
	for i, idx := range req.Order {
		ordered[i] = overrides.ItemKey{Section: group.Section, Group: group.Group, Index: idx}
	}
	if err := s.session.SetBulletOrder(group, ordered); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.afterMutation(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type bulkReplaceRequest struct {
	Section     string   `json:"section" validate:"required"`
	Group       string   `json:"group" validate:"required"`
	Replacement []string `json:"replacement" validate:"required,min=1"`
}

func (s *Server) handleBulkReplace(w http.ResponseWriter, r *http.Request) {
	var req bulkReplaceRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	group := overrides.GroupKey{Section: layout.Section(req.Section), Group: req.Group}
	s.session.ApplyBulkReplace(group, req.Replacement)
	s.afterMutation(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type phrasingsRequest struct {
	JobID          string `json:"job_id" validate:"required"`
	ExperienceText string `json:"experience_text" validate:"required"`
	Tone           string `json:"tone" validate:"required,oneof=impact technical leadership balanced"`
	VariationCount int    `json:"variation_count" validate:"required,min=1,max=3"`
}

func (s *Server) handlePhrasings(w http.ResponseWriter, r *http.Request) {
	var req phrasingsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	result, err := s.ai.AlternativePhrasings(r.Context(), ai.PhrasingRequest{
		JobID:              req.JobID,
		ExperienceSourceID: r.PathValue("id"),
		ExperienceText:     req.ExperienceText,
		Tone:               types.Tone(req.Tone),
		VariationCount:     req.VariationCount,
	})
	if err != nil {
		s.logger.Error("phrasing generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("phrasing generation failed: %v", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

type regenerateBulletRequest struct {
	JobID      string `json:"job_id" validate:"required"`
	Tone       string `json:"tone" validate:"required,oneof=impact technical leadership balanced"`
	VariantID  string `json:"variant_id"`
	BulletText string `json:"bullet_text" validate:"required"`
	Group      string `json:"group" validate:"required"`
}

func (s *Server) handleRegenerateBullet(w http.ResponseWriter, r *http.Request) {
	var req regenerateBulletRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		s.errorResponse(w, http.StatusUnprocessableEntity, "bullet index must be a non-negative integer")
		return
	}

	bullet, err := s.ai.RegenerateBullet(r.Context(), ai.BulletRequest{
		JobID:              req.JobID,
		ExperienceSourceID: r.PathValue("id"),
		Tone:               types.Tone(req.Tone),
		VariantID:          req.VariantID,
		BulletIndex:        index,
		BulletText:         req.BulletText,
	})
	if err != nil {
		s.logger.Error("bullet regeneration failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("bullet regeneration failed: %v", err))
		return
	}

	// The regenerated bullet lands as a text override so it survives
	// variation switches and session restores.
	key := overrides.ItemKey{Section: layout.SectionExperience, Group: req.Group, Index: index}
	s.session.SetBulletText(key, bullet)
	s.afterMutation(r.Context())

	s.jsonResponse(w, http.StatusOK, map[string]string{"bullet": bullet})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"document": s.session.Document()})
}

func (s *Server) handleGetRender(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"sections": s.session.Render()})
}

// previewResponse carries the current compiled preview. The PDF is base64 so
// the payload stays JSON; error is the inline compile failure message, if any.
type previewResponse struct {
	PDFDocument string `json:"pdf_document,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleGetPreview(w http.ResponseWriter, _ *http.Request) {
	pdf, errMsg := s.previewer.Preview()
	resp := previewResponse{Error: errMsg}
	if len(pdf) > 0 {
		resp.PDFDocument = base64.StdEncoding.EncodeToString(pdf)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRefreshPreview(w http.ResponseWriter, r *http.Request) {
	s.previewer.Submit(s.session.Document())
	s.previewer.Flush(r.Context())
	s.handleGetPreview(w, r)
}

// decodeJSON decodes and validates a request body, writing the error response
// itself on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// layoutResponse returns the layout snapshot after a mutation so clients can
// re-render without a second round trip.
func (s *Server) layoutResponse(w http.ResponseWriter) {
	snap, origin := s.session.Layout()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"layout": snap,
		"origin": origin,
	})
}
