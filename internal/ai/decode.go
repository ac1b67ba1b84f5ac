package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-studio/internal/types"
)

// CleanJSONBlock removes markdown code block wrappers from model responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// decodeVariation parses one variation payload. Strict decoding is tried
// first; on failure the essential fields are pulled out with gjson, which
// tolerates trailing garbage and minor shape drift.
func decodeVariation(raw string) (*types.Variation, error) {
	var v types.Variation
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return &v, nil
	}

	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("variation payload is not valid JSON")
	}
	parsed := gjson.Parse(raw)
	v = types.Variation{
		ID:              parsed.Get("id").String(),
		Label:           parsed.Get("label").String(),
		Summary:         parsed.Get("summary").String(),
		SummaryHeadline: parsed.Get("summary_headline").String(),
		LaTeXDocument:   parsed.Get("latex_document").String(),
	}
	for _, s := range parsed.Get("skills_to_highlight").Array() {
		v.SkillsToHighlight = append(v.SkillsToHighlight, s.String())
	}
	for _, k := range parsed.Get("ats_keywords").Array() {
		v.ATSKeywords = append(v.ATSKeywords, k.String())
	}
	for _, e := range parsed.Get("experience_sections").Array() {
		entry := types.ExperienceSection{
			Role:               e.Get("role").String(),
			Company:            e.Get("company").String(),
			Location:           e.Get("location").String(),
			Dates:              e.Get("dates").String(),
			SourceExperienceID: e.Get("source_experience_id").String(),
		}
		for _, b := range e.Get("bullets").Array() {
			entry.Bullets = append(entry.Bullets, b.String())
		}
		v.ExperienceSections = append(v.ExperienceSections, entry)
	}
	for _, p := range parsed.Get("project_sections").Array() {
		entry := types.ProjectSection{
			Name:            p.Get("name").String(),
			Notes:           p.Get("notes").String(),
			Dates:           p.Get("dates").String(),
			SourceProjectID: p.Get("source_project_id").String(),
		}
		for _, b := range p.Get("bullets").Array() {
			entry.Bullets = append(entry.Bullets, b.String())
		}
		v.ProjectSections = append(v.ProjectSections, entry)
	}
	for _, h := range parsed.Get("education_highlights").Array() {
		v.EducationHighlights = append(v.EducationHighlights, types.EducationHighlight{Notes: h.Get("notes").String()})
	}
	if v.Summary == "" {
		return nil, fmt.Errorf("variation payload has no summary")
	}
	return &v, nil
}

// decodeBullet extracts the replacement text from a bullet response.
func decodeBullet(raw string) (string, error) {
	bullet := gjson.Get(raw, "bullet").String()
	if strings.TrimSpace(bullet) == "" {
		return "", fmt.Errorf("bullet payload has no bullet text")
	}
	return bullet, nil
}
