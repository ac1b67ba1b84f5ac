package ai

import "fmt"

// variationAngles nudges each concurrent call toward a different candidate.
var variationAngles = []string{
	"Lead with measurable outcomes and scope.",
	"Lead with technical depth: systems, tools and architecture decisions.",
	"Lead with ownership, collaboration and initiative.",
}

func variationPrompt(req GenerateRequest, index int) string {
	angle := variationAngles[index%len(variationAngles)]
	return fmt.Sprintf(`You are a resume writer tailoring a candidate's resume to one job posting.

Job posting:
%s

Candidate background:
%s

Write ONE resume content variation in tone %q. %s

Return ONLY a JSON object with these fields:
{
  "id": "short stable identifier",
  "label": "2-4 word display label",
  "summary": "3-4 sentence professional summary",
  "summary_headline": "one line headline",
  "skills_to_highlight": ["skill", ...],
  "experience_sections": [{"role": "", "company": "", "location": "", "dates": "", "bullets": ["", ...], "source_experience_id": ""}],
  "project_sections": [{"name": "", "notes": "", "dates": "", "bullets": ["", ...], "source_project_id": ""}],
  "education_highlights": [{"notes": ""}],
  "ats_keywords": ["keyword", ...],
  "latex_document": "a complete compilable LaTeX resume document"
}

Keep bullets to one line each, starting with a strong verb. Do not invent employers or degrees.`,
		req.JobDescription, req.CandidateBrief, req.Tone, angle)
}

func analysisPrompt(req GenerateRequest) string {
	return fmt.Sprintf(`You are a resume strategist analyzing a job posting for a candidate.

Job posting:
%s

Candidate background:
%s

Return ONLY a JSON object:
{
  "shared_analysis": {
    "job_focus_summary": "what this job actually prioritizes",
    "skill_match_notes": "where the candidate matches",
    "skill_gaps": ["gap", ...],
    "keyword_strategy": ["keyword to weave in", ...]
  },
  "profile": {
    "name": "candidate name",
    "headline": "one line positioning",
    "location": "",
    "top_skills": ["", ...],
    "contact": {"email": "", "phone": "", "portfolio": ""}
  }
}

Omit contact fields you do not know rather than inventing them.`,
		req.JobDescription, req.CandidateBrief)
}

func phrasingPrompt(req PhrasingRequest) string {
	return fmt.Sprintf(`Rewrite the bullets of one resume experience entry in %d alternative styles, tone %q.

Experience entry:
%s

Return ONLY a JSON object:
{
  "experience_id": %q,
  "variations": [{"id": "", "label": "", "description": "", "tags": ["", ...], "bullets": ["", ...]}]
}

Each variation must keep the same facts and bullet count.`,
		req.VariationCount, req.Tone, req.ExperienceText, req.ExperienceSourceID)
}

func bulletPrompt(req BulletRequest) string {
	return fmt.Sprintf(`Rewrite this single resume bullet in tone %q. Keep the same facts, one line, strong verb first.

Bullet:
%s

Return ONLY a JSON object: {"bullet": "the rewritten text"}`,
		req.Tone, req.BulletText)
}
