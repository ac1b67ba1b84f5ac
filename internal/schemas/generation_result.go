package schemas

// GenerationResultSchema constrains the AI content collaborator's response.
const GenerationResultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "GenerationResult",
  "type": "object",
  "required": ["variations", "profile"],
  "properties": {
    "variations": {
      "type": "array",
      "minItems": 1,
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["id", "label", "tone", "summary"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "tone": {"enum": ["impact", "technical", "leadership", "balanced"]},
          "summary": {"type": "string"},
          "summary_headline": {"type": "string"},
          "skills_to_highlight": {"type": "array", "items": {"type": "string"}},
          "experience_sections": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["role", "company", "bullets"],
              "properties": {
                "role": {"type": "string"},
                "company": {"type": "string"},
                "location": {"type": "string"},
                "dates": {"type": "string"},
                "bullets": {"type": "array", "items": {"type": "string"}},
                "source_experience_id": {"type": "string"}
              }
            }
          },
          "project_sections": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "bullets"],
              "properties": {
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "dates": {"type": "string"},
                "bullets": {"type": "array", "items": {"type": "string"}},
                "source_project_id": {"type": "string"}
              }
            }
          },
          "education_highlights": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["notes"],
              "properties": {"notes": {"type": "string"}}
            }
          },
          "ats_keywords": {"type": "array", "items": {"type": "string"}},
          "latex_document": {"type": "string"},
          "pdf_document": {"type": "string"}
        }
      }
    },
    "shared_analysis": {
      "type": "object",
      "properties": {
        "job_focus_summary": {"type": "string"},
        "skill_match_notes": {"type": "string"},
        "skill_gaps": {"type": "array", "items": {"type": "string"}},
        "keyword_strategy": {"type": "array", "items": {"type": "string"}}
      }
    },
    "profile": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "headline": {"type": "string"},
        "location": {"type": "string"},
        "top_skills": {"type": "array", "items": {"type": "string"}},
        "contact": {
          "type": "object",
          "properties": {
            "email": {"type": "string"},
            "phone": {"type": "string"},
            "portfolio": {"type": "string"}
          }
        }
      }
    }
  }
}`

// PhrasingResultSchema constrains the alternative-phrasing collaborator's response.
const PhrasingResultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "PhrasingResult",
  "type": "object",
  "required": ["experience_id", "variations"],
  "properties": {
    "experience_id": {"type": "string", "minLength": 1},
    "variations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "bullets"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "description": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "bullets": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
