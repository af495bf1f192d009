package llm

import "github.com/google/generative-ai-go/genai"

// CandidateSchema returns the response schema sent with every extraction
// request. Field descriptions guide the model; the adapter re-validates the
// response locally regardless of what the schema nominally enforced.
func CandidateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Full name of the candidate.",
			},
			"email": {
				Type:        genai.TypeString,
				Description: "Primary email address of the candidate.",
			},
			"phone": {
				Type:        genai.TypeString,
				Description: "Primary phone number of the candidate.",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A brief professional summary or objective, 2-4 sentences long.",
			},
			"skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of key technical and soft skills.",
			},
			"experience": {
				Type:        genai.TypeArray,
				Description: "A list of professional work experiences.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"role": {
							Type:        genai.TypeString,
							Description: "Job title or role.",
						},
						"company": {
							Type:        genai.TypeString,
							Description: "Company name.",
						},
						"duration": {
							Type:        genai.TypeString,
							Description: "Employment dates (e.g., 'Jan 2020 - Present').",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "A brief description of responsibilities and achievements in this role.",
						},
					},
					Required: []string{"role", "company", "duration", "description"},
				},
			},
			"education": {
				Type:        genai.TypeArray,
				Description: "A list of educational qualifications.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"institution": {
							Type:        genai.TypeString,
							Description: "Name of the university or institution.",
						},
						"degree": {
							Type:        genai.TypeString,
							Description: "Degree obtained (e.g., 'Bachelor of Science in Computer Science').",
						},
						"graduationYear": {
							Type:        genai.TypeString,
							Description: "Year of graduation or expected graduation.",
						},
					},
					Required: []string{"institution", "degree"},
				},
			},
		},
		Required: []string{"name", "email", "summary", "skills", "experience", "education"},
	}
}
