package groq

import (
	"encoding/json"
	"strings"
)

// BuildInterviewPrompt assembles the system prompt for question generation.
// Pure and deterministic: same inputs produce the same string, no I/O, inputs
// are never mutated. The job-description line is omitted entirely when absent
// and an empty history renders as a literal empty list, not nothing.
func BuildInterviewPrompt(resumeContent, jobRole string, jobDescription *string, history []map[string]any) string {
	var b strings.Builder

	b.WriteString("You are a world-class interviewer conducting a technical and behavioral interview.\n\n")

	b.WriteString("CANDIDATE BACKGROUND:\n")
	b.WriteString("- Resume Content: ")
	b.WriteString(resumeContent)
	b.WriteString("\n- Target Job Role: ")
	b.WriteString(jobRole)
	b.WriteString("\n")
	if jobDescription != nil && *jobDescription != "" {
		b.WriteString("- Job Description: ")
		b.WriteString(*jobDescription)
		b.WriteString("\n")
	}

	b.WriteString("\nINTERVIEW CONTEXT:\n")
	b.WriteString("- Here is the full conversation history so far (questions and answers):\n")
	b.WriteString(renderHistory(history))
	b.WriteString("\n")
	b.WriteString("- For every question, you must generate a follow-up that references specific details from the candidate's resume and/or their previous answers.\n")
	b.WriteString("- Do not ask generic questions. Every question should be tailored to the candidate's unique background and the flow of the interview so far.\n")
	b.WriteString("- If clarification is needed, ask for it in a way that builds on what the candidate has already said.\n")
	b.WriteString("- Only output the next interview question, nothing else.")

	return b.String()
}

func renderHistory(history []map[string]any) string {
	if len(history) == 0 {
		return "[]"
	}
	b, err := json.MarshalIndent(history, "", " ")
	if err != nil {
		return "[]"
	}
	return string(b)
}
