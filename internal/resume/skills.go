package resume

import (
	"regexp"
	"strings"
)

// commonSkills is the keyword list scanned against uploaded resumes.
var commonSkills = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "React", "Angular", "Vue.js",
	"Node.js", "Express", "Django", "Flask", "FastAPI", "PostgreSQL", "MySQL",
	"MongoDB", "Redis", "Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"Git", "GitHub", "CI/CD", "Jenkins", "Agile", "Scrum", "REST API",
	"GraphQL", "Microservices", "Machine Learning", "AI", "Data Science",
	"SQL", "NoSQL", "HTML", "CSS", "TypeScript", "PHP", "Ruby", "Go",
	"Rust", "Swift", "Kotlin", "Scala", "R", "MATLAB", "TensorFlow",
	"PyTorch", "Scikit-learn", "Pandas", "NumPy", "Jupyter",
}

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(commonSkills))
	for _, skill := range commonSkills {
		// Token boundaries, not \b: short names like "R" or "Go" must not
		// match inside other words, and "C++" ends in a non-word rune.
		patterns[skill] = regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(skill)) + `($|[^a-z0-9])`)
	}
	return patterns
}

// ExtractSkills returns the known skills mentioned in the text, matched
// case-insensitively on token boundaries, in the canonical list order.
func ExtractSkills(text string) []string {
	var found []string
	for _, skill := range commonSkills {
		if skillPatterns[skill].MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}
