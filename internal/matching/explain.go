package matching

import (
	"fmt"
	"strings"

	"network-match/internal/domain"
)

// ExplanationSeparator separa las frases al mostrarlas en una sola linea.
const ExplanationSeparator = " • "

var rolePhrases = map[rolePair]string{
	{domain.RoleFaculty, domain.RoleStudent}: "Great mentoring opportunity",
	{domain.RoleAlumni, domain.RoleStudent}:  "Perfect for career guidance",
	{domain.RoleFaculty, domain.RoleAlumni}:  "Industry-academia collaboration",
}

// Explain arma las razones en orden de prioridad fijo: rol, skills, branch, headline.
func Explain(subject, candidate domain.Member, result domain.MatchResult) []string {
	parts := make([]string, 0, 4)

	if phrase, ok := rolePhrases[rolePair{subject.Role, candidate.Role}]; ok {
		parts = append(parts, phrase)
	}

	if len(result.SharedSkills) > 0 {
		parts = append(parts, "Shared expertise: "+strings.Join(firstN(result.SharedSkills, 2), ", "))
	}

	if result.Breakdown.Affiliation == 100 {
		parts = append(parts, fmt.Sprintf("Same department (%s)", candidate.Affiliation))
	}

	if candidate.Headline != "" {
		parts = append(parts, candidate.Headline)
	}

	if len(parts) == 0 {
		return []string{fmt.Sprintf("Connect with this %s from your network.", candidate.Role)}
	}
	return parts
}

// JoinExplanation une las frases para presentacion.
func JoinExplanation(parts []string) string {
	return strings.Join(parts, ExplanationSeparator)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
