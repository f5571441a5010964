package matching

import (
	"fmt"
	"strings"

	"network-match/internal/domain"
)

// MentorFloor: en modo mentor basta con tener algo de relevancia.
const MentorFloor = 0

// RecommendMentors recomienda alumni como mentores. El factor de rol se
// reemplaza por la experiencia desde el egreso, medida contra referenceYear
// (el caller inyecta el año actual para que la funcion siga siendo pura).
func RecommendMentors(
	subject domain.Member,
	pool []domain.Member,
	pairs []domain.RelationshipPair,
	signals map[string]domain.ActivitySignals,
	limit int,
	referenceYear int,
) domain.Recommendation {
	return run(mentorStrategy{referenceYear: referenceYear}, subject, pool, pairs, signals, limit)
}

type mentorStrategy struct {
	referenceYear int
}

func (mentorStrategy) candidates(pool []domain.Member) []domain.Member {
	out := make([]domain.Member, 0, len(pool))
	for _, m := range pool {
		if m.Role == domain.RoleAlumni {
			out = append(out, m)
		}
	}
	return out
}

func (s mentorStrategy) relevance(_, candidate domain.Member) int {
	return ExperienceScore(candidate.GraduationYear, s.referenceYear)
}

// ExperienceScore premia el rango de 2 a 8 años de experiencia.
func ExperienceScore(graduationYear *int, referenceYear int) int {
	if graduationYear == nil {
		return 50
	}
	years := referenceYear - *graduationYear
	switch {
	case years >= 2 && years <= 8:
		return 100
	case years > 8 && years <= 15:
		return 80
	case years > 15:
		return 60
	case years >= 0:
		return 70
	}
	return 0
}

func (s mentorStrategy) explain(_, candidate domain.Member, result domain.MatchResult) []string {
	parts := make([]string, 0, 4)

	if n := len(result.SharedSkills); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		parts = append(parts, fmt.Sprintf("%d common skill%s: %s", n, plural, strings.Join(firstN(result.SharedSkills, 3), ", ")))
	}

	if result.Breakdown.Affiliation == 100 {
		parts = append(parts, fmt.Sprintf("Same branch (%s)", candidate.Affiliation))
	}

	if candidate.GraduationYear != nil {
		parts = append(parts, fmt.Sprintf("%d years of industry experience", s.referenceYear-*candidate.GraduationYear))
	}

	if candidate.Headline != "" {
		parts = append(parts, candidate.Headline)
	}

	if len(parts) == 0 {
		return []string{"Alumni from your institution with relevant experience"}
	}
	return parts
}

func (mentorStrategy) floor() int { return MentorFloor }

var mentorMessages = map[domain.EmptyReason]string{
	domain.EmptyReasonNoOtherMembers:    "No alumni found in the system",
	domain.EmptyReasonAllConnected:      "You are already connected with all available alumni",
	domain.EmptyReasonAllBelowThreshold: "No relevant matches found. Try completing your profile with more skills.",
}

func (mentorStrategy) messages() map[domain.EmptyReason]string { return mentorMessages }
