package matching

import (
	"strings"

	"network-match/internal/domain"
)

// Pesos fijos del score compuesto.
const (
	WeightSkill       = 0.40
	WeightAffiliation = 0.25
	WeightRole        = 0.20
	WeightActivity    = 0.15
)

type rolePair struct {
	subject   domain.Role
	candidate domain.Role
}

// roleRelevance refleja el valor de mentoria/colaboracion de cada par.
// alumni->alumni se resuelve aparte por cercania de cohorte.
var roleRelevance = map[rolePair]int{
	{domain.RoleFaculty, domain.RoleStudent}: 90,
	{domain.RoleFaculty, domain.RoleAlumni}:  85,
	{domain.RoleFaculty, domain.RoleFaculty}: 80,
	{domain.RoleAlumni, domain.RoleStudent}:  95,
	{domain.RoleAlumni, domain.RoleFaculty}:  75,
	{domain.RoleStudent, domain.RoleFaculty}: 95,
	{domain.RoleStudent, domain.RoleAlumni}:  90,
	{domain.RoleStudent, domain.RoleStudent}: 70,
}

// RoleScore devuelve la relevancia del par de roles. Pares desconocidos valen 0.
func RoleScore(subject, candidate domain.Member) int {
	if subject.Role == domain.RoleAlumni && candidate.Role == domain.RoleAlumni {
		return alumniPeerScore(subject.GraduationYear, candidate.GraduationYear)
	}
	return roleRelevance[rolePair{subject.Role, candidate.Role}]
}

func alumniPeerScore(a, b *int) int {
	if a == nil || b == nil {
		return 75
	}
	diff := *a - *b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 2:
		return 90
	case diff <= 5:
		return 80
	default:
		return 70
	}
}

// AffiliationScore es 100 solo si ambos tienen branch y coinciden sin importar
// mayusculas. Se compara el valor guardado, sin recortar espacios.
func AffiliationScore(subject, candidate domain.Member) int {
	if subject.Affiliation == "" || candidate.Affiliation == "" {
		return 0
	}
	if strings.EqualFold(subject.Affiliation, candidate.Affiliation) {
		return 100
	}
	return 0
}

// Score calcula el MatchResult (sin explicacion) de un candidato.
func Score(subject, candidate domain.Member, activity int) domain.MatchResult {
	return score(normalizeSkills(subject.Skills), subject, candidate, RoleScore(subject, candidate), activity)
}

// score recibe las skills del sujeto ya normalizadas para no repetir el
// trabajo por cada candidato.
func score(subjectSkills []skill, subject, candidate domain.Member, relevance, activity int) domain.MatchResult {
	skillPct, shared := skillOverlap(subjectSkills, normalizeSkills(candidate.Skills))
	affiliation := AffiliationScore(subject, candidate)
	activity = capped(activity, 100)

	total := skillPct*WeightSkill +
		float64(affiliation)*WeightAffiliation +
		float64(relevance)*WeightRole +
		float64(activity)*WeightActivity

	return domain.MatchResult{
		CandidateID: candidate.ID,
		Score:       round(total),
		Breakdown: domain.Breakdown{
			Skill:       round(skillPct),
			Affiliation: affiliation,
			Role:        relevance,
			Activity:    activity,
		},
		SharedSkills: shared,
	}
}
