// Package matching implementa el pipeline puro de recomendacion de conexiones:
// filtro de relaciones, score de actividad, score compuesto, explicacion y ranking.
// No hace I/O ni guarda estado; el caller entrega instantaneas ya leidas.
package matching

import "network-match/internal/domain"

// Recommend devuelve las conexiones recomendadas para subject.
// signals se indexa por ID de candidato; un candidato sin entrada se evalua
// con conteos en cero y los flags de perfil de su propio registro.
func Recommend(
	subject domain.Member,
	pool []domain.Member,
	pairs []domain.RelationshipPair,
	signals map[string]domain.ActivitySignals,
	limit int,
) domain.Recommendation {
	return run(connectionStrategy{}, subject, pool, pairs, signals, limit)
}

// strategy encapsula lo que cambia entre modos de recomendacion.
type strategy interface {
	candidates(pool []domain.Member) []domain.Member
	relevance(subject, candidate domain.Member) int
	explain(subject, candidate domain.Member, result domain.MatchResult) []string
	floor() int
	messages() map[domain.EmptyReason]string
}

type connectionStrategy struct{}

func (connectionStrategy) candidates(pool []domain.Member) []domain.Member { return pool }

func (connectionStrategy) relevance(subject, candidate domain.Member) int {
	return RoleScore(subject, candidate)
}

func (connectionStrategy) explain(subject, candidate domain.Member, result domain.MatchResult) []string {
	return Explain(subject, candidate, result)
}

func (connectionStrategy) floor() int { return RelevanceFloor }

var connectionMessages = map[domain.EmptyReason]string{
	domain.EmptyReasonNoOtherMembers:    "No other users found in the system",
	domain.EmptyReasonAllConnected:      "You are already connected with all available users",
	domain.EmptyReasonAllBelowThreshold: "No relevant matches found. Try completing your profile with more skills and information.",
}

func (connectionStrategy) messages() map[domain.EmptyReason]string { return connectionMessages }

func run(
	st strategy,
	subject domain.Member,
	pool []domain.Member,
	pairs []domain.RelationshipPair,
	signals map[string]domain.ActivitySignals,
	limit int,
) domain.Recommendation {
	pool = st.candidates(excludeSelf(subject.ID, pool))
	if len(pool) == 0 {
		return empty(st, domain.EmptyReasonNoOtherMembers)
	}

	available := FilterConnected(subject.ID, pool, pairs)
	if len(available) == 0 {
		return empty(st, domain.EmptyReasonAllConnected)
	}

	subjectSkills := normalizeSkills(subject.Skills)
	results := make([]domain.MatchResult, 0, len(available))
	for _, candidate := range available {
		sig, ok := signals[candidate.ID]
		if !ok {
			sig = domain.ActivitySignals{}.WithProfile(candidate)
		}
		r := score(subjectSkills, subject, candidate, st.relevance(subject, candidate), ActivityScore(sig))
		r.Explanation = st.explain(subject, candidate, r)
		results = append(results, r)
	}

	ranked := Rank(results, st.floor(), limit)
	if len(ranked) == 0 {
		return empty(st, domain.EmptyReasonAllBelowThreshold)
	}
	return domain.Recommendation{
		Results:     ranked,
		ResultCount: len(ranked),
		EmptyReason: domain.EmptyReasonNone,
	}
}

func empty(st strategy, reason domain.EmptyReason) domain.Recommendation {
	return domain.Recommendation{
		Results:     []domain.MatchResult{},
		ResultCount: 0,
		EmptyReason: reason,
		Message:     st.messages()[reason],
	}
}
