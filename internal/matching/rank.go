package matching

import (
	"sort"

	"network-match/internal/domain"
)

const (
	// DefaultLimit aplica cuando el limite pedido no es positivo.
	DefaultLimit = 10
	// RelevanceFloor: resultados con score <= floor se descartan.
	RelevanceFloor = 20
)

// Rank descarta lo que no supera el piso, ordena por score descendente
// (empates por CandidateID ascendente) y recorta al limite.
func Rank(results []domain.MatchResult, floor, limit int) []domain.MatchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	kept := make([]domain.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Score > floor {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].CandidateID < kept[j].CandidateID
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
