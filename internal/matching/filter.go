package matching

import "network-match/internal/domain"

// FilterConnected quita del pool a todo candidato que ya tenga un par con el
// sujeto, sin importar el estado del par.
func FilterConnected(subjectID string, pool []domain.Member, pairs []domain.RelationshipPair) []domain.Member {
	if len(pairs) == 0 {
		return pool
	}

	connected := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if other, ok := p.Other(subjectID); ok {
			connected[other] = struct{}{}
		}
	}

	out := make([]domain.Member, 0, len(pool))
	for _, m := range pool {
		if _, ok := connected[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// excludeSelf descarta al sujeto si aparece en el pool.
func excludeSelf(subjectID string, pool []domain.Member) []domain.Member {
	out := make([]domain.Member, 0, len(pool))
	for _, m := range pool {
		if m.ID == subjectID {
			continue
		}
		out = append(out, m)
	}
	return out
}
