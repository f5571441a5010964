package matching

import "network-match/internal/domain"

const (
	contentPointsEach      = 10
	contentPointsMax       = 40
	relationshipPointsEach = 5
	relationshipPointsMax  = 30
	profileFieldPoints     = 10
)

// ActivityScore calcula un score 0-100 a partir de los conteos crudos.
// Cada termino tiene su propio tope: contenido 40, conexiones 30, perfil 30.
func ActivityScore(s domain.ActivitySignals) int {
	score := capped(s.AuthoredContentCount*contentPointsEach, contentPointsMax)
	score += capped(s.AcceptedRelationshipCount*relationshipPointsEach, relationshipPointsMax)

	if s.HasHeadline {
		score += profileFieldPoints
	}
	if s.HasBio {
		score += profileFieldPoints
	}
	if s.HasExternalLink {
		score += profileFieldPoints
	}
	return score
}

func capped(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
