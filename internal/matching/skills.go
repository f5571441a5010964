package matching

import (
	"math"
	"strings"
)

// skill guarda el texto original (recortado) y su forma normalizada.
type skill struct {
	raw  string
	norm string
}

// normalizeSkills recorta, pasa a minusculas y deduplica. Los vacios se
// descartan porque un string vacio es substring de cualquier otro.
func normalizeSkills(skills []string) []skill {
	out := make([]skill, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		raw := strings.TrimSpace(s)
		norm := strings.ToLower(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, skill{raw: raw, norm: norm})
	}
	return out
}

// relaxedMatch acepta igualdad o que uno contenga al otro ("react" ~ "react.js").
func relaxedMatch(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// skillOverlap devuelve el porcentaje (sin redondear) de interseccion relajada
// sobre la union, y las skills del sujeto que matchearon.
func skillOverlap(subject, candidate []skill) (float64, []string) {
	if len(subject) == 0 || len(candidate) == 0 {
		return 0, []string{}
	}

	shared := make([]string, 0, len(subject))
	union := make(map[string]struct{}, len(subject)+len(candidate))
	for _, s := range subject {
		union[s.norm] = struct{}{}
		for _, c := range candidate {
			if relaxedMatch(s.norm, c.norm) {
				shared = append(shared, s.raw)
				break
			}
		}
	}
	for _, c := range candidate {
		union[c.norm] = struct{}{}
	}

	return float64(len(shared)) / float64(len(union)) * 100, shared
}

func round(v float64) int {
	return int(math.Round(v))
}
