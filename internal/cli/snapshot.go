package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"network-match/internal/domain"
)

// Snapshot es una foto de la red tal como la leeria el servicio.
type Snapshot struct {
	ReferenceYear int                               `json:"reference_year,omitempty"`
	Members       []domain.Member                   `json:"members"`
	Relationships []domain.RelationshipPair         `json:"relationships"`
	Signals       map[string]domain.ActivitySignals `json:"signals"`
}

func loadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

func (s Snapshot) member(id string) (domain.Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// profileSignals completa los flags de perfil a partir de cada miembro;
// el snapshot solo necesita traer los conteos.
func (s Snapshot) profileSignals() map[string]domain.ActivitySignals {
	out := make(map[string]domain.ActivitySignals, len(s.Members))
	for _, m := range s.Members {
		out[m.ID] = s.Signals[m.ID].WithProfile(m)
	}
	return out
}
