package domain

// Breakdown contiene los cuatro sub-scores (0-100) que componen el score final.
type Breakdown struct {
	Skill       int `json:"skills_overlap"`
	Affiliation int `json:"branch_match"`
	Role        int `json:"experience_match"`
	Activity    int `json:"activity_score"`
}

// MatchResult es la recomendacion calculada para un candidato.
type MatchResult struct {
	CandidateID  string    `json:"user_id"`
	Score        int       `json:"match_score"`
	Breakdown    Breakdown `json:"breakdown"`
	Explanation  []string  `json:"explanation"`
	SharedSkills []string  `json:"common_skills"`
}

// EmptyReason distingue por que una recomendacion no tiene resultados.
type EmptyReason string

const (
	EmptyReasonNone              EmptyReason = "NONE"
	EmptyReasonNoOtherMembers    EmptyReason = "NO_OTHER_MEMBERS"
	EmptyReasonAllConnected      EmptyReason = "ALL_CONNECTED"
	EmptyReasonAllBelowThreshold EmptyReason = "ALL_BELOW_THRESHOLD"
)

// Recommendation es la salida de una corrida de recomendacion.
// Message solo se completa cuando no hay resultados y depende del modo.
type Recommendation struct {
	Results     []MatchResult `json:"recommendations"`
	ResultCount int           `json:"total"`
	EmptyReason EmptyReason   `json:"empty_reason"`
	Message     string        `json:"message,omitempty"`
}
