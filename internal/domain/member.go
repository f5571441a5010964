package domain

import "time"

// Role identifica el tipo de miembro dentro de la red.
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleFaculty Role = "faculty"
)

// Member es la instantanea de lectura de un miembro de la red.
type Member struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	Role           Role      `json:"role"`
	Affiliation    string    `json:"affiliation,omitempty"` // branch / departamento
	Cohort         string    `json:"cohort,omitempty"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	Skills         []string  `json:"skills"`
	Headline       string    `json:"headline,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	ExternalLinks  []string  `json:"external_links,omitempty"` // LinkedIn, GitHub, etc.
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasExternalLink indica si el perfil tiene al menos un enlace no vacio.
func (m Member) HasExternalLink() bool {
	for _, l := range m.ExternalLinks {
		if l != "" {
			return true
		}
	}
	return false
}

const (
	RelationshipPending  = "pending"
	RelationshipAccepted = "accepted"
	RelationshipRejected = "rejected"
)

// RelationshipPair es una conexion (no ordenada) entre dos miembros.
type RelationshipPair struct {
	MemberA string `json:"member_a"`
	MemberB string `json:"member_b"`
	Status  string `json:"status"`
}

// Other devuelve el otro lado del par respecto a memberID.
func (p RelationshipPair) Other(memberID string) (string, bool) {
	switch memberID {
	case p.MemberA:
		return p.MemberB, true
	case p.MemberB:
		return p.MemberA, true
	}
	return "", false
}

// ActivitySignals agrupa los conteos crudos usados para el score de actividad.
type ActivitySignals struct {
	AuthoredContentCount      int  `json:"authored_content_count"`
	AcceptedRelationshipCount int  `json:"accepted_relationship_count"`
	HasHeadline               bool `json:"has_headline"`
	HasBio                    bool `json:"has_bio"`
	HasExternalLink           bool `json:"has_external_link"`
}

// WithProfile completa los flags de perfil a partir del miembro.
func (s ActivitySignals) WithProfile(m Member) ActivitySignals {
	s.HasHeadline = m.Headline != ""
	s.HasBio = m.Bio != ""
	s.HasExternalLink = m.HasExternalLink()
	return s
}
