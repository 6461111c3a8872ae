package fhir

import "strings"

// Patient is the subset of the FHIR R4 Patient resource the assistant uses.
type Patient struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id"`
	Name         []HumanName `json:"name"`
	BirthDate    string      `json:"birthDate,omitempty"`
	Gender       string      `json:"gender,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

// DisplayName returns the first recorded name: its text form when present,
// otherwise given + family assembled. Empty string when nothing is usable.
func (p *Patient) DisplayName() string {
	if p == nil || len(p.Name) == 0 {
		return ""
	}

	n := p.Name[0]
	if n.Text != "" {
		return n.Text
	}

	parts := append([]string{}, n.Given...)
	if n.Family != "" {
		parts = append(parts, n.Family)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
