package ai

import (
	"fmt"

	"github.com/clinvoice/voice-backend/internal/fhir"
)

const unknownPatientPlaceholder = "unknown patient"

// ComposeQuery interpolates the transcript and the patient's display name
// into the instruction sent to the model. A missing record or empty name
// falls back to an explicit placeholder so composition always succeeds.
func ComposeQuery(transcript string, patient *fhir.Patient) string {
	name := patient.DisplayName()
	if name == "" {
		name = unknownPatientPlaceholder
	}

	return fmt.Sprintf(
		"The user asked: \"%s\". The patient's name is \"%s\". Provide relevant insights.",
		transcript, name,
	)
}
