package ai

import (
	"context"

	"github.com/clinvoice/voice-backend/internal/fhir"
)

type Service interface {
	// GetInsights runs the full context + inference chain for one utterance.
	// It never fails: any error along the way collapses into a displayable
	// fallback answer.
	GetInsights(ctx context.Context, transcript, patientID, accessToken string) string
}

type PatientReader interface {
	GetPatient(ctx context.Context, patientID, accessToken string) *fhir.Patient
}

type predictor interface {
	Predict(ctx context.Context, query, token string) (*predictionResponse, error)
}
