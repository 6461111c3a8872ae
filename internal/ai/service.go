package ai

import (
	"context"
	"log"
	"time"

	"github.com/clinvoice/voice-backend/internal/auth"
)

// Fallbacks returned in place of an answer. These are displayable values,
// not errors: the insight flow always terminates with something to show.
const (
	fallbackNoResponse = "No response generated from LLM"
	fallbackError      = "Error generating response from LLM."
)

type predictionOutcome int

const (
	outcomeNoPredictions predictionOutcome = iota
	outcomeNoCandidates
	outcomeContent
)

type InsightService struct {
	patients    PatientReader
	tokens      auth.TokenProvider
	model       predictor
	callTimeout time.Duration
}

func NewInsightService(
	patients PatientReader,
	tokens auth.TokenProvider,
	model predictor,
	callTimeout time.Duration,
) *InsightService {
	return &InsightService{
		patients:    patients,
		tokens:      tokens,
		model:       model,
		callTimeout: callTimeout,
	}
}

// GetInsights chains the context fetch, prompt composition, credential
// exchange and model call. A missing patient record degrades to a
// placeholder; credential or transport failures map to fallbackError.
func (s *InsightService) GetInsights(ctx context.Context, transcript, patientID, accessToken string) string {
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	patient := s.patients.GetPatient(fetchCtx, patientID, accessToken)
	cancel()
	if patient == nil {
		log.Printf("[ai] no patient record for %s, composing with placeholder", patientID)
	}

	query := ComposeQuery(transcript, patient)

	tokenCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	token, err := s.tokens.Token(tokenCtx)
	cancel()
	if err != nil {
		log.Printf("[ai] token exchange failed: %v", err)
		return fallbackError
	}

	predictCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	resp, err := s.model.Predict(predictCtx, query, token)
	cancel()
	log.Printf("[ai][%.1fs] predict done err=%v", time.Since(start).Seconds(), err)
	if err != nil {
		return fallbackError
	}

	answer, outcome := extractAnswer(resp)
	switch outcome {
	case outcomeNoPredictions:
		log.Printf("[ai] no predictions in response")
	case outcomeNoCandidates:
		log.Printf("[ai] predictions without candidate content")
	case outcomeContent:
		// grounding and safety data are diagnostic only
		p := resp.Predictions[0]
		if len(p.GroundingMetadata) > 0 {
			log.Printf("[ai] grounding metadata: %s", p.GroundingMetadata)
		}
		if len(p.SafetyAttributes) > 0 {
			log.Printf("[ai] safety attributes: %s", p.SafetyAttributes)
		}
	}

	return answer
}

// extractAnswer resolves the partially-optional prediction tree into exactly
// one of three outcomes.
func extractAnswer(resp *predictionResponse) (string, predictionOutcome) {
	if resp == nil || len(resp.Predictions) == 0 {
		return fallbackNoResponse, outcomeNoPredictions
	}

	p := resp.Predictions[0]
	if len(p.Candidates) == 0 || p.Candidates[0].Content == "" {
		return fallbackNoResponse, outcomeNoCandidates
	}

	return p.Candidates[0].Content, outcomeContent
}
