package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort           = "3000"
	defaultFHIRBase       = "https://fhir.epic.com/interconnect-fhir-oauth/api/FHIR/R4"
	defaultSpeechEndpoint = "https://speech.googleapis.com"
	defaultTTSEndpoint    = "https://texttospeech.googleapis.com"
	defaultVertexLocation = "us-central1"
	defaultVertexModel    = "chat-bison@001"
	defaultEncoding       = "LINEAR16"
	defaultSampleRate     = 16000
	defaultLanguageCode   = "en-US"
	defaultCallTimeout    = 30 * time.Second
)

type Config struct {
	Port            string
	CredentialsFile string

	FHIRBaseURL    string
	SpeechEndpoint string
	TTSEndpoint    string
	PredictURL     string

	Encoding        string
	SampleRateHertz int
	LanguageCode    string

	CallTimeout time.Duration
}

// FromEnv builds the config from environment variables. Endpoints are
// overridable individually so tests and self-hosted gateways can point
// anywhere; the predict URL is either given whole or assembled from the
// Vertex project/location/model triple.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", defaultPort),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FHIRBaseURL:     getenv("FHIR_BASE_URL", defaultFHIRBase),
		SpeechEndpoint:  getenv("SPEECH_ENDPOINT", defaultSpeechEndpoint),
		TTSEndpoint:     getenv("TTS_ENDPOINT", defaultTTSEndpoint),
		PredictURL:      os.Getenv("VERTEX_PREDICT_URL"),
		Encoding:        getenv("STT_ENCODING", defaultEncoding),
		LanguageCode:    getenv("STT_LANGUAGE_CODE", defaultLanguageCode),
		SampleRateHertz: defaultSampleRate,
		CallTimeout:     defaultCallTimeout,
	}

	if v := os.Getenv("STT_SAMPLE_RATE_HERTZ"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STT_SAMPLE_RATE_HERTZ: %w", err)
		}
		cfg.SampleRateHertz = rate
	}

	if v := os.Getenv("CALL_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CALL_TIMEOUT_SECONDS: %w", err)
		}
		cfg.CallTimeout = time.Duration(secs) * time.Second
	}

	if cfg.PredictURL == "" {
		project := os.Getenv("VERTEX_PROJECT")
		if project == "" {
			return nil, fmt.Errorf("VERTEX_PREDICT_URL or VERTEX_PROJECT must be set")
		}
		location := getenv("VERTEX_LOCATION", defaultVertexLocation)
		model := getenv("VERTEX_MODEL", defaultVertexModel)
		cfg.PredictURL = fmt.Sprintf(
			"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
			location, project, location, model,
		)
	}

	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
