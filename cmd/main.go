package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/clinvoice/voice-backend/internal/ai"
	"github.com/clinvoice/voice-backend/internal/auth"
	"github.com/clinvoice/voice-backend/internal/config"
	"github.com/clinvoice/voice-backend/internal/delivery"
	"github.com/clinvoice/voice-backend/internal/fhir"
	"github.com/clinvoice/voice-backend/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// CLIENTS
	// =========================================================================

	tokens, err := auth.NewGoogleTokenProvider(cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to load service credentials: %v", err)
	}

	sttClient := speech.NewGoogleSTTClient(cfg.SpeechEndpoint, tokens)
	ttsClient := speech.NewGoogleTTSClient(cfg.TTSEndpoint, cfg.LanguageCode, tokens)
	fhirClient := fhir.NewClient(cfg.FHIRBaseURL)
	vertexClient := ai.NewVertexClient(cfg.PredictURL)

	// =========================================================================
	// SERVICES
	// =========================================================================

	speechService := speech.NewService(sttClient, ttsClient, speech.RecognitionConfig{
		Encoding:        cfg.Encoding,
		SampleRateHertz: cfg.SampleRateHertz,
		LanguageCode:    cfg.LanguageCode,
	}, cfg.CallTimeout)

	insightService := ai.NewInsightService(fhirClient, tokens, vertexClient, cfg.CallTimeout)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
	}))
	r.Use(httprate.LimitByIP(60, time.Minute))

	voiceHandler := delivery.NewVoiceHandler(speechService, insightService, zl)
	delivery.RegisterRoutes(r, voiceHandler)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice-backend",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
