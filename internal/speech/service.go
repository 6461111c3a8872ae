package speech

import (
	"context"
	"time"
)

// Service is the single entry point for both directions of speech handling.
// Every backend call is bounded by callTimeout so a stuck recognizer or
// synthesizer fails the step instead of hanging the request.
type Service struct {
	stt         STTClient
	tts         TTSClient
	recognizer  RecognitionConfig
	callTimeout time.Duration
}

func NewService(stt STTClient, tts TTSClient, recognizer RecognitionConfig, callTimeout time.Duration) *Service {
	return &Service{
		stt:         stt,
		tts:         tts,
		recognizer:  recognizer,
		callTimeout: callTimeout,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.stt.Transcribe(ctx, audio, s.recognizer)
}

func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.tts.Synthesize(ctx, text)
}
