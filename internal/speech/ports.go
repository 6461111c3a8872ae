package speech

import "context"

type STTClient interface {
	Transcribe(ctx context.Context, audio []byte, cfg RecognitionConfig) (string, error)
}

type TTSClient interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
