package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/clinvoice/voice-backend/internal/auth"
)

var ErrUnsupportedEncoding = errors.New("unsupported audio encoding")

// RecognitionConfig describes the uploaded audio for the recognizer.
type RecognitionConfig struct {
	Encoding        string
	SampleRateHertz int
	LanguageCode    string
}

var knownEncodings = map[string]bool{
	"LINEAR16":  true,
	"FLAC":      true,
	"MULAW":     true,
	"AMR":       true,
	"AMR_WB":    true,
	"OGG_OPUS":  true,
	"WEBM_OPUS": true,
}

func (c RecognitionConfig) validate() error {
	if !knownEncodings[c.Encoding] {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, c.Encoding)
	}
	return nil
}

type GoogleSTTClient struct {
	endpoint string
	tokens   auth.TokenProvider
	client   *http.Client
}

func NewGoogleSTTClient(endpoint string, tokens auth.TokenProvider) *GoogleSTTClient {
	return &GoogleSTTClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		tokens:   tokens,
		client:   &http.Client{},
	}
}

type recognizeRequest struct {
	Config struct {
		Encoding        string `json:"encoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
		LanguageCode    string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe runs one synchronous recognition call and joins the top
// alternative of every result, in result order, with newlines. Empty results
// yield an empty transcript, not an error.
func (c *GoogleSTTClient) Transcribe(ctx context.Context, audio []byte, cfg RecognitionConfig) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}

	var reqBody recognizeRequest
	reqBody.Config.Encoding = cfg.Encoding
	reqBody.Config.SampleRateHertz = cfg.SampleRateHertz
	reqBody.Config.LanguageCode = cfg.LanguageCode
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal recognize request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("stt token: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"/v1/speech:recognize",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("recognize request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("recognize error: status %d: %s", resp.StatusCode, body)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode recognize response: %w", err)
	}

	parts := make([]string, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		parts = append(parts, result.Alternatives[0].Transcript)
	}

	return strings.Join(parts, "\n"), nil
}
