package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/clinvoice/voice-backend/internal/auth"
)

type GoogleTTSClient struct {
	endpoint     string
	languageCode string
	tokens       auth.TokenProvider
	client       *http.Client
}

func NewGoogleTTSClient(endpoint, languageCode string, tokens auth.TokenProvider) *GoogleTTSClient {
	return &GoogleTTSClient{
		endpoint:     strings.TrimRight(endpoint, "/"),
		languageCode: languageCode,
		tokens:       tokens,
		client:       &http.Client{},
	}
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		SSMLGender   string `json:"ssmlGender"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize renders text to MP3 and returns the bytes directly. Nothing is
// written to disk, so concurrent requests cannot read each other's audio.
func (c *GoogleTTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var reqBody synthesizeRequest
	reqBody.Input.Text = text
	reqBody.Voice.LanguageCode = c.languageCode
	reqBody.Voice.SSMLGender = "NEUTRAL"
	reqBody.AudioConfig.AudioEncoding = "MP3"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal synthesize request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("tts token: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"/v1/text:synthesize",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesize error: status %d: %s", resp.StatusCode, body)
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode synthesize response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	return audio, nil
}
