package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

const (
	defaultTemperature     = 0.7
	defaultMaxOutputTokens = 1024
)

// VertexClient calls a chat-bison style predict endpoint over REST.
type VertexClient struct {
	predictURL string
	client     *http.Client
}

func NewVertexClient(predictURL string) *VertexClient {
	return &VertexClient{
		predictURL: predictURL,
		client:     &http.Client{},
	}
}

type chatMessage struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type chatInstance struct {
	Messages []chatMessage `json:"messages"`
}

type predictParameters struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type predictRequest struct {
	Instances  []chatInstance    `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type candidate struct {
	Author  string `json:"author,omitempty"`
	Content string `json:"content"`
}

type prediction struct {
	Candidates        []candidate     `json:"candidates"`
	GroundingMetadata json.RawMessage `json:"groundingMetadata,omitempty"`
	SafetyAttributes  json.RawMessage `json:"safetyAttributes,omitempty"`
}

type predictionResponse struct {
	Predictions []prediction `json:"predictions"`
}

// Predict submits a single-turn user message with fixed decoding parameters.
func (c *VertexClient) Predict(ctx context.Context, query, token string) (*predictionResponse, error) {
	reqBody := predictRequest{
		Instances: []chatInstance{
			{Messages: []chatMessage{{Author: "user", Content: query}}},
		},
		Parameters: predictParameters{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.predictURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predict error: status %d: %s", resp.StatusCode, body)
	}

	var parsed predictionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}

	return &parsed, nil
}
