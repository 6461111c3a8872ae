package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestVertexPredictRequestShape(t *testing.T) {
	var got predictRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		_, _ = w.Write([]byte(`{"predictions":[{"candidates":[{"author":"1","content":"answer text"}]}]}`))
	}))
	defer srv.Close()

	client := NewVertexClient(srv.URL)
	resp, err := client.Predict(context.Background(), "my query", "tok-123")

	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", authHeader)
	require.Len(t, got.Instances, 1)
	require.Len(t, got.Instances[0].Messages, 1)
	require.Equal(t, "user", got.Instances[0].Messages[0].Author)
	require.Equal(t, "my query", got.Instances[0].Messages[0].Content)
	require.Equal(t, 0.7, got.Parameters.Temperature)
	require.Equal(t, 1024, got.Parameters.MaxOutputTokens)

	answer, outcome := extractAnswer(resp)
	require.Equal(t, outcomeContent, outcome)
	require.Equal(t, "answer text", answer)
}

func TestVertexPredictNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":403}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewVertexClient(srv.URL)
	_, err := client.Predict(context.Background(), "q", "tok")

	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
}

func TestVertexPredictUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewVertexClient(srv.URL)
	_, err := client.Predict(context.Background(), "q", "tok")

	require.Error(t, err)
}

func TestVertexPredictKeepsDiagnostics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[{
			"candidates":[{"content":"ok"}],
			"groundingMetadata":{"citations":[]},
			"safetyAttributes":{"blocked":false}
		}]}`))
	}))
	defer srv.Close()

	client := NewVertexClient(srv.URL)
	resp, err := client.Predict(context.Background(), "q", "tok")

	require.NoError(t, err)
	require.NotEmpty(t, resp.Predictions[0].GroundingMetadata)
	require.NotEmpty(t, resp.Predictions[0].SafetyAttributes)
}
