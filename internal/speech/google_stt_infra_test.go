package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func defaultConfig() RecognitionConfig {
	return RecognitionConfig{
		Encoding:        "LINEAR16",
		SampleRateHertz: 16000,
		LanguageCode:    "en-US",
	}
}

func TestTranscribeJoinsResultsInOrder(t *testing.T) {
	var gotAuth string
	var gotBody recognizeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/speech:recognize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		_, _ = w.Write([]byte(`{"results":[
			{"alternatives":[{"transcript":"what are","confidence":0.9},{"transcript":"watt are","confidence":0.4}]},
			{"alternatives":[{"transcript":"my allergies","confidence":0.8}]}
		]}`))
	}))
	defer srv.Close()

	client := NewGoogleSTTClient(srv.URL, &staticTokens{token: "svc-tok"})
	audio := []byte{0x52, 0x49, 0x46, 0x46}

	transcript, err := client.Transcribe(context.Background(), audio, defaultConfig())

	require.NoError(t, err)
	require.Equal(t, "what are\nmy allergies", transcript)
	require.Equal(t, "Bearer svc-tok", gotAuth)
	require.Equal(t, "LINEAR16", gotBody.Config.Encoding)
	require.Equal(t, 16000, gotBody.Config.SampleRateHertz)
	require.Equal(t, "en-US", gotBody.Config.LanguageCode)
	require.Equal(t, base64.StdEncoding.EncodeToString(audio), gotBody.Audio.Content)
}

func TestTranscribeEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewGoogleSTTClient(srv.URL, &staticTokens{token: "t"})
	transcript, err := client.Transcribe(context.Background(), []byte("x"), defaultConfig())

	require.NoError(t, err)
	require.Equal(t, "", transcript)
}

func TestTranscribeUnknownEncodingFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewGoogleSTTClient(srv.URL, &staticTokens{token: "t"})
	cfg := defaultConfig()
	cfg.Encoding = "VORBIS"

	_, err := client.Transcribe(context.Background(), []byte("x"), cfg)

	require.ErrorIs(t, err, ErrUnsupportedEncoding)
	require.False(t, called)
}

func TestTranscribeBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"bad audio"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewGoogleSTTClient(srv.URL, &staticTokens{token: "t"})
	_, err := client.Transcribe(context.Background(), []byte("x"), defaultConfig())

	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestTranscribeTokenFailure(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewGoogleSTTClient(srv.URL, &staticTokens{err: errors.New("exchange rejected")})
	_, err := client.Transcribe(context.Background(), []byte("x"), defaultConfig())

	require.Error(t, err)
	require.False(t, called, "backend must not be called without a token")
}
