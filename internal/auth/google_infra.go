package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const scopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"

var ErrTokenExchange = errors.New("token exchange failed")

// GoogleTokenProvider exchanges a service-account key for a short-lived
// bearer token accepted by the Google speech and prediction APIs.
type GoogleTokenProvider struct {
	conf *jwt.Config
}

func NewGoogleTokenProvider(credentialsFile string) (*GoogleTokenProvider, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, scopeCloudPlatform)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return &GoogleTokenProvider{conf: conf}, nil
}

// Token performs a fresh exchange on every call. Call volume is one exchange
// per user interaction, so no token cache is kept.
func (p *GoogleTokenProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.conf.TokenSource(ctx).Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrTokenExchange)
	}
	return tok.AccessToken, nil
}
