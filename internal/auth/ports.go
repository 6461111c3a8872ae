package auth

import "context"

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
