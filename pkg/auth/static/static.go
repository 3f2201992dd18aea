package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/rahulkamble366/iso/pkg/auth"
)

var _ auth.Provider = &Provider{}

// Provider accepts any of a fixed set of bearer tokens. Without tokens every
// request passes.
type Provider struct {
	tokens [][]byte
}

func New(tokens ...string) (*Provider, error) {
	p := &Provider{}

	for _, t := range tokens {
		if t == "" {
			continue
		}

		p.tokens = append(p.tokens, []byte(t))
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	if len(p.tokens) == 0 {
		return ctx, nil
	}

	token, err := auth.BearerToken(r)

	if err != nil {
		return ctx, err
	}

	match := 0

	for _, t := range p.tokens {
		match |= subtle.ConstantTimeCompare([]byte(token), t)
	}

	if match != 1 {
		return ctx, errors.New("invalid token")
	}

	return context.WithValue(ctx, auth.UserContextKey, "static"), nil
}
