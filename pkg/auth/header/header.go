package header

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/rahulkamble366/iso/pkg/auth"
)

var _ auth.Provider = &Provider{}

// Provider trusts identity headers set by a reverse proxy in front of the server.
type Provider struct {
	userHeader  string
	emailHeader string
}

type Option func(*Provider)

// WithUserHeader overrides the header carrying the user name.
func WithUserHeader(name string) Option {
	return func(p *Provider) {
		p.userHeader = name
	}
}

// WithEmailHeader overrides the header carrying the email address.
func WithEmailHeader(name string) Option {
	return func(p *Provider) {
		p.emailHeader = name
	}
}

func New(options ...Option) (*Provider, error) {
	p := &Provider{
		userHeader:  "X-Forwarded-User",
		emailHeader: "X-Forwarded-Email",
	}

	for _, option := range options {
		option(p)
	}

	if p.userHeader == "" || p.emailHeader == "" {
		return nil, errors.New("invalid header names")
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	user := strings.TrimSpace(r.Header.Get(p.userHeader))
	email := strings.TrimSpace(r.Header.Get(p.emailHeader))

	if user == "" && email == "" {
		return ctx, errors.New("no identity headers")
	}

	if email == "" && isAddress(user) {
		email = user
	}

	if user == "" {
		user = email
	}

	ctx = context.WithValue(ctx, auth.UserContextKey, user)

	if email != "" {
		ctx = context.WithValue(ctx, auth.EmailContextKey, email)
	}

	return ctx, nil
}

func isAddress(val string) bool {
	addr, err := mail.ParseAddress(val)
	return err == nil && addr.Address == val
}
