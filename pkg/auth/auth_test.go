package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rahulkamble366/iso/pkg/auth"
	"github.com/rahulkamble366/iso/pkg/auth/header"
	"github.com/rahulkamble366/iso/pkg/auth/static"

	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/extract", nil)

	_, err := auth.BearerToken(r)
	require.ErrorIs(t, err, auth.ErrMissingHeader)

	r.Header.Set("Authorization", "Basic abc")

	_, err = auth.BearerToken(r)
	require.ErrorIs(t, err, auth.ErrInvalidHeader)

	r.Header.Set("Authorization", "Bearer secret")

	token, err := auth.BearerToken(r)
	require.NoError(t, err)
	require.Equal(t, "secret", token)
}

func TestStatic(t *testing.T) {
	p, err := static.New("secret")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/v1/extract", nil)
	r.Header.Set("Authorization", "Bearer wrong")

	_, err = p.Authenticate(context.Background(), r)
	require.Error(t, err)

	r.Header.Set("Authorization", "Bearer secret")

	ctx, err := p.Authenticate(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "static", auth.User(ctx))
}

func TestStaticMultiple(t *testing.T) {
	p, err := static.New("first", "second")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/v1/extract", nil)
	r.Header.Set("Authorization", "Bearer second")

	_, err = p.Authenticate(context.Background(), r)
	require.NoError(t, err)
}

func TestStaticDisabled(t *testing.T) {
	p, err := static.New("")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/v1/extract", nil)

	_, err = p.Authenticate(context.Background(), r)
	require.NoError(t, err)
}

func TestHeader(t *testing.T) {
	p, err := header.New()
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/v1/extract", nil)

	_, err = p.Authenticate(context.Background(), r)
	require.Error(t, err)

	r.Header.Set("X-Forwarded-User", "jane@example.com")

	ctx, err := p.Authenticate(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", auth.User(ctx))
	require.Equal(t, "jane@example.com", auth.Email(ctx))
}

func TestHeaderCustom(t *testing.T) {
	p, err := header.New(header.WithUserHeader("X-User"), header.WithEmailHeader("X-Mail"))
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/v1/extract", nil)
	r.Header.Set("X-User", "jane")

	ctx, err := p.Authenticate(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "jane", auth.User(ctx))
	require.Empty(t, auth.Email(ctx))
}
