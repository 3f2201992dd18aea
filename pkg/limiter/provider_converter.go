package limiter

import (
	"context"

	"github.com/rahulkamble366/iso/pkg/converter"

	"golang.org/x/time/rate"
)

type Converter interface {
	Limiter
	converter.Provider
}

type limitedConverter struct {
	limiter  *rate.Limiter
	provider converter.Provider
}

// NewConverter bounds how often an external converter process is started.
func NewConverter(l *rate.Limiter, p converter.Provider) Converter {
	return &limitedConverter{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedConverter) limiterSetup() {
}

func (p *limitedConverter) Convert(ctx context.Context, input, dir string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	return p.provider.Convert(ctx, input, dir)
}
